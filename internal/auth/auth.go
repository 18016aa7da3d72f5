package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/codecafelab/content-service/internal/config"
	"github.com/codecafelab/content-service/internal/errx"
)

const issuer = "content-service"

// Authenticator checks admin credentials and issues and verifies the
// bearer tokens guarding the write endpoints. There is a single admin
// identity, configured by email and bcrypt password hash.
type Authenticator struct {
	secret        []byte
	tokenTTL      time.Duration
	adminEmail    string
	adminPassHash string
}

// New creates an Authenticator from the auth configuration.
func New(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{
		secret:        []byte(cfg.JWTSecret),
		tokenTTL:      cfg.TokenTTL,
		adminEmail:    cfg.AdminEmail,
		adminPassHash: cfg.AdminPassHash,
	}
}

// Login verifies the admin credentials and returns a signed token.
// Wrong email and wrong password fail identically.
func (a *Authenticator) Login(email, password string) (string, error) {
	const op = "auth.Login"

	if email != a.adminEmail {
		return "", errx.E(op, errx.Unauthorized, errors.New("invalid credentials"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.adminPassHash), []byte(password)); err != nil {
		return "", errx.E(op, errx.Unauthorized, errors.New("invalid credentials"))
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", errx.E(op, errx.Internal, fmt.Errorf("signing token: %w", err))
	}
	return signed, nil
}

// Verify parses a token and returns the subject email.
func (a *Authenticator) Verify(tokenString string) (string, error) {
	const op = "auth.Verify"

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", errx.E(op, errx.Unauthorized, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", errx.E(op, errx.Unauthorized, errors.New("invalid token"))
	}
	return claims.Subject, nil
}

// TokenTTL reports how long issued tokens stay valid.
func (a *Authenticator) TokenTTL() time.Duration {
	return a.tokenTTL
}

// HashPassword derives a bcrypt hash for AUTH_ADMIN_PASSWORD_HASH.
// Exposed for provisioning tooling and tests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
