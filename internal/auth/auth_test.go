package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/codecafelab/content-service/internal/config"
	"github.com/codecafelab/content-service/internal/errx"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAuthenticator(t *testing.T, ttl time.Duration) *Authenticator {
	t.Helper()

	hash, err := HashPassword("sup3r-secret")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return New(config.AuthConfig{
		JWTSecret:     testSecret,
		TokenTTL:      ttl,
		AdminEmail:    "admin@codecafelab.in",
		AdminPassHash: hash,
	})
}

func TestLogin(t *testing.T) {
	a := newTestAuthenticator(t, time.Hour)

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		token, err := a.Login("admin@codecafelab.in", "sup3r-secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		subject, err := a.Verify(token)
		if err != nil {
			t.Fatalf("issued token did not verify: %v", err)
		}
		if subject != "admin@codecafelab.in" {
			t.Errorf("subject = %q", subject)
		}
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := a.Login("admin@codecafelab.in", "wrong")
		if errx.KindOf(err) != errx.Unauthorized {
			t.Errorf("kind = %v, want Unauthorized", errx.KindOf(err))
		}
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		_, err := a.Login("someone@codecafelab.in", "sup3r-secret")
		if errx.KindOf(err) != errx.Unauthorized {
			t.Errorf("kind = %v, want Unauthorized", errx.KindOf(err))
		}
	})
}

func TestVerify(t *testing.T) {
	a := newTestAuthenticator(t, time.Hour)

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		_, err := a.Verify("not-a-token")
		if errx.KindOf(err) != errx.Unauthorized {
			t.Errorf("kind = %v, want Unauthorized", errx.KindOf(err))
		}
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		expired := newTestAuthenticator(t, -time.Minute)
		token, err := expired.Login("admin@codecafelab.in", "sup3r-secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := a.Verify(token); errx.KindOf(err) != errx.Unauthorized {
			t.Errorf("kind = %v, want Unauthorized", errx.KindOf(err))
		}
	})

	t.Run("token signed with another secret is unauthorized", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "admin@codecafelab.in",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("another-secret-another-secret-ab"))
		if err != nil {
			t.Fatalf("signing: %v", err)
		}

		if _, err := a.Verify(forged); errx.KindOf(err) != errx.Unauthorized {
			t.Errorf("kind = %v, want Unauthorized", errx.KindOf(err))
		}
	})
}

func TestMiddleware(t *testing.T) {
	a := newTestAuthenticator(t, time.Hour)

	var gotSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = Subject(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	protected := Middleware(a)(next)

	t.Run("missing header is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest("POST", "/api/content/blogs", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("non-bearer header is rejected", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/content/blogs", nil)
		r.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, r)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token passes through with subject", func(t *testing.T) {
		token, err := a.Login("admin@codecafelab.in", "sup3r-secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		r := httptest.NewRequest("POST", "/api/content/blogs", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, r)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if gotSubject != "admin@codecafelab.in" {
			t.Errorf("subject = %q", gotSubject)
		}
	})
}

func TestLoginHandler(t *testing.T) {
	a := newTestAuthenticator(t, time.Hour)
	h := NewHandler(a, slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("valid credentials return a token", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/auth/login",
			strings.NewReader(`{"email":"admin@codecafelab.in","password":"sup3r-secret"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, r)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}

		var resp LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if resp.Token == "" || resp.ExpiresIn != 3600 {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/auth/login",
			strings.NewReader(`{"email":"admin@codecafelab.in","password":"nope"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, r)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("missing fields map to 400", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.Login(rec, r)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
