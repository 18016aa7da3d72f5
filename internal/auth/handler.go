package auth

import (
	"log/slog"
	"net/http"

	"github.com/codecafelab/content-service/internal/httpx"
)

// LoginRequest is the JSON body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// Handler serves the login endpoint.
type Handler struct {
	auth   *Authenticator
	logger *slog.Logger
}

// NewHandler creates a Handler over the Authenticator.
func NewHandler(auth *Authenticator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{auth: auth, logger: logger}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := httpx.DecodeJSON[LoginRequest](r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input",
			"email and password are required", nil)
		return
	}

	token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "login rejected",
			"request_id", httpx.GetRequestID(r.Context()),
			"email", req.Email,
		)
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.auth.TokenTTL().Seconds()),
	})
}
