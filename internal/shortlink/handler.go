package shortlink

import (
	"log/slog"
	"net/http"

	"github.com/codecafelab/content-service/internal/errx"
	"github.com/codecafelab/content-service/internal/httpx"
)

// ShortenRequest is the JSON body for creating a short link.
type ShortenRequest struct {
	OriginalURL string `json:"original_url"`
	OwnerID     string `json:"owner_id"`
}

// ShortenResponse carries the short URL back to the caller.
type ShortenResponse struct {
	ShortURL string `json:"short_url"`
}

// Handler serves the shorten endpoint and the public redirect.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// NewHandler creates a Handler over the short-link service.
func NewHandler(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Shorten handles POST /api/shortlinks.
func (h *Handler) Shorten(w http.ResponseWriter, r *http.Request) {
	req, err := httpx.DecodeJSON[ShortenRequest](r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}
	if req.OriginalURL == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "original_url is required", nil)
		return
	}

	shortURL, err := h.service.Shorten(r.Context(), req.OriginalURL, req.OwnerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "shorten failed",
			"request_id", httpx.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		httpx.WriteError(w, http.StatusServiceUnavailable, "unavailable",
			"unable to process the request at this time", nil)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ShortenResponse{ShortURL: shortURL})
}

// Redirect handles GET /s/{hash}. Anything other than a resolved hash
// reads as 404 to the public; a storage outage is not distinguishable
// from an unknown hash out here.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")

	originalURL, err := h.service.Resolve(r.Context(), hash)
	if err != nil {
		kind := errx.KindOf(err)
		if kind != errx.NotFound {
			h.logger.ErrorContext(r.Context(), "short-link resolve failed",
				"request_id", httpx.GetRequestID(r.Context()),
				"error", err.Error(),
				"error_kind", kind.String(),
				"hash", hash,
			)
		}
		httpx.WriteError(w, http.StatusNotFound, "not_found", "short link not found", nil)
		return
	}

	http.Redirect(w, r, originalURL, http.StatusFound)
}
