package content

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/codecafelab/content-service/internal/errx"
	"github.com/codecafelab/content-service/internal/httpx"
)

// ItemRequest is the JSON body for create and update.
type ItemRequest struct {
	Title       string      `json:"title"`
	Slug        string      `json:"slug,omitempty"`
	Summary     string      `json:"summary,omitempty"`
	Body        string      `json:"body,omitempty"`
	Status      string      `json:"status,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Gallery     []string    `json:"gallery,omitempty"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	Featured    bool        `json:"featured,omitempty"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty"`
}

// ItemResponse is the JSON shape of a content item.
type ItemResponse struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Summary     string      `json:"summary,omitempty"`
	Body        string      `json:"body,omitempty"`
	Status      string      `json:"status"`
	Tags        []string    `json:"tags"`
	Gallery     []string    `json:"gallery,omitempty"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	Featured    bool        `json:"featured"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty"`
	Counter     int64       `json:"counter"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Handler serves the content CRUD endpoints for every registered kind.
type Handler struct {
	services map[string]Service
	logger   *slog.Logger
}

// NewHandler creates a Handler over per-kind services.
func NewHandler(services map[string]Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{services: services, logger: logger}
}

func toResponse(item Item, schema Schema) ItemResponse {
	resp := ItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Slug:        item.Slug,
		Summary:     item.Summary,
		Body:        item.Body,
		Status:      string(item.Status),
		Tags:        item.Tags,
		Featured:    item.Featured,
		ScheduledAt: item.ScheduledAt,
		Counter:     item.Counter,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if schema.HasGallery {
		resp.Gallery = item.Gallery
	}
	if schema.HasDimensions && !item.Dimensions.IsZero() {
		d := item.Dimensions
		resp.Dimensions = &d
	}
	return resp
}

func toItem(req ItemRequest) Item {
	item := Item{
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Body:        req.Body,
		Status:      Status(req.Status),
		Tags:        req.Tags,
		Gallery:     req.Gallery,
		Featured:    req.Featured,
		ScheduledAt: req.ScheduledAt,
	}
	if req.Dimensions != nil {
		item.Dimensions = *req.Dimensions
	}
	return item
}

// serviceFor resolves the kind path segment; an unregistered kind writes
// a 404 and returns ok=false.
func (h *Handler) serviceFor(w http.ResponseWriter, r *http.Request) (Service, bool) {
	kind := r.PathValue("kind")
	svc, ok := h.services[kind]
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "unknown_kind",
			"no such content kind: "+kind, nil)
		return nil, false
	}
	return svc, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errx.KindOf(err)

	logAttrs := []any{
		"request_id", httpx.GetRequestID(r.Context()),
		"error", err.Error(),
		"error_kind", kind.String(),
		"operation", errx.OpOf(err),
		"path", r.URL.Path,
	}

	switch kind {
	case errx.NotFound, errx.Invalid, errx.Conflict:
		h.logger.WarnContext(r.Context(), "content request failed", logAttrs...)
	default:
		h.logger.ErrorContext(r.Context(), "content request failed", logAttrs...)
	}

	httpx.WriteError(w, httpx.StatusOf(kind), httpx.CodeOf(kind), publicMessage(kind), nil)
}

func publicMessage(kind errx.Kind) string {
	switch kind {
	case errx.NotFound:
		return "content item not found"
	case errx.Invalid:
		return "invalid request"
	case errx.Conflict:
		return "slug is already taken"
	default:
		return "unable to process the request at this time"
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request,
	fetch func(Service) ([]Item, error)) {

	svc, ok := h.serviceFor(w, r)
	if !ok {
		return
	}

	items, err := fetch(svc)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toResponse(it, svc.Schema()))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// List handles GET /api/content/{kind}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(svc Service) ([]Item, error) { return svc.List(r.Context()) })
}

// ListPublished handles GET /api/content/{kind}/published.
func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(svc Service) ([]Item, error) { return svc.ListActive(r.Context()) })
}

// ListFeatured handles GET /api/content/{kind}/featured.
func (h *Handler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(svc Service) ([]Item, error) { return svc.ListFeatured(r.Context()) })
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// GetByID handles GET /api/content/{kind}/{id}.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.serviceFor(w, r)
	if !ok {
		return
	}
	id, ok := parseID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "id must be a positive integer", nil)
		return
	}

	item, err := svc.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(item, svc.Schema()))
}

// GetBySlug handles GET /api/content/{kind}/slug/{slug}.
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.serviceFor(w, r)
	if !ok {
		return
	}

	item, err := svc.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toResponse(item, svc.Schema()))
}

// Create handles POST /api/content/{kind}.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.serviceFor(w, r)
	if !ok {
		return
	}

	req, err := httpx.DecodeJSON[ItemRequest](r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	created, err := svc.Create(r.Context(), toItem(req))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "content item created",
		"request_id", httpx.GetRequestID(r.Context()),
		"kind", svc.Schema().Kind,
		"id", created.ID,
		"slug", created.Slug,
	)
	httpx.WriteJSON(w, http.StatusCreated, toResponse(created, svc.Schema()))
}

// Update handles PUT /api/content/{kind}/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.serviceFor(w, r)
	if !ok {
		return
	}
	id, ok := parseID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "id must be a positive integer", nil)
		return
	}

	req, err := httpx.DecodeJSON[ItemRequest](r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	affected, err := svc.Update(r.Context(), id, toItem(req))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !affected {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "content item not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/content/{kind}/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.serviceFor(w, r)
	if !ok {
		return
	}
	id, ok := parseID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "id must be a positive integer", nil)
		return
	}

	affected, err := svc.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !affected {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "content item not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Increment handles POST /api/content/{kind}/{id}/count, bumping the
// kind's counter (views, downloads, registrations or helpful votes).
func (h *Handler) Increment(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.serviceFor(w, r)
	if !ok {
		return
	}
	id, ok := parseID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", "id must be a positive integer", nil)
		return
	}

	affected, err := svc.IncrementCounter(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !affected {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "content item not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
