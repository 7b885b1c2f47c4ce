package handler

import (
	"log/slog"
	"net/http"
	"time"

	"noion/internal/domain/models"
	"noion/internal/domain/services"
	"noion/internal/httputil"
)

// PageHandler handles page HTTP requests
type PageHandler struct {
	pageService services.PageService
	logger      *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(pageService services.PageService, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		pageService: pageService,
		logger:      logger,
	}
}

// ListPages lists the user's pages, most recently updated first
// GET /api/pages?userId=
func (h *PageHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	pages, err := h.pageService.ListPages(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	if pages == nil {
		pages = []models.Page{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

// CreatePage creates a new page
// POST /api/pages
func (h *PageHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	page, err := h.pageService.CreatePage(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]any{"page": page})
}

// GetPage retrieves a page by ID
// GET /api/pages/{id}
func (h *PageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "page ID is required")
		return
	}

	page, err := h.pageService.GetPage(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"page": page})
}

// UpdateTitle renames a page
// PATCH /api/pages/{id}
func (h *PageHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "page ID is required")
		return
	}

	var req services.UpdateTitleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		httputil.RespondError(w, http.StatusBadRequest, "title is required")
		return
	}

	page, err := h.pageService.UpdateTitle(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"page": page})
}

// ArchivePage hides a page without deleting its data
// POST /api/pages/{id}/archive
func (h *PageHandler) ArchivePage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "page ID is required")
		return
	}

	page, err := h.pageService.ArchivePage(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"page": page})
}

// DeletePage removes a page and its blocks; deleting an unknown id still
// succeeds
// DELETE /api/pages/{id}
func (h *PageHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "page ID is required")
		return
	}

	if err := h.pageService.DeletePage(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *PageHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now(),
	})
}
