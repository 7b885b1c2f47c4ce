package handler

import (
	"log/slog"
	"net/http"

	"noion/internal/domain/models"
	"noion/internal/domain/services"
	"noion/internal/httputil"
)

// TaskHandler handles task projection requests
type TaskHandler struct {
	taskService services.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns the user's open todo items across all pages
// GET /api/tasks?userId=
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}
