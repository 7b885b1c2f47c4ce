package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"noion/internal/domain"
	"noion/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var storageErr *domain.StorageError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &storageErr):
		slog.Error("storage failure", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "storage unavailable")
	default:
		slog.Error("unexpected error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
