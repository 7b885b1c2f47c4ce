package handler

import (
	"log/slog"
	"net/http"

	"noion/internal/auth"
	"noion/internal/domain/models"
	"noion/internal/httputil"
)

// SessionHandler sets and clears the opaque session token. Identity is
// established elsewhere; this endpoint only round-trips the principal.
type SessionHandler struct {
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *auth.SessionManager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

type setSessionBody struct {
	User *models.Principal `json:"user"`
}

// SetSession issues a session cookie for the supplied principal
// POST /api/auth/session
func (h *SessionHandler) SetSession(w http.ResponseWriter, r *http.Request) {
	var body setSessionBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.User == nil || body.User.ID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "user is required")
		return
	}

	token, err := h.sessions.Issue(body.User)
	if err != nil {
		h.logger.Error("failed to issue session token", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, h.sessions.Cookie(token))
	httputil.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ClearSession expires the session cookie
// DELETE /api/auth/session
func (h *SessionHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.ClearCookie())
	httputil.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}
