package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tilmock/cefr-backend/internal/middleware"
	"github.com/tilmock/cefr-backend/internal/response"
	"github.com/tilmock/cefr-backend/internal/service"
)

// SessionHandler exposes device-session management endpoints.
type SessionHandler struct {
	sessionService *service.DeviceSessionService
}

func NewSessionHandler(sessionService *service.DeviceSessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// MySessions godoc
// GET /api/v1/sessions
// Lists the caller's device sessions oldest first (eviction order).
// ?active=true restricts the list to active sessions.
func (h *SessionHandler) MySessions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	activeOnly := c.Query("active") == "true"
	sessions, err := h.sessionService.List(c.Request.Context(), claims.UserID, activeOnly)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sessions": sessions})
}

// ActiveCount godoc
// GET /api/v1/sessions/count
func (h *SessionHandler) ActiveCount(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	count, err := h.sessionService.CountActive(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"active_sessions": count})
}

// GetSession godoc
// GET /api/v1/sessions/:id
// Owners see their own sessions; a foreign id reads as not found.
func (h *SessionHandler) GetSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sess, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if sess.UserID != claims.UserID {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": sess})
}

// DeleteSession godoc
// DELETE /api/v1/sessions/:id
// Logs out one of the caller's devices.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// LogoutAll godoc
// DELETE /api/v1/sessions
// Removes all of the caller's device sessions. The calling device survives
// when it identifies itself via the fingerprint header.
func (h *SessionHandler) LogoutAll(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	keep := c.GetHeader(middleware.HeaderDeviceFingerprint)
	deleted, err := h.sessionService.DeleteAll(c.Request.Context(), claims.UserID, keep)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted_sessions": deleted})
}

// UserSessions godoc
// GET /api/v1/sessions/users/:id (admin)
// Lists another user's sessions for support and abuse investigations.
func (h *SessionHandler) UserSessions(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sessions, err := h.sessionService.List(c.Request.Context(), userID, false)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sessions": sessions})
}

// AdminDeleteSession godoc
// DELETE /api/v1/sessions/admin/:id (admin)
// Force-logs-out any session, e.g. a stolen device.
func (h *SessionHandler) AdminDeleteSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), id, 0); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
