package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tilmock/cefr-backend/internal/middleware"
	"github.com/tilmock/cefr-backend/internal/model"
	"github.com/tilmock/cefr-backend/internal/response"
	"github.com/tilmock/cefr-backend/internal/service"
	"github.com/tilmock/cefr-backend/internal/validator"
)

// AuthHandler handles registration, login and token refresh.
type AuthHandler struct {
	authService    *service.AuthService
	userService    *service.UserService
	sessionService *service.DeviceSessionService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	userService *service.UserService,
	sessionService *service.DeviceSessionService,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		userService:    userService,
		sessionService: sessionService,
	}
}

// Register godoc
// POST /api/v1/auth/register
// Creates an account and returns it together with a token pair.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
		case errors.Is(err, service.ErrUsernameTaken):
			response.Fail(c, http.StatusConflict, response.ErrUsernameTaken)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	tokens, err := h.authService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password and returns a token pair. When the request
// carries a device descriptor the login is registered as a device session;
// the oldest session is evicted if the user is over the device cap.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	tokens, err := h.authService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	data := gin.H{
		"user":   user,
		"tokens": tokens,
	}

	if req.Device != nil {
		sess, evicted, err := h.sessionService.Register(c.Request.Context(), user.ID, req.Device, c.ClientIP())
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		data["session"] = sess
		if len(evicted) > 0 {
			data["evicted_sessions"] = evicted
		}
	}

	response.Success(c, http.StatusOK, data)
}

// Refresh godoc
// POST /api/v1/auth/refresh
// Exchanges a valid refresh token for a fresh token pair. The user record is
// re-read so role changes since login take effect immediately.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims, err := h.authService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrRefreshInvalid)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrRefreshInvalid)
		return
	}

	tokens, err := h.authService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tokens": tokens})
}

// Logout godoc
// POST /api/v1/auth/logout
// Deactivates the calling device's session. Access tokens stay valid until
// expiry; the active session record is what the device cap counts.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	fingerprint := c.GetHeader(middleware.HeaderDeviceFingerprint)
	if fingerprint == "" {
		response.Success(c, http.StatusOK, gin.H{"ended_sessions": 0})
		return
	}

	ended, err := h.sessionService.Logout(c.Request.Context(), claims.UserID, fingerprint)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ended_sessions": ended})
}
