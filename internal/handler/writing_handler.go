package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tilmock/cefr-backend/internal/middleware"
	"github.com/tilmock/cefr-backend/internal/model"
	"github.com/tilmock/cefr-backend/internal/response"
	"github.com/tilmock/cefr-backend/internal/service"
	"github.com/tilmock/cefr-backend/internal/validator"
)

// WritingHandler handles writing mocks and human-evaluated submissions.
type WritingHandler struct {
	writingService *service.WritingService
}

func NewWritingHandler(writingService *service.WritingService) *WritingHandler {
	return &WritingHandler{writingService: writingService}
}

// ListMocks godoc
// GET /api/v1/mocks/writing
func (h *WritingHandler) ListMocks(c *gin.Context) {
	mocks, err := h.writingService.ListMocks(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mocks": mocks})
}

// GetMock godoc
// GET /api/v1/mocks/writing/:id
func (h *WritingHandler) GetMock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	mock, err := h.writingService.GetMock(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMockNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrMockNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mock": mock})
}

// CreateMock godoc
// POST /api/v1/mocks/writing (admin)
func (h *WritingHandler) CreateMock(c *gin.Context) {
	var req model.CreateWritingMockRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	mock, err := h.writingService.CreateMock(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"mock": mock})
}

// Submit godoc
// POST /api/v1/mocks/writing/:id/submit
// Stores the attempt as PENDING; an examiner evaluates it later.
func (h *WritingHandler) Submit(c *gin.Context) {
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

	var req model.WritingSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sub, err := h.writingService.Submit(c.Request.Context(), id, claims.UserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrMockNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrMockNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"submission": sub})
}

// MySubmissions godoc
// GET /api/v1/mocks/writing/submissions
func (h *WritingHandler) MySubmissions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	subs, err := h.writingService.ListMySubmissions(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submissions": subs})
}

// GetSubmission godoc
// GET /api/v1/mocks/writing/submissions/:id
// Owners see their own; admins see any.
func (h *WritingHandler) GetSubmission(c *gin.Context) {
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

	isAdmin := claims.Role == string(model.RoleAdmin)
	sub, err := h.writingService.GetSubmission(c.Request.Context(), id, claims.UserID, isAdmin)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": sub})
}

// PendingSubmissions godoc
// GET /api/v1/mocks/writing/submissions/pending (admin)
// The examiner's work queue, oldest first.
func (h *WritingHandler) PendingSubmissions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	subs, err := h.writingService.ListPending(c.Request.Context(), limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submissions": subs})
}

// Evaluate godoc
// PUT /api/v1/mocks/writing/submissions/:id/evaluation (admin)
func (h *WritingHandler) Evaluate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.WritingEvaluation
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sub, err := h.writingService.Evaluate(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrAlreadyEvaluated):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyEvaluated)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": sub})
}
