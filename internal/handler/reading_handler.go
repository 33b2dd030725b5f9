package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/tilmock/cefr-backend/internal/archive"
	"github.com/tilmock/cefr-backend/internal/middleware"
	"github.com/tilmock/cefr-backend/internal/model"
	"github.com/tilmock/cefr-backend/internal/repository"
	"github.com/tilmock/cefr-backend/internal/response"
	"github.com/tilmock/cefr-backend/internal/service"
	"github.com/tilmock/cefr-backend/internal/validator"
)

// ReadingHandler handles reading mock CRUD, answer keys and submissions.
type ReadingHandler struct {
	repo           *repository.ReadingRepository
	scoringService *service.ScoringService
	userService    *service.UserService
}

func NewReadingHandler(repo *repository.ReadingRepository, scoringService *service.ScoringService, userService *service.UserService) *ReadingHandler {
	return &ReadingHandler{repo: repo, scoringService: scoringService, userService: userService}
}

// ListMocks godoc
// GET /api/v1/mocks/reading
func (h *ReadingHandler) ListMocks(c *gin.Context) {
	mocks, err := h.repo.ListMocks(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"mocks": mocks})
}

// GetMock godoc
// GET /api/v1/mocks/reading/:id
// Returns the question payload. Answer keys live on a separate admin route
// and are never part of this response.
func (h *ReadingHandler) GetMock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	mock, err := h.repo.GetMock(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrMockNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	// A mock without an answer key can be browsed but not submitted yet.
	submittable, err := h.repo.HasAnswerKey(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mock": mock, "submittable": submittable})
}

// CreateMock godoc
// POST /api/v1/mocks/reading (admin)
func (h *ReadingHandler) CreateMock(c *gin.Context) {
	var req model.CreateReadingMockRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	mock := &model.ReadingMock{
		Title: req.Title,
		Part1: req.Part1,
		Part2: req.Part2,
		Part3: req.Part3,
		Part4: req.Part4,
		Part5: req.Part5,
	}
	if err := h.repo.CreateMock(c.Request.Context(), mock); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"mock": mock})
}

// UpdateMock godoc
// PUT /api/v1/mocks/reading/:id (admin)
func (h *ReadingHandler) UpdateMock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateReadingMockRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	mock := &model.ReadingMock{
		ID:    id,
		Title: req.Title,
		Part1: req.Part1,
		Part2: req.Part2,
		Part3: req.Part3,
		Part4: req.Part4,
		Part5: req.Part5,
	}
	ok, err := h.repo.UpdateMock(c.Request.Context(), mock)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrMockNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mock": mock})
}

// DeleteMock godoc
// DELETE /api/v1/mocks/reading/:id (admin)
func (h *ReadingHandler) DeleteMock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	ok, err := h.repo.DeleteMock(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrMockNotFound)
		return
	}

	h.scoringService.InvalidateAnswerKeyCache(c.Request.Context(), "reading", id)
	response.Success(c, http.StatusOK, gin.H{})
}

// GetAnswers godoc
// GET /api/v1/mocks/reading/:id/answers (admin)
func (h *ReadingHandler) GetAnswers(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	key, err := h.repo.GetAnswerKey(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrAnswerKeyNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"answer_key": key})
}

// UpsertAnswers godoc
// PUT /api/v1/mocks/reading/:id/answers (admin)
// Stores the answer key in the legacy concatenated format
// (part4 = 4x MC + 5x TF, part5 = 5x gap + 2x MC).
func (h *ReadingHandler) UpsertAnswers(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.repo.GetMock(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrMockNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	var req model.UpsertReadingAnswersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	key := &model.ReadingAnswerKey{
		MockID: id,
		Part1:  req.Part1,
		Part2:  req.Part2,
		Part3:  req.Part3,
		Part4:  req.Part4,
		Part5:  req.Part5,
	}
	if err := h.repo.UpsertAnswerKey(c.Request.Context(), key); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.scoringService.InvalidateAnswerKeyCache(c.Request.Context(), "reading", id)
	response.Success(c, http.StatusOK, gin.H{"answer_key": key})
}

// DeleteAnswers godoc
// DELETE /api/v1/mocks/reading/:id/answers (admin)
func (h *ReadingHandler) DeleteAnswers(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	ok, err := h.repo.DeleteAnswerKey(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrAnswerKeyNotFound)
		return
	}

	h.scoringService.InvalidateAnswerKeyCache(c.Request.Context(), "reading", id)
	response.Success(c, http.StatusOK, gin.H{})
}

// Submit godoc
// POST /api/v1/mocks/reading/:id/submit
// Scores the submission synchronously and returns the per-section breakdown
// with a band estimate. Expected answers are never returned to the taker.
func (h *ReadingHandler) Submit(c *gin.Context) {
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

	var req model.ReadingSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	meta := archive.SubmissionMeta{
		UserID:      claims.UserID,
		Email:       claims.Email,
		SubmittedAt: time.Now(),
	}
	if user, err := h.userService.GetByID(c.Request.Context(), claims.UserID); err == nil {
		meta.Username = user.Username
	}

	result, err := h.scoringService.ScoreReading(c.Request.Context(), id, &req, meta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMockNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrMockNotFound)
		case errors.Is(err, service.ErrAnswerKeyNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrAnswerKeyNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}
