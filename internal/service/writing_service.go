package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tilmock/cefr-backend/internal/model"
	"github.com/tilmock/cefr-backend/internal/repository"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyEvaluated   = errors.New("submission already evaluated")
)

// WritingService manages writing mocks and their human-evaluated submissions.
type WritingService struct {
	writing *repository.WritingRepository
}

func NewWritingService(writing *repository.WritingRepository) *WritingService {
	return &WritingService{writing: writing}
}

func (s *WritingService) ListMocks(ctx context.Context) ([]model.WritingMock, error) {
	return s.writing.ListMocks(ctx)
}

func (s *WritingService) GetMock(ctx context.Context, id int) (*model.WritingMock, error) {
	mock, err := s.writing.GetMock(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMockNotFound
		}
		return nil, err
	}
	return mock, nil
}

func (s *WritingService) CreateMock(ctx context.Context, req *model.CreateWritingMockRequest) (*model.WritingMock, error) {
	mock := &model.WritingMock{Title: req.Title, Task1: req.Task1, Task2: req.Task2}
	if err := s.writing.CreateMock(ctx, mock); err != nil {
		return nil, fmt.Errorf("create writing mock: %w", err)
	}
	return mock, nil
}

// Submit stores a writing attempt in PENDING state; an examiner evaluates it
// later through Evaluate.
func (s *WritingService) Submit(ctx context.Context, mockID, userID int, req *model.WritingSubmissionRequest) (*model.WritingSubmission, error) {
	if _, err := s.GetMock(ctx, mockID); err != nil {
		return nil, err
	}

	sub := &model.WritingSubmission{
		MockID:      mockID,
		UserID:      userID,
		Task1Answer: req.Task1Answer,
		Task2Answer: req.Task2Answer,
		Status:      model.SubmissionStatusPending,
	}
	if err := s.writing.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return sub, nil
}

// GetSubmission returns one submission. Non-admin callers only see their own.
func (s *WritingService) GetSubmission(ctx context.Context, id, requesterID int, isAdmin bool) (*model.WritingSubmission, error) {
	sub, err := s.writing.GetSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if !isAdmin && sub.UserID != requesterID {
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}

func (s *WritingService) ListMySubmissions(ctx context.Context, userID int) ([]model.WritingSubmission, error) {
	return s.writing.ListSubmissionsByUser(ctx, userID)
}

func (s *WritingService) ListPending(ctx context.Context, limit int) ([]model.WritingSubmission, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.writing.ListPendingSubmissions(ctx, limit)
}

// Evaluate attaches the examiner's rubric to a pending submission. Evaluating
// twice is rejected so a published band never silently changes.
func (s *WritingService) Evaluate(ctx context.Context, id int, eval *model.WritingEvaluation) (*model.WritingSubmission, error) {
	sub, err := s.writing.GetSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if sub.Status == model.SubmissionStatusEvaluated {
		return nil, ErrAlreadyEvaluated
	}

	ok, err := s.writing.SaveEvaluation(ctx, id, eval)
	if err != nil {
		return nil, fmt.Errorf("save evaluation: %w", err)
	}
	if !ok {
		return nil, ErrSubmissionNotFound
	}

	return s.writing.GetSubmission(ctx, id)
}
