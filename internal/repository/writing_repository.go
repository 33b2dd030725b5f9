package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tilmock/cefr-backend/internal/model"
)

type WritingRepository struct {
	pool *pgxpool.Pool
}

func NewWritingRepository(pool *pgxpool.Pool) *WritingRepository {
	return &WritingRepository{pool: pool}
}

func (r *WritingRepository) ListMocks(ctx context.Context) ([]model.WritingMock, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, task1, task2, created_at FROM writing_mocks ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mocks []model.WritingMock
	for rows.Next() {
		var m model.WritingMock
		if err := rows.Scan(&m.ID, &m.Title, &m.Task1, &m.Task2, &m.CreatedAt); err != nil {
			return nil, err
		}
		mocks = append(mocks, m)
	}
	return mocks, rows.Err()
}

func (r *WritingRepository) GetMock(ctx context.Context, id int) (*model.WritingMock, error) {
	m := &model.WritingMock{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, task1, task2, created_at FROM writing_mocks WHERE id = $1`, id,
	).Scan(&m.ID, &m.Title, &m.Task1, &m.Task2, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *WritingRepository) CreateMock(ctx context.Context, m *model.WritingMock) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO writing_mocks (title, task1, task2) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		m.Title, m.Task1, m.Task2,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *WritingRepository) CreateSubmission(ctx context.Context, s *model.WritingSubmission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO writing_submissions (mock_id, user_id, task1_answer, task2_answer, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		s.MockID, s.UserID, s.Task1Answer, s.Task2Answer, s.Status,
	).Scan(&s.ID, &s.CreatedAt)
}

const writingSubmissionColumns = `id, mock_id, user_id, task1_answer, task2_answer,
	status, evaluation, created_at, evaluated_at`

func scanWritingSubmission(row interface{ Scan(dest ...any) error }) (*model.WritingSubmission, error) {
	s := &model.WritingSubmission{}
	var evaluation []byte
	err := row.Scan(&s.ID, &s.MockID, &s.UserID, &s.Task1Answer, &s.Task2Answer,
		&s.Status, &evaluation, &s.CreatedAt, &s.EvaluatedAt)
	if err != nil {
		return nil, err
	}
	if len(evaluation) > 0 {
		s.Evaluation = &model.WritingEvaluation{}
		if err := json.Unmarshal(evaluation, s.Evaluation); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *WritingRepository) GetSubmission(ctx context.Context, id int) (*model.WritingSubmission, error) {
	return scanWritingSubmission(r.pool.QueryRow(ctx,
		`SELECT `+writingSubmissionColumns+` FROM writing_submissions WHERE id = $1`, id))
}

func (r *WritingRepository) ListSubmissionsByUser(ctx context.Context, userID int) ([]model.WritingSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+writingSubmissionColumns+`
		 FROM writing_submissions WHERE user_id = $1 ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.WritingSubmission
	for rows.Next() {
		s, err := scanWritingSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

func (r *WritingRepository) ListPendingSubmissions(ctx context.Context, limit int) ([]model.WritingSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+writingSubmissionColumns+`
		 FROM writing_submissions WHERE status = $1 ORDER BY id ASC LIMIT $2`,
		model.SubmissionStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.WritingSubmission
	for rows.Next() {
		s, err := scanWritingSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

func (r *WritingRepository) SaveEvaluation(ctx context.Context, id int, eval *model.WritingEvaluation) (bool, error) {
	payload, err := json.Marshal(eval)
	if err != nil {
		return false, err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE writing_submissions
		 SET status = $1, evaluation = $2, evaluated_at = NOW()
		 WHERE id = $3`,
		model.SubmissionStatusEvaluated, payload, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
