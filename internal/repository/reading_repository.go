package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tilmock/cefr-backend/internal/model"
)

type ReadingRepository struct {
	pool *pgxpool.Pool
}

func NewReadingRepository(pool *pgxpool.Pool) *ReadingRepository {
	return &ReadingRepository{pool: pool}
}

const readingMockColumns = `id, title, part1, part2, part3, part4, part5, created_at`

func scanReadingMock(row interface{ Scan(dest ...any) error }) (*model.ReadingMock, error) {
	m := &model.ReadingMock{}
	err := row.Scan(&m.ID, &m.Title, &m.Part1, &m.Part2, &m.Part3, &m.Part4, &m.Part5, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *ReadingRepository) ListMocks(ctx context.Context) ([]model.ReadingMock, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+readingMockColumns+` FROM reading_mocks ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mocks []model.ReadingMock
	for rows.Next() {
		m, err := scanReadingMock(rows)
		if err != nil {
			return nil, err
		}
		mocks = append(mocks, *m)
	}
	return mocks, rows.Err()
}

func (r *ReadingRepository) GetMock(ctx context.Context, id int) (*model.ReadingMock, error) {
	return scanReadingMock(r.pool.QueryRow(ctx,
		`SELECT `+readingMockColumns+` FROM reading_mocks WHERE id = $1`, id))
}

func (r *ReadingRepository) CreateMock(ctx context.Context, m *model.ReadingMock) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO reading_mocks (title, part1, part2, part3, part4, part5)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		m.Title, m.Part1, m.Part2, m.Part3, m.Part4, m.Part5,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *ReadingRepository) UpdateMock(ctx context.Context, m *model.ReadingMock) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE reading_mocks
		 SET title = $1, part1 = $2, part2 = $3, part3 = $4, part4 = $5, part5 = $6
		 WHERE id = $7`,
		m.Title, m.Part1, m.Part2, m.Part3, m.Part4, m.Part5, m.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteMock removes a mock; its answer key goes with it via FK cascade.
func (r *ReadingRepository) DeleteMock(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reading_mocks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ReadingRepository) GetAnswerKey(ctx context.Context, mockID int) (*model.ReadingAnswerKey, error) {
	k := &model.ReadingAnswerKey{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, mock_id, part1, part2, part3, part4, part5
		 FROM reading_answer_keys WHERE mock_id = $1`, mockID,
	).Scan(&k.ID, &k.MockID, &k.Part1, &k.Part2, &k.Part3, &k.Part4, &k.Part5)
	if err != nil {
		return nil, err
	}
	return k, nil
}

func (r *ReadingRepository) HasAnswerKey(ctx context.Context, mockID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reading_answer_keys WHERE mock_id = $1)`, mockID).Scan(&exists)
	return exists, err
}

func (r *ReadingRepository) UpsertAnswerKey(ctx context.Context, k *model.ReadingAnswerKey) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO reading_answer_keys (mock_id, part1, part2, part3, part4, part5)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (mock_id) DO UPDATE
		 SET part1 = EXCLUDED.part1, part2 = EXCLUDED.part2, part3 = EXCLUDED.part3,
		     part4 = EXCLUDED.part4, part5 = EXCLUDED.part5
		 RETURNING id`,
		k.MockID, k.Part1, k.Part2, k.Part3, k.Part4, k.Part5,
	).Scan(&k.ID)
}

func (r *ReadingRepository) DeleteAnswerKey(ctx context.Context, mockID int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM reading_answer_keys WHERE mock_id = $1`, mockID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
