package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tilmock/cefr-backend/internal/model"
)

type ListeningRepository struct {
	pool *pgxpool.Pool
}

func NewListeningRepository(pool *pgxpool.Pool) *ListeningRepository {
	return &ListeningRepository{pool: pool}
}

const listeningMockColumns = `id, title, data, audio_part_1, audio_part_2, audio_part_3,
	audio_part_4, audio_part_5, audio_part_6, created_at`

func scanListeningMock(row interface{ Scan(dest ...any) error }) (*model.ListeningMock, error) {
	m := &model.ListeningMock{}
	err := row.Scan(&m.ID, &m.Title, &m.Data, &m.AudioPart1, &m.AudioPart2, &m.AudioPart3,
		&m.AudioPart4, &m.AudioPart5, &m.AudioPart6, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *ListeningRepository) ListMocks(ctx context.Context) ([]model.ListeningMock, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+listeningMockColumns+` FROM listening_mocks ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mocks []model.ListeningMock
	for rows.Next() {
		m, err := scanListeningMock(rows)
		if err != nil {
			return nil, err
		}
		mocks = append(mocks, *m)
	}
	return mocks, rows.Err()
}

func (r *ListeningRepository) GetMock(ctx context.Context, id int) (*model.ListeningMock, error) {
	return scanListeningMock(r.pool.QueryRow(ctx,
		`SELECT `+listeningMockColumns+` FROM listening_mocks WHERE id = $1`, id))
}

func (r *ListeningRepository) CreateMock(ctx context.Context, m *model.ListeningMock) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO listening_mocks
		   (title, data, audio_part_1, audio_part_2, audio_part_3, audio_part_4, audio_part_5, audio_part_6)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		m.Title, m.Data, m.AudioPart1, m.AudioPart2, m.AudioPart3,
		m.AudioPart4, m.AudioPart5, m.AudioPart6,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *ListeningRepository) UpdateMock(ctx context.Context, m *model.ListeningMock) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE listening_mocks
		 SET title = $1, data = $2, audio_part_1 = $3, audio_part_2 = $4, audio_part_3 = $5,
		     audio_part_4 = $6, audio_part_5 = $7, audio_part_6 = $8
		 WHERE id = $9`,
		m.Title, m.Data, m.AudioPart1, m.AudioPart2, m.AudioPart3,
		m.AudioPart4, m.AudioPart5, m.AudioPart6, m.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ListeningRepository) DeleteMock(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM listening_mocks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ListeningRepository) HasAnswerKey(ctx context.Context, mockID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM listening_answer_keys WHERE mock_id = $1)`, mockID).Scan(&exists)
	return exists, err
}

func (r *ListeningRepository) GetAnswerKey(ctx context.Context, mockID int) (*model.ListeningAnswerKey, error) {
	k := &model.ListeningAnswerKey{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, mock_id, part_1, part_2, part_3, part_4, part_5, part_6
		 FROM listening_answer_keys WHERE mock_id = $1`, mockID,
	).Scan(&k.ID, &k.MockID, &k.Part1, &k.Part2, &k.Part3, &k.Part4, &k.Part5, &k.Part6)
	if err != nil {
		return nil, err
	}
	return k, nil
}

func (r *ListeningRepository) UpsertAnswerKey(ctx context.Context, k *model.ListeningAnswerKey) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO listening_answer_keys (mock_id, part_1, part_2, part_3, part_4, part_5, part_6)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (mock_id) DO UPDATE
		 SET part_1 = EXCLUDED.part_1, part_2 = EXCLUDED.part_2, part_3 = EXCLUDED.part_3,
		     part_4 = EXCLUDED.part_4, part_5 = EXCLUDED.part_5, part_6 = EXCLUDED.part_6
		 RETURNING id`,
		k.MockID, k.Part1, k.Part2, k.Part3, k.Part4, k.Part5, k.Part6,
	).Scan(&k.ID)
}

func (r *ListeningRepository) DeleteAnswerKey(ctx context.Context, mockID int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM listening_answer_keys WHERE mock_id = $1`, mockID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
