package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tilmock/cefr-backend/internal/model"
)

type DeviceSessionRepository struct {
	pool *pgxpool.Pool
}

func NewDeviceSessionRepository(pool *pgxpool.Pool) *DeviceSessionRepository {
	return &DeviceSessionRepository{pool: pool}
}

const sessionColumns = `id, user_id, device_fingerprint, device_name, device_type,
	browser, ip_address, created_at, last_active, is_active`

func scanSession(row interface{ Scan(dest ...any) error }) (*model.DeviceSession, error) {
	s := &model.DeviceSession{}
	err := row.Scan(&s.ID, &s.UserID, &s.DeviceFingerprint, &s.DeviceName, &s.DeviceType,
		&s.Browser, &s.IPAddress, &s.CreatedAt, &s.LastActive, &s.IsActive)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateWithLimit inserts a new active session for the user, evicting the
// oldest active sessions first so that the active count never exceeds
// maxSessions after the insert. The count-check, eviction and insert run in
// one transaction holding FOR UPDATE locks on the user's active rows, so
// concurrent logins for the same user serialize instead of both slipping
// under the cap. Returns the evicted sessions (usually zero or one).
func (r *DeviceSessionRepository) CreateWithLimit(ctx context.Context, s *model.DeviceSession, maxSessions int) ([]model.DeviceSession, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT `+sessionColumns+`
		 FROM device_sessions
		 WHERE user_id = $1 AND is_active = TRUE
		 ORDER BY created_at ASC, id ASC
		 FOR UPDATE`, s.UserID)
	if err != nil {
		return nil, fmt.Errorf("lock active sessions: %w", err)
	}

	var active []model.DeviceSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		active = append(active, *sess)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	evicted := OverflowVictims(active, maxSessions)
	if len(evicted) > 0 {
		ids := make([]int, len(evicted))
		for i, v := range evicted {
			ids[i] = v.ID
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM device_sessions WHERE id = ANY($1)`, ids); err != nil {
			return nil, fmt.Errorf("evict sessions: %w", err)
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO device_sessions
		   (user_id, device_fingerprint, device_name, device_type, browser, ip_address)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, last_active, is_active`,
		s.UserID, s.DeviceFingerprint, s.DeviceName, s.DeviceType, s.Browser, s.IPAddress,
	).Scan(&s.ID, &s.CreatedAt, &s.LastActive, &s.IsActive)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return evicted, nil
}

// OverflowVictims selects the sessions to evict so that one more session
// fits under maxSessions. Input must be ordered oldest first (created_at,
// then id, the deterministic tie-break for identical timestamps). Returns
// nil when the new session fits without eviction.
func OverflowVictims(activeOldestFirst []model.DeviceSession, maxSessions int) []model.DeviceSession {
	if maxSessions < 1 {
		maxSessions = 1
	}
	overflow := len(activeOldestFirst) + 1 - maxSessions
	if overflow <= 0 {
		return nil
	}
	return activeOldestFirst[:overflow]
}

func (r *DeviceSessionRepository) GetByID(ctx context.Context, id int) (*model.DeviceSession, error) {
	return scanSession(r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM device_sessions WHERE id = $1`, id))
}

func (r *DeviceSessionRepository) GetByFingerprint(ctx context.Context, userID int, fingerprint string) (*model.DeviceSession, error) {
	return scanSession(r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+`
		 FROM device_sessions
		 WHERE user_id = $1 AND device_fingerprint = $2
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, userID, fingerprint))
}

// ListByUser returns the user's sessions ordered oldest first; the order
// matches the eviction order so clients can display it meaningfully.
func (r *DeviceSessionRepository) ListByUser(ctx context.Context, userID int, activeOnly bool) ([]model.DeviceSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM device_sessions WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.DeviceSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func (r *DeviceSessionRepository) CountActive(ctx context.Context, userID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM device_sessions WHERE user_id = $1 AND is_active = TRUE`,
		userID).Scan(&n)
	return n, err
}

// Touch updates last_active. Returns false when the session does not exist.
func (r *DeviceSessionRepository) Touch(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE device_sessions SET last_active = NOW() WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Deactivate marks a session inactive (soft logout).
func (r *DeviceSessionRepository) Deactivate(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE device_sessions SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a session. Idempotent: deleting a missing id returns
// (false, nil), not an error.
func (r *DeviceSessionRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM device_sessions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAllByUser removes all of a user's sessions, optionally keeping one.
// Returns the number of sessions deleted.
func (r *DeviceSessionRepository) DeleteAllByUser(ctx context.Context, userID int, excludeID *int) (int64, error) {
	var tag pgconn.CommandTag
	var err error
	if excludeID != nil {
		tag, err = r.pool.Exec(ctx,
			`DELETE FROM device_sessions WHERE user_id = $1 AND id <> $2`, userID, *excludeID)
	} else {
		tag, err = r.pool.Exec(ctx,
			`DELETE FROM device_sessions WHERE user_id = $1`, userID)
	}
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
