package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tilmock/cefr-backend/internal/model"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notifications (title, body) VALUES ($1, $2)
		 RETURNING id, created_at`,
		n.Title, n.Body,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *NotificationRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&n)
	return n, err
}

func (r *NotificationRepository) List(ctx context.Context, limit, offset int) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, body, created_at FROM notifications
		 ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
