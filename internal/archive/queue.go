package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisQueue pushes documents onto a Redis list for the archive worker.
type RedisQueue struct {
	rdb *redis.Client
	key string
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{rdb: rdb, key: key}
}

func (q *RedisQueue) Enqueue(ctx context.Context, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := q.rdb.RPush(ctx, q.key, raw).Err(); err != nil {
		return fmt.Errorf("queue document: %w", err)
	}
	return nil
}
