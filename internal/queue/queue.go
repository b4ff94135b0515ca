// Package queue carries notification requests from the actions that raise them to
// the notification worker over a Redis list.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eurekastreams-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

var ErrMalformed = errors.New("malformed notification request")

// ListClient is the part of *redis.Client the queue uses.
type ListClient interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

type RedisQueue struct {
	client  ListClient
	key     string
	timeout time.Duration
}

// NewRedisQueue returns a queue on the list at key. Dequeue blocks for at most
// timeout.
func NewRedisQueue(client ListClient, key string, timeout time.Duration) *RedisQueue {
	return &RedisQueue{client: client, key: key, timeout: timeout}
}

func (q *RedisQueue) Enqueue(ctx context.Context, req *domain.NotificationRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode notification request: %w", err)
	}
	return q.client.RPush(ctx, q.key, payload).Err()
}

// Dequeue waits for the next request. It returns (nil, nil) when the wait times
// out. A payload that does not decode is returned as an error wrapping
// ErrMalformed, and is gone from the queue.
func (q *RedisQueue) Dequeue(ctx context.Context) (*domain.NotificationRequest, error) {
	values, err := q.client.BLPop(ctx, q.timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(values) != 2 {
		return nil, fmt.Errorf("unexpected BLPOP reply of %d values", len(values))
	}

	var req domain.NotificationRequest
	if err := json.Unmarshal([]byte(values[1]), &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &req, nil
}
