// Package queue is the durable FIFO handoff between the API and the
// reprice worker: a named Redis list written with LPUSH and drained with
// BRPOP. Delivery is at most once: a popped message is gone, and a
// worker crash after the pop loses it. There is no redelivery path.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"logistics-crm/internal/domain/task"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Queue struct {
	rdb *redis.Client
	key string
}

func New(rdb *redis.Client, key string) *Queue {
	return &Queue{rdb: rdb, key: key}
}

// Enqueue pushes a reprice job and returns its opaque task id immediately.
func (q *Queue) Enqueue(ctx context.Context, orderID string, data any) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal task data: %w", err)
	}

	msg := task.Message{
		TaskID:     uuid.New().String(),
		OrderID:    orderID,
		Data:       payload,
		EnqueuedAt: time.Now().UTC(),
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal task message: %w", err)
	}

	if err := q.rdb.LPush(ctx, q.key, raw).Err(); err != nil {
		return "", fmt.Errorf("enqueue task: %w", err)
	}

	return msg.TaskID, nil
}

// Pop blocks until a message is available and removes it from the list.
// Concurrent workers may pop the same list; Redis hands each message to
// exactly one of them.
func (q *Queue) Pop(ctx context.Context) (*task.Message, error) {
	res, err := q.rdb.BRPop(ctx, 0, q.key).Result()
	if err != nil {
		return nil, fmt.Errorf("pop task: %w", err)
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("unexpected brpop reply of length %d", len(res))
	}

	var msg task.Message
	if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", task.ErrMalformed, err)
	}

	return &msg, nil
}
