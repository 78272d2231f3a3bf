package task

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrMalformed marks a list entry that cannot be decoded into a Message.
// Such an entry is already off the list and cannot be retried.
var ErrMalformed = errors.New("malformed task message")

// Message is the wire format of a reprice job on the Redis task list.
// It is immutable once enqueued and consumed at most once.
type Message struct {
	TaskID     string          `json:"task_id"`
	OrderID    string          `json:"order_id"`
	Data       json.RawMessage `json:"data"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}
