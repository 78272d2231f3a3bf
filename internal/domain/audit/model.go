package audit

import (
	"time"
)

// Entry is one row of the append-only audit trail. Only the SHA-256
// fingerprint of the request payload is kept, never the payload itself.
type Entry struct {
	UserID      string    `json:"user_id"`
	Endpoint    string    `json:"endpoint"` // "<METHOD> <path>"
	PayloadHash string    `json:"payload_hash"`
	CreatedAt   time.Time `json:"created_at"`
}
