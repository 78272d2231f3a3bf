// Package usecase holds one application operation per file: a struct
// carrying its dependencies, a constructor and an Execute method.
package usecase

import (
	"context"
	"errors"

	"logistics-crm/internal/domain/lead"
	"logistics-crm/internal/domain/order"
	"logistics-crm/internal/domain/user"
	"logistics-crm/internal/infrastructure/postgres"
	"logistics-crm/internal/webhook"
)

// ErrValidation marks malformed or out-of-range input. Handlers map it
// to 400.
var ErrValidation = errors.New("validation failed")

// ErrNotFound marks a missing entity. Handlers map it to 404. It is the
// same sentinel the repositories return, re-exported so callers stay off
// the storage package.
var ErrNotFound = postgres.ErrNotFound

type LeadRepo interface {
	Create(ctx context.Context, l *lead.Lead) error
	GetByID(ctx context.Context, id string) (*lead.Lead, error)
	List(ctx context.Context, f lead.Filter) ([]*lead.Lead, error)
	Update(ctx context.Context, l *lead.Lead) error
	Delete(ctx context.Context, id string) error
}

type OrderRepo interface {
	Create(ctx context.Context, o *order.Order) error
	GetByID(ctx context.Context, id string) (*order.Order, error)
	List(ctx context.Context, f order.Filter) ([]*order.Order, error)
	Update(ctx context.Context, o *order.Order) error
	Delete(ctx context.Context, id string) error
}

type UserRepo interface {
	Create(ctx context.Context, u *user.User) error
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// Transactor runs a function inside a single database transaction.
// Repository calls made with the wrapped context join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error
}

// Notifier delivers order state-transition webhooks without blocking.
type Notifier interface {
	Notify(p webhook.Payload)
}

// Enqueuer hands a reprice job to the task queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, orderID string, data any) (string, error)
}

// clampPage normalizes limit/offset the way the HTTP surface documents:
// limit 1..100 (default 20), offset >= 0.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
