package usecase

import (
	"context"
	"sync"

	"logistics-crm/internal/domain/lead"
	"logistics-crm/internal/domain/order"
	"logistics-crm/internal/domain/user"
	"logistics-crm/internal/webhook"
)

// fakeTx runs the function directly; the in-memory repos have no
// transactions to join.
type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, tFunc func(ctx context.Context) error) error {
	return tFunc(ctx)
}

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads map[string]*lead.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[string]*lead.Lead)}
}

func (r *fakeLeadRepo) Create(_ context.Context, l *lead.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.leads[l.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) GetByID(_ context.Context, id string) (*lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLeadRepo) List(_ context.Context, f lead.Filter) ([]*lead.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*lead.Lead
	for _, l := range r.leads {
		if l.CreatedBy == f.CreatedBy {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLeadRepo) Update(_ context.Context, l *lead.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[l.ID]; !ok {
		return ErrNotFound
	}
	cp := *l
	r.leads[l.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[id]; !ok {
		return ErrNotFound
	}
	delete(r.leads, id)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*order.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*order.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) List(_ context.Context, f order.Filter) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*order.Order
	for _, o := range r.orders {
		if f.LeadID != "" && o.LeadID != f.LeadID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return ErrNotFound
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User // by username
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.Username] = &cp
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	payloads []webhook.Payload
}

func (n *fakeNotifier) Notify(p webhook.Payload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, p)
}

func (n *fakeNotifier) sent() []webhook.Payload {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]webhook.Payload(nil), n.payloads...)
}

type fakeEnqueuer struct {
	mu      sync.Mutex
	orderID string
	data    any
	taskID  string
	err     error
}

func (e *fakeEnqueuer) Enqueue(_ context.Context, orderID string, data any) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return "", e.err
	}
	e.orderID = orderID
	e.data = data
	if e.taskID == "" {
		e.taskID = "task-1"
	}
	return e.taskID, nil
}
