package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"logistics-crm/internal/domain/task"
	"logistics-crm/internal/pricing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanSource feeds queued messages and then blocks until the context is
// cancelled, mirroring a blocking list pop.
type chanSource struct {
	msgs chan *task.Message
}

func (s *chanSource) Pop(ctx context.Context) (*task.Message, error) {
	select {
	case msg := <-s.msgs:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func repriceMsg(t *testing.T, id string, q pricing.Quote) *task.Message {
	t.Helper()

	data, err := json.Marshal(q)
	require.NoError(t, err)
	return &task.Message{TaskID: id, OrderID: "order-" + id, Data: data, EnqueuedAt: time.Now().UTC()}
}

func TestWorker_ProcessesTasks(t *testing.T) {
	src := &chanSource{msgs: make(chan *task.Message, 3)}
	src.msgs <- repriceMsg(t, "t1", pricing.Quote{BasePrice: 1000, DistanceKm: 100, VehicleType: "truck", Season: "winter"})
	src.msgs <- repriceMsg(t, "t2", pricing.Quote{BasePrice: 200, DistanceKm: 10, VehicleType: "sedan", Operable: true})
	src.msgs <- repriceMsg(t, "t3", pricing.Quote{BasePrice: 50, VehicleType: "suv", Operable: true, Season: "summer"})

	before := testutil.ToFloat64(tasksProcessed)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(src).Run(ctx) }()

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(tasksProcessed)-before == 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

// flakySource fails a fixed number of pops with err before handing out
// its messages.
type flakySource struct {
	failures atomic.Int64
	err      error
	inner    *chanSource
}

func (s *flakySource) Pop(ctx context.Context) (*task.Message, error) {
	if s.failures.Add(-1) >= 0 {
		return nil, s.err
	}
	return s.inner.Pop(ctx)
}

func TestWorker_BacksOffOnTransportErrorWithoutCountingDrops(t *testing.T) {
	inner := &chanSource{msgs: make(chan *task.Message, 1)}
	inner.msgs <- repriceMsg(t, "t1", pricing.Quote{BasePrice: 100, VehicleType: "sedan", Operable: true})

	src := &flakySource{err: errors.New("dial tcp 127.0.0.1:6379: connection refused"), inner: inner}
	src.failures.Store(3)

	beforeErr := testutil.ToFloat64(taskErrors)
	beforeOK := testutil.ToFloat64(tasksProcessed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(src)
	w.retryDelay = time.Millisecond
	go w.Run(ctx)

	// The loop rides out the outage and processes the queued task once
	// the source recovers; transport errors are not counted as drops.
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(tasksProcessed)-beforeOK == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(taskErrors)-beforeErr)
}

func TestWorker_CountsUndecodableListEntriesAsDrops(t *testing.T) {
	inner := &chanSource{msgs: make(chan *task.Message, 1)}
	inner.msgs <- repriceMsg(t, "t1", pricing.Quote{BasePrice: 100, VehicleType: "sedan", Operable: true})

	src := &flakySource{err: fmt.Errorf("%w: invalid character", task.ErrMalformed), inner: inner}
	src.failures.Store(1)

	beforeErr := testutil.ToFloat64(taskErrors)
	beforeOK := testutil.ToFloat64(tasksProcessed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go New(src).Run(ctx)

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(tasksProcessed)-beforeOK == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(taskErrors)-beforeErr)
}

func TestWorker_DropsMalformedPayload(t *testing.T) {
	src := &chanSource{msgs: make(chan *task.Message, 2)}
	src.msgs <- &task.Message{TaskID: "bad", OrderID: "order-bad", Data: json.RawMessage(`{not json`)}
	src.msgs <- repriceMsg(t, "good", pricing.Quote{BasePrice: 100, VehicleType: "sedan", Operable: true})

	beforeErr := testutil.ToFloat64(taskErrors)
	beforeOK := testutil.ToFloat64(tasksProcessed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go New(src).Run(ctx)

	// The bad task is dropped and the one behind it still gets processed.
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(tasksProcessed)-beforeOK == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(taskErrors)-beforeErr)
}
