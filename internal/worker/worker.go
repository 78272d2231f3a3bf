package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"logistics-crm/internal/domain/task"
	"logistics-crm/internal/pricing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tasksProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worker_reprice_tasks_processed_total",
		Help: "The total number of reprice tasks completed",
	})
	taskErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worker_reprice_task_errors_total",
		Help: "The total number of reprice tasks dropped due to errors",
	})
)

// TaskSource yields reprice jobs, blocking until one is available.
type TaskSource interface {
	Pop(ctx context.Context) (*task.Message, error)
}

// Worker drains the reprice queue and re-runs the price calculator for
// each job. It runs outside the request-serving path so its blocking pop
// never starves handlers.
type Worker struct {
	source TaskSource

	// retryDelay spaces out re-pops while the task source is unreachable
	// so the loop does not spin against a down store.
	retryDelay time.Duration
}

func New(source TaskSource) *Worker {
	return &Worker{source: source, retryDelay: time.Second}
}

func (w *Worker) Run(ctx context.Context) error {
	slog.Info("reprice worker started")

	for {
		msg, err := w.source.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, task.ErrMalformed) {
				// Already off the list; drop it.
				slog.Error("dropping undecodable task", "error", err)
				taskErrors.Inc()
				continue
			}
			// Transport failure: the list is intact, back off and retry.
			slog.Error("task source unavailable", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.retryDelay):
			}
			continue
		}

		w.process(msg)
	}
}

func (w *Worker) process(msg *task.Message) {
	var quote pricing.Quote
	if err := json.Unmarshal(msg.Data, &quote); err != nil {
		slog.Error("failed to decode task payload, dropping task",
			"task_id", msg.TaskID, "order_id", msg.OrderID, "error", err)
		taskErrors.Inc()
		return
	}

	breakdown := pricing.Calculate(quote)

	slog.Info("repriced order",
		"task_id", msg.TaskID,
		"order_id", msg.OrderID,
		"final_price", breakdown.FinalPrice)
	tasksProcessed.Inc()
}
