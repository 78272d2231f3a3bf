// Package webhook notifies an external endpoint about order state
// transitions. Delivery is best-effort with bounded retries and is fully
// decoupled from the triggering request, which has already been answered.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	attemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_delivery_attempts_total",
		Help: "The total number of webhook delivery attempts",
	})
	failuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_deliveries_failed_total",
		Help: "The total number of webhook deliveries that exhausted all attempts",
	})
)

// Payload is the body POSTed on an order state transition.
type Payload struct {
	OrderID    string  `json:"order_id"`
	FinalPrice float64 `json:"final_price"`
}

type Config struct {
	URL            string
	MaxAttempts    int
	InitialBackoff time.Duration
	Timeout        time.Duration
}

type Dispatcher struct {
	cfg    Config
	client *http.Client

	// base is the parent of per-delivery contexts so in-flight backoff
	// sleeps end at process shutdown, not at request completion.
	base context.Context
}

func NewDispatcher(base context.Context, cfg Config) *Dispatcher {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &Dispatcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		base:   base,
	}
}

// Notify delivers the payload in the background and returns immediately.
// Errors never reach the caller.
func (d *Dispatcher) Notify(p Payload) {
	go d.Send(d.base, p)
}

// Send delivers the payload with bounded retries and exponential backoff,
// blocking until delivery succeeds, attempts are exhausted or ctx ends.
func (d *Dispatcher) Send(ctx context.Context, p Payload) {
	body, err := json.Marshal(p)
	if err != nil {
		slog.Error("failed to marshal webhook payload", "order_id", p.OrderID, "error", err)
		return
	}

	delay := d.cfg.InitialBackoff
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		attemptsTotal.Inc()

		err = d.post(ctx, body)
		if err == nil {
			slog.Info("webhook delivered", "order_id", p.OrderID, "attempt", attempt)
			return
		}

		slog.Warn("webhook attempt failed",
			"order_id", p.OrderID, "attempt", attempt, "error", err)

		if attempt == d.cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			slog.Warn("webhook delivery cancelled by shutdown", "order_id", p.OrderID)
			return
		case <-time.After(delay):
		}
		delay *= 2
	}

	failuresTotal.Inc()
	slog.Error("webhook delivery failed permanently",
		"order_id", p.OrderID, "attempts", d.cfg.MaxAttempts, "error", err)
}

func (d *Dispatcher) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned %d", resp.StatusCode)
	}

	return nil
}
