package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyHeader = "Idempotency-Key"

// storedResponse is the serialized form of a completed handler response.
type storedResponse struct {
	StatusCode int         `json:"status_code"`
	Headers    http.Header `json:"headers"`
	Body       []byte      `json:"body"`
}

// Idempotency replays previously recorded responses for mutating requests
// that carry an Idempotency-Key header. A response is recorded only after
// the handler completes with a 2xx status, so clients may retry failures
// with the same key. Concurrent duplicates racing before the first record
// are intentionally not deduplicated; only a completed first call arms
// the replay.
func Idempotency(rdb *redis.Client, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			token := r.Header.Get(idempotencyHeader)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := "idempotency:" + token
			ctx := r.Context()

			data, err := rdb.Get(ctx, key).Bytes()
			if err == nil {
				var stored storedResponse
				if jsonErr := json.Unmarshal(data, &stored); jsonErr == nil {
					replay(w, &stored)
					return
				}
				slog.Warn("corrupt idempotency record, ignoring", "key", key)
			} else if !errors.Is(err, redis.Nil) {
				slog.Warn("idempotency lookup failed, proceeding", "key", key, "error", err)
			}

			// The store persists complete values only, so the response is
			// buffered in full before it can be recorded.
			before := w.Header().Clone()
			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK, body: &bytes.Buffer{}}
			next.ServeHTTP(rec, r)

			if rec.statusCode < 200 || rec.statusCode >= 300 {
				return
			}

			stored := storedResponse{
				StatusCode: rec.statusCode,
				Headers:    handlerHeaders(rec.Header(), before),
				Body:       rec.body.Bytes(),
			}
			payload, err := json.Marshal(&stored)
			if err != nil {
				slog.Warn("failed to serialize idempotency record", "key", key, "error", err)
				return
			}
			if err := rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
				// Best effort: the caller already has its response.
				slog.Warn("failed to record idempotent response", "key", key, "error", err)
			}
		})
	}
}

// handlerHeaders returns the headers the handler itself wrote. Headers
// already set by earlier pipeline stages (the rate-limit usage headers in
// particular) must not be frozen into the record: a replay gets fresh
// ones from the current request's pipeline.
func handlerHeaders(after, before http.Header) http.Header {
	h := http.Header{}
	for name, values := range after {
		if slices.Equal(before[name], values) {
			continue
		}
		h[name] = slices.Clone(values)
	}
	return h
}

func replay(w http.ResponseWriter, stored *storedResponse) {
	for name, values := range stored.Headers {
		w.Header().Del(name)
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(stored.StatusCode)
	w.Write(stored.Body)
}

// responseRecorder tees the response so it can be persisted after the
// handler has written it.
type responseRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	body        *bytes.Buffer
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.wroteHeader {
		r.statusCode = statusCode
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
