// Package cache memoizes read endpoint responses in Redis. It is strictly
// best-effort: a store failure never turns a successful read into an error.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key fingerprints a read request. The raw query string is hashed as sent,
// so the fingerprint is query-order-sensitive: "?a=1&b=2" and "?b=2&a=1"
// occupy separate cache slots.
func Key(r *http.Request) string {
	raw := r.URL.Path + "?" + r.URL.RawQuery + "&method=" + r.Method
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Middleware serves GET responses from Redis when a fingerprint matches,
// and stores successful responses with the given TTL on a miss.
func Middleware(rdb *redis.Client, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := Key(r)
			ctx := r.Context()

			body, err := rdb.Get(ctx, key).Bytes()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(body)
				return
			}
			if !errors.Is(err, redis.Nil) {
				slog.Warn("response cache read failed, serving uncached", "error", err)
			}

			rec := &recorder{ResponseWriter: w, statusCode: http.StatusOK, body: &bytes.Buffer{}}
			next.ServeHTTP(rec, r)

			if rec.statusCode != http.StatusOK {
				return
			}
			if err := rdb.Set(ctx, key, rec.body.Bytes(), ttl).Err(); err != nil {
				slog.Warn("response cache write failed", "error", err)
			}
		})
	}
}

type recorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	body        *bytes.Buffer
}

func (r *recorder) WriteHeader(statusCode int) {
	if !r.wroteHeader {
		r.statusCode = statusCode
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *recorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
