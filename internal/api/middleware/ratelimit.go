package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"logistics-crm/internal/api/reqctx"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the per-identity counter, starts the window
// on the 0->1 transition and reports the TTL when the limit is exceeded.
// Running it as one script keeps the whole decision a single atomic round
// trip; separate INCR/EXPIRE/TTL calls would race under concurrency.
var fixedWindowScript = redis.NewScript(`
local key = KEYS[1]
local window = tonumber(ARGV[1])
local limit = tonumber(ARGV[2])

local count = redis.call('INCR', key)
if count == 1 then
    redis.call('EXPIRE', key, window)
end
if count > limit then
    local ttl = redis.call('TTL', key)
    return {count, ttl}
end
return {count, -1}
`)

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// RateLimit gates requests with a resolved identity through a fixed-window
// counter in Redis. Anonymous traffic bypasses the limiter. Redis failures
// fail open: throttling is a protection, not a correctness requirement.
func RateLimit(rdb *redis.Client, cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := reqctx.IdentityFrom(r.Context())
			if id == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := "rate_limit:user:" + id.UserID
			windowSecs := int(cfg.Window.Seconds())

			res, err := fixedWindowScript.Run(r.Context(), rdb,
				[]string{key}, windowSecs, cfg.Limit).Int64Slice()
			if err != nil || len(res) != 2 {
				slog.Warn("rate limiter unavailable, failing open", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			count, ttl := res[0], res[1]
			if ttl > 0 {
				w.Header().Set("Retry-After", strconv.FormatInt(ttl, 10))
				writeJSONError(w, http.StatusTooManyRequests,
					fmt.Sprintf("Rate limit exceeded. Retry after %ds", ttl))
				return
			}

			remaining := int64(cfg.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Unix()+int64(windowSecs), 10))

			next.ServeHTTP(w, r)
		})
	}
}
