package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"logistics-crm/internal/api/reqctx"
	"logistics-crm/internal/domain/audit"
)

// AuditRecorder appends audit entries. Satisfied by postgres.AuditRepository.
type AuditRecorder interface {
	Append(ctx context.Context, e *audit.Entry) error
}

// Audit records mutating calls made by a resolved identity. The payload
// fingerprint comes from the body buffered by BufferBody, since the raw
// stream is gone by the time the handler returns. The entry is appended
// after the handler completes; append failures are logged and swallowed.
func Audit(recorder AuditRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)

			id := reqctx.IdentityFrom(r.Context())
			if id == nil {
				return
			}

			hash := ""
			if body := reqctx.BodyFrom(r.Context()); len(body) > 0 {
				sum := sha256.Sum256(body)
				hash = hex.EncodeToString(sum[:])
			}

			entry := &audit.Entry{
				UserID:      id.UserID,
				Endpoint:    r.Method + " " + r.URL.Path,
				PayloadHash: hash,
				CreatedAt:   time.Now().UTC(),
			}

			if err := recorder.Append(r.Context(), entry); err != nil {
				slog.Warn("failed to append audit entry",
					"endpoint", entry.Endpoint, "user_id", entry.UserID, "error", err)
			}
		})
	}
}
