package middleware

import (
	"io"
	"log/slog"
	"net/http"

	"logistics-crm/internal/api/reqctx"
)

// BufferBody drains the request body exactly once into an owned buffer,
// parks the bytes in the request context and hands the handler a fresh
// reader over the same buffer. Downstream stages that need the payload
// (the audit recorder in particular) read it through reqctx instead of
// competing for the single-read stream.
func BufferBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			slog.Warn("failed to read request body", "error", err)
			writeJSONError(w, http.StatusBadRequest, "unreadable request body")
			return
		}

		ctx := reqctx.WithBody(r.Context(), body)
		r = r.WithContext(ctx)
		r.Body = reqctx.BodyReader(ctx)

		next.ServeHTTP(w, r)
	})
}
