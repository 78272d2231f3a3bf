// Package reqctx carries per-request values through the middleware
// pipeline. Values are written once by their producing stage and are
// read-only afterwards.
package reqctx

import (
	"bytes"
	"context"
	"io"

	"logistics-crm/internal/auth"
)

type identityKey struct{}
type bodyKey struct{}

// WithIdentity attaches the resolved caller. Only the auth stage calls this.
func WithIdentity(ctx context.Context, id *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the resolved caller, or nil for anonymous requests.
func IdentityFrom(ctx context.Context) *auth.Identity {
	id, _ := ctx.Value(identityKey{}).(*auth.Identity)
	return id
}

// WithBody attaches the fully buffered request body. Only the body-buffer
// stage calls this; the raw body has already been consumed by then.
func WithBody(ctx context.Context, body []byte) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

// BodyFrom returns the buffered request body bytes, or nil if the request
// had none. Callers must not mutate the returned slice.
func BodyFrom(ctx context.Context) []byte {
	body, _ := ctx.Value(bodyKey{}).([]byte)
	return body
}

// BodyReader returns a fresh reader over the buffered body, so any stage
// can re-read a body that is otherwise consumable only once.
func BodyReader(ctx context.Context) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(BodyFrom(ctx)))
}
