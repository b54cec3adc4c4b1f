// Package reqid carries a per-request identifier through context.Context so
// that log lines from handlers and outgoing market calls can be correlated.
package reqid

import (
	"context"

	"github.com/google/uuid"
)

type rqIDKey struct{}

// New returns a fresh request ID.
func New() string {
	return uuid.NewString()
}

// WithID returns a copy of ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, rqIDKey{}, id)
}

// FromContext returns the request ID stored in ctx, or "" if there is none.
func FromContext(ctx context.Context) string {
	id, ok := ctx.Value(rqIDKey{}).(string)
	if !ok {
		return ""
	}
	return id
}
