package model

import (
	"context"
)

// AnonymousOwner is the history owner used when a request carries neither a
// JWT subject nor a session header.
const AnonymousOwner = "anonymous"

// RequestContext carries identity and tracing information for the lifetime of
// a request. It is immutable after construction and safe for concurrent reads.
type RequestContext struct {
	SubjectID     string
	SessionID     string
	Claims        map[string]any
	CorrelationID string
	TraceID       string
	SpanID        string
	Locale        string
}

// Owner resolves the history namespace for the request. A JWT subject wins
// over a session identifier; both absent means the shared anonymous owner.
func (rc *RequestContext) Owner() string {
	if rc.SubjectID != "" {
		return rc.SubjectID
	}
	if rc.SessionID != "" {
		return rc.SessionID
	}
	return AnonymousOwner
}

// Claim returns the value of the given claim key, or nil if not present.
func (rc *RequestContext) Claim(key string) any {
	if rc.Claims == nil {
		return nil
	}
	return rc.Claims[key]
}

type contextKey struct{}

// WithRequestContext attaches a RequestContext to the given context.
func WithRequestContext(ctx context.Context, rctx *RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rctx)
}

// RequestContextFrom extracts the RequestContext from the context, or returns nil
// if not present.
func RequestContextFrom(ctx context.Context) *RequestContext {
	rctx, _ := ctx.Value(contextKey{}).(*RequestContext)
	return rctx
}

// MustRequestContext extracts the RequestContext from the context, panicking if
// it is not present. This is safe to call in handlers that are guaranteed to run
// behind the request context middleware.
func MustRequestContext(ctx context.Context) *RequestContext {
	rctx := RequestContextFrom(ctx)
	if rctx == nil {
		panic("model: RequestContext not found in context")
	}
	return rctx
}
