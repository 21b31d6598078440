package relay

import "context"

// Caller describes who issued a relay request.
type Caller struct {
	RequestID string
	ClientIP  string
}

type callerKey struct{}

// WithCaller attaches caller details to ctx.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom extracts caller details from ctx.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}
