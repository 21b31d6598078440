package limiter

import (
	"context"
	"log/slog"

	relayerrors "github.com/sweetpotato0/deadchat/errors"
	"github.com/sweetpotato0/deadchat/middleware"
)

// MetadataKey is the middleware metadata entry holding the limiter key.
const MetadataKey = "client_ip"

// ErrRateLimitExceeded indicates rate limit has been exceeded
var ErrRateLimitExceeded = relayerrors.ErrRateLimited

// Limiter grants or refuses one request for key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimiter middleware for rate limiting
type RateLimiter struct {
	limiter Limiter
	logger  *slog.Logger
}

// NewRateLimiter creates a rate limiting middleware
func NewRateLimiter(limiter Limiter, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{limiter: limiter, logger: logger}
}

// Name returns the middleware name
func (m *RateLimiter) Name() string {
	return "RateLimiter"
}

// Execute checks rate limit. A failing limiter backend lets the request
// through rather than turning an infrastructure fault into a client error.
func (m *RateLimiter) Execute(ctx *middleware.Context, next middleware.Handler) error {
	if m.limiter == nil {
		return next(ctx)
	}
	key, _ := ctx.Metadata[MetadataKey].(string)
	if key == "" {
		key = "global"
	}
	ok, err := m.limiter.Allow(ctx.Context(), key)
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("rate limiter unavailable, allowing request", "error", err)
		}
		return next(ctx)
	}
	if !ok {
		return ErrRateLimitExceeded
	}
	return next(ctx)
}
