package logger

import (
	"log/slog"
	"time"

	relayerrors "github.com/sweetpotato0/deadchat/errors"
	"github.com/sweetpotato0/deadchat/middleware"
)

// RequestLogger logs incoming relay requests at debug level. Payload sizes
// are logged, never the persona text or the user message.
type RequestLogger struct {
	logger *slog.Logger
}

// NewRequestLogger creates a request logging middleware
func NewRequestLogger(logger *slog.Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

// Name returns the middleware name
func (m *RequestLogger) Name() string {
	return "RequestLogger"
}

// Execute logs the request
func (m *RequestLogger) Execute(ctx *middleware.Context, next middleware.Handler) error {
	if m.logger != nil {
		m.logger.Debug("relay request",
			"prompt_bytes", len(ctx.Request.CharacterPrompt),
			"message_bytes", len(ctx.Request.UserMessage),
		)
	}
	return next(ctx)
}

// ResponseLogger logs the outcome of each relay request
type ResponseLogger struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewResponseLogger creates a response logging middleware
func NewResponseLogger(logger *slog.Logger) *ResponseLogger {
	return &ResponseLogger{logger: logger, now: time.Now}
}

// Name returns the middleware name
func (m *ResponseLogger) Name() string {
	return "ResponseLogger"
}

// Execute logs the response
func (m *ResponseLogger) Execute(ctx *middleware.Context, next middleware.Handler) error {
	start := m.now()
	err := next(ctx)
	if m.logger == nil {
		return err
	}
	elapsed := m.now().Sub(start)
	if err != nil {
		m.logger.Debug("relay response", "outcome", string(relayerrors.KindOf(err)), "duration", elapsed)
		return err
	}
	m.logger.Debug("relay response", "outcome", "ok", "duration", elapsed, "text_bytes", len(ctx.Response))
	return nil
}
