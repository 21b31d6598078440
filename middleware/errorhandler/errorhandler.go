package errorhandler

import (
	"log/slog"

	relayerrors "github.com/sweetpotato0/deadchat/errors"
	"github.com/sweetpotato0/deadchat/middleware"
)

// ErrorHandlerFunc handles errors
type ErrorHandlerFunc func(*middleware.Context, error) error

// ErrorHandler handles errors in the middleware chain
type ErrorHandler struct {
	handler ErrorHandlerFunc
}

// NewErrorHandler creates an error handling middleware
func NewErrorHandler(handler ErrorHandlerFunc) *ErrorHandler {
	return &ErrorHandler{handler: handler}
}

// Name returns the middleware name
func (m *ErrorHandler) Name() string {
	return "ErrorHandler"
}

// Execute handles errors from downstream middlewares
func (m *ErrorHandler) Execute(ctx *middleware.Context, next middleware.Handler) error {
	err := next(ctx)
	if err != nil && m.handler != nil {
		err = m.handler(ctx, err)
	}
	ctx.Error = err
	return err
}

// ProviderFailures collapses every unclassified downstream failure into a
// ProviderError and logs it once. Errors that already carry a relay kind
// pass through untouched.
func ProviderFailures(logger *slog.Logger) ErrorHandlerFunc {
	return func(ctx *middleware.Context, err error) error {
		switch relayerrors.KindOf(err) {
		case relayerrors.KindMissingField, relayerrors.KindRateLimited:
			return err
		case relayerrors.KindProviderError:
		default:
			err = relayerrors.NewProviderError(err)
		}
		if logger != nil {
			attrs := []any{"error", relayerrors.Details(err)}
			if id, ok := ctx.Metadata["request_id"]; ok {
				attrs = append(attrs, "request_id", id)
			}
			if slot, ok := ctx.Metadata["credential_slot"]; ok {
				attrs = append(attrs, "credential_slot", slot)
			}
			logger.Error("Gemini API error", attrs...)
		}
		return err
	}
}
