package validator

import (
	relayerrors "github.com/sweetpotato0/deadchat/errors"
	"github.com/sweetpotato0/deadchat/message"
	"github.com/sweetpotato0/deadchat/middleware"
)

// ValidatorFunc validates a relay request
type ValidatorFunc func(message.GenerationRequest) error

// RequireFields rejects requests missing the persona description or the
// user message. Presence only; whitespace is not trimmed.
func RequireFields(req message.GenerationRequest) error {
	if !req.Complete() {
		return relayerrors.NewMissingField()
	}
	return nil
}

// InputValidator validates the request before anything downstream runs
type InputValidator struct {
	validator ValidatorFunc
}

// NewInputValidator creates an input validation middleware
func NewInputValidator(validator ValidatorFunc) *InputValidator {
	return &InputValidator{validator: validator}
}

// Name returns the middleware name
func (m *InputValidator) Name() string {
	return "InputValidator"
}

// Execute validates the input
func (m *InputValidator) Execute(ctx *middleware.Context, next middleware.Handler) error {
	if m.validator != nil {
		if err := m.validator(ctx.Request); err != nil {
			return err
		}
	}
	return next(ctx)
}
