package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrMissingField indicates a required request field was absent or empty
	ErrMissingField = errors.New("missing characterPrompt or userMessage")

	// ErrProvider indicates the generation provider call failed
	ErrProvider = errors.New("generation provider failed")

	// ErrRateLimited indicates the relay refused the request because its budget is spent
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNoCredentials indicates the credential pool is empty
	ErrNoCredentials = errors.New("no provider credentials configured")

	// ErrInvalidInput indicates that input validation failed
	ErrInvalidInput = errors.New("invalid input")
)

// Kind classifies a relay failure.
type Kind string

const (
	KindMissingField  Kind = "MissingField"
	KindProviderError Kind = "ProviderError"
	KindRateLimited   Kind = "RateLimited"
	KindInternal      Kind = "Internal"
)

// RelayError is the structured failure returned by the relay pipeline.
type RelayError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *RelayError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a RelayError against the sentinel of its kind.
func (e *RelayError) Is(target error) bool {
	switch e.Kind {
	case KindMissingField:
		return target == ErrMissingField
	case KindProviderError:
		return target == ErrProvider
	case KindRateLimited:
		return target == ErrRateLimited
	}
	return false
}

// NewMissingField reports an absent request field.
func NewMissingField() *RelayError {
	return &RelayError{Kind: KindMissingField, Message: ErrMissingField.Error()}
}

// NewProviderError wraps a failed provider call. Message carries the
// underlying error text so callers can surface it as diagnostics.
func NewProviderError(err error) *RelayError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &RelayError{Kind: KindProviderError, Message: msg, Err: err}
}

// KindOf classifies err. Unclassified errors map to KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var re *RelayError
	if errors.As(err, &re) {
		return re.Kind
	}
	switch {
	case errors.Is(err, ErrMissingField):
		return KindMissingField
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrProvider):
		return KindProviderError
	}
	return KindInternal
}

// Details returns the diagnostic message carried by err.
func Details(err error) string {
	var re *RelayError
	if errors.As(err, &re) {
		return re.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
