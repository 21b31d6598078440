package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "missing field", err: NewMissingField(), want: KindMissingField},
		{name: "wrapped provider", err: fmt.Errorf("relay: %w", NewProviderError(errors.New("quota"))), want: KindProviderError},
		{name: "rate limit sentinel", err: fmt.Errorf("limiter: %w", ErrRateLimited), want: KindRateLimited},
		{name: "plain", err: errors.New("boom"), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProviderErrorCarriesUnderlyingMessage(t *testing.T) {
	cause := errors.New("API key not valid")
	err := NewProviderError(cause)

	if Details(err) != "API key not valid" {
		t.Errorf("Details() = %q", Details(err))
	}
	if !errors.Is(err, cause) {
		t.Error("expected provider error to unwrap to its cause")
	}
	if !errors.Is(err, ErrProvider) {
		t.Error("expected provider error to match ErrProvider")
	}
	if errors.Is(err, ErrMissingField) {
		t.Error("provider error must not match ErrMissingField")
	}
}
