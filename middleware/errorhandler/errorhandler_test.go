package errorhandler

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	relayerrors "github.com/sweetpotato0/deadchat/errors"
	"github.com/sweetpotato0/deadchat/middleware"
)

func TestErrorHandler(t *testing.T) {
	t.Run("catches error from next middleware", func(t *testing.T) {
		errorCaught := false
		handler := NewErrorHandler(func(ctx *middleware.Context, err error) error {
			errorCaught = true
			return nil // suppress error
		})

		ctx := &middleware.Context{}
		err := handler.Execute(ctx, func(c *middleware.Context) error {
			return errors.New("test error")
		})

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !errorCaught {
			t.Error("error was not caught")
		}
	})

	t.Run("passes through non-errors", func(t *testing.T) {
		handlerCalled := false
		handler := NewErrorHandler(func(ctx *middleware.Context, err error) error {
			handlerCalled = true
			return err
		})

		ctx := &middleware.Context{}
		err := handler.Execute(ctx, func(c *middleware.Context) error {
			return nil
		})

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if handlerCalled {
			t.Error("error handler should not be called for nil errors")
		}
	})
}

func TestProviderFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	handler := NewErrorHandler(ProviderFailures(logger))

	t.Run("wraps provider failures and logs once", func(t *testing.T) {
		buf.Reset()
		ctx := &middleware.Context{Metadata: map[string]any{"request_id": "req-1", "credential_slot": 2}}
		err := handler.Execute(ctx, func(c *middleware.Context) error {
			return errors.New("API key not valid")
		})

		if relayerrors.KindOf(err) != relayerrors.KindProviderError {
			t.Fatalf("expected ProviderError, got %v", err)
		}
		if relayerrors.Details(err) != "API key not valid" {
			t.Errorf("Details() = %q", relayerrors.Details(err))
		}
		if ctx.Error != err {
			t.Error("context error not recorded")
		}
		out := buf.String()
		if strings.Count(out, "Gemini API error") != 1 {
			t.Errorf("expected exactly one log line, got %q", out)
		}
		if !strings.Contains(out, "req-1") || !strings.Contains(out, "credential_slot=2") {
			t.Errorf("log line missing request metadata: %q", out)
		}
	})

	t.Run("client errors pass through unlogged", func(t *testing.T) {
		buf.Reset()
		for _, in := range []error{relayerrors.NewMissingField(), relayerrors.ErrRateLimited} {
			err := handler.Execute(&middleware.Context{}, func(c *middleware.Context) error { return in })
			if err != in {
				t.Errorf("expected %v to pass through, got %v", in, err)
			}
		}
		if buf.Len() != 0 {
			t.Errorf("unexpected log output %q", buf.String())
		}
	})
}
