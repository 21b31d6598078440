package provider

import (
	"context"
)

// Generator produces text for a prompt using the given provider credential.
// Implementations must be safe for concurrent use; each call is independent.
type Generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, apiKey, prompt string) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	return f(ctx, apiKey, prompt)
}
