package enricher

import (
	"github.com/sweetpotato0/deadchat/middleware"
)

// EnricherFunc enriches the context
type EnricherFunc func(*middleware.Context) error

// ContextEnricher adds additional data to the middleware context
type ContextEnricher struct {
	name     string
	enricher EnricherFunc
}

// NewContextEnricher creates a context enriching middleware
func NewContextEnricher(enricher EnricherFunc) *ContextEnricher {
	return &ContextEnricher{name: "ContextEnricher", enricher: enricher}
}

// Named creates an enricher reported under a specific name.
func Named(name string, enricher EnricherFunc) *ContextEnricher {
	return &ContextEnricher{name: name, enricher: enricher}
}

// Name returns the middleware name
func (m *ContextEnricher) Name() string {
	return m.name
}

// Execute enriches the context
func (m *ContextEnricher) Execute(ctx *middleware.Context, next middleware.Handler) error {
	if m.enricher != nil {
		if err := m.enricher(ctx); err != nil {
			return err
		}
	}
	return next(ctx)
}
