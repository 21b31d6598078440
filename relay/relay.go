// Package relay forwards persona conversations to the generation provider.
//
// A Service is stateless apart from its read-only credential pool: every
// call validates the request, draws one credential at random, synthesizes a
// single-shot prompt and makes exactly one outbound call. Failures are never
// retried.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sweetpotato0/deadchat/config"
	"github.com/sweetpotato0/deadchat/contrib/provider"
	"github.com/sweetpotato0/deadchat/credential"
	relayerrors "github.com/sweetpotato0/deadchat/errors"
	"github.com/sweetpotato0/deadchat/message"
	"github.com/sweetpotato0/deadchat/metrics"
	"github.com/sweetpotato0/deadchat/middleware"
	"github.com/sweetpotato0/deadchat/middleware/enricher"
	"github.com/sweetpotato0/deadchat/middleware/errorhandler"
	"github.com/sweetpotato0/deadchat/middleware/limiter"
	"github.com/sweetpotato0/deadchat/middleware/logger"
	"github.com/sweetpotato0/deadchat/middleware/validator"
	"github.com/sweetpotato0/deadchat/pkg/logging"
	"github.com/sweetpotato0/deadchat/pkg/telemetry"
	"github.com/sweetpotato0/deadchat/prompt"
)

// Service relays generation requests.
type Service struct {
	pool      *credential.Pool
	generator provider.Generator
	source    credential.Source
	logger    *slog.Logger
	limiter   limiter.Limiter
	model     string
	timeout   time.Duration
	chain     *middleware.MiddlewareChain
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for failure and debug records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithSource pins the random source used for credential selection.
func WithSource(src credential.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithTimeout bounds each outbound call. Zero leaves calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithLimiter enables request limiting.
func WithLimiter(l limiter.Limiter) Option {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithModel sets the model label used in metrics and traces.
func WithModel(model string) Option {
	return func(s *Service) {
		s.model = model
	}
}

// New constructs a Service over an immutable credential pool.
func New(pool *credential.Pool, gen provider.Generator, opts ...Option) (*Service, error) {
	if pool == nil || pool.Len() == 0 {
		return nil, fmt.Errorf("relay: %w", relayerrors.ErrNoCredentials)
	}
	if gen == nil {
		return nil, fmt.Errorf("relay: generator cannot be nil")
	}
	s := &Service{
		pool:      pool,
		generator: gen,
		source:    credential.Default,
		model:     config.DefaultModel,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.WithComponent("relay")
	}

	s.chain = middleware.NewChain(
		logger.NewRequestLogger(s.logger),
		logger.NewResponseLogger(s.logger),
		errorhandler.NewErrorHandler(errorhandler.ProviderFailures(s.logger)),
		validator.NewInputValidator(validator.RequireFields),
	)
	if s.limiter != nil {
		s.chain.Add(limiter.NewRateLimiter(s.limiter, s.logger))
	}
	s.chain.Add(enricher.Named("PromptSynthesizer", synthesizePrompt))
	return s, nil
}

// Relay generates a persona reply for req. The returned error is a
// *errors.RelayError of kind MissingField, RateLimited or ProviderError.
func (s *Service) Relay(ctx context.Context, req message.GenerationRequest) (string, error) {
	defer metrics.TrackInflight()()

	mc := middleware.NewContext(ctx, req)
	if caller, ok := CallerFrom(ctx); ok {
		if caller.RequestID != "" {
			mc.Metadata["request_id"] = caller.RequestID
		}
		if caller.ClientIP != "" {
			mc.Metadata[limiter.MetadataKey] = caller.ClientIP
		}
	}

	err := s.chain.Execute(mc, s.generate)
	if err != nil {
		metrics.RecordRelayRequest(string(relayerrors.KindOf(err)))
		return "", err
	}
	metrics.RecordRelayRequest("ok")
	return mc.Response, nil
}

// Middlewares lists the pipeline stages in execution order.
func (s *Service) Middlewares() []string {
	return s.chain.Names()
}

func synthesizePrompt(c *middleware.Context) error {
	c.Prompt = prompt.Relay(c.Request.CharacterPrompt, c.Request.UserMessage)
	return nil
}

func (s *Service) generate(c *middleware.Context) error {
	slot, key := s.pool.Pick(s.source)
	c.Metadata["credential_slot"] = slot
	metrics.RecordCredentialSelection(slot)

	ctx := c.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	ctx, span := telemetry.StartGeneration(ctx, s.model, slot)

	start := time.Now()
	text, err := s.generator.Generate(ctx, key, c.Prompt)
	metrics.ObserveProviderCall(s.model, err == nil, time.Since(start))
	telemetry.End(span, err)
	if err != nil {
		return err
	}
	c.Response = text
	return nil
}
