package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.5-flash"

// Config holds Gemini provider configuration
type Config struct {
	Model    string
	Endpoint string
}

// DefaultConfig returns default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Model: defaultModel,
	}
}

// WithModel set model.
func (cfg *Config) WithModel(model string) *Config {
	cfg.Model = model
	return cfg
}

// WithEndpoint set endpoint.
func (cfg *Config) WithEndpoint(endpoint string) *Config {
	cfg.Endpoint = endpoint
	return cfg
}

// Provider calls the Gemini generateContent operation through the official SDK.
// A client is built per call because the key changes from request to request.
type Provider struct {
	config *Config
}

// New creates a new Gemini provider
func New(config *Config) *Provider {
	if config == nil {
		config = DefaultConfig()
	}

	if config.Model == "" {
		config.Model = defaultModel
	}

	return &Provider{
		config: config,
	}
}

// Model returns the configured model id.
func (p *Provider) Model() string {
	return p.config.Model
}

// Generate implements provider.Generator. Errors from the SDK call are
// returned as is so their message reaches the caller unchanged.
func (p *Provider) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("Gemini API key not configured")
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if p.config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.config.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	resp, err := client.GenerativeModel(p.config.Model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return ResponseText(resp)
}

// ResponseText concatenates the text parts of the first candidate.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("empty response from Gemini")
	}
	if len(resp.Candidates) == 0 {
		if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("prompt blocked: %v", fb.BlockReason)
		}
		return "", errors.New("no candidates in response")
	}

	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", errors.New("no content parts in candidate")
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}
