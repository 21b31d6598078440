// Package client calls the relay on behalf of a conversation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sweetpotato0/deadchat/config"
	"github.com/sweetpotato0/deadchat/message"
	"github.com/sweetpotato0/deadchat/pkg/logging"
)

// GeneratePath is the relay route for persona replies.
const GeneratePath = "/api/gemini"

// FallbackMessage replaces a reply that could not be fetched.
const FallbackMessage = "Sorry, I could not connect right now. Please try again."

// Client posts generation requests to a relay.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// New builds a Client from cfg.
func New(cfg *config.ClientConfig) *Client {
	return &Client{
		BaseURL:    cfg.BackendURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Generate asks the relay for a reply. A non-2xx status, a transport
// failure or an undecodable body is an error.
func (c *Client) Generate(ctx context.Context, characterPrompt, userMessage string) (string, error) {
	payload, err := json.Marshal(message.GenerationRequest{
		CharacterPrompt: characterPrompt,
		UserMessage:     userMessage,
	})
	if err != nil {
		return "", fmt.Errorf("client: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("client: call relay: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("client: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb message.ErrorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			return "", &StatusError{Code: resp.StatusCode, Message: eb.Error, Details: eb.Details}
		}
		return "", &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var result message.GenerationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("client: decode response: %w", err)
	}
	return result.Text, nil
}

// Reply is Generate with failures replaced by FallbackMessage.
func (c *Client) Reply(ctx context.Context, characterPrompt, userMessage string) string {
	return c.ReplyOr(ctx, characterPrompt, userMessage, FallbackMessage)
}

// ReplyOr is Generate with failures replaced by fallback.
func (c *Client) ReplyOr(ctx context.Context, characterPrompt, userMessage, fallback string) string {
	text, err := c.Generate(ctx, characterPrompt, userMessage)
	if err != nil {
		c.logger().Warn("relay call failed", "error", err)
		return fallback
	}
	return text
}

func (c *Client) endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = config.DefaultBackendURL
	}
	return strings.TrimRight(base, "/") + GeneratePath
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.WithComponent("client")
}

// StatusError reports a non-2xx relay response.
type StatusError struct {
	Code    int
	Message string
	Details string
}

func (e *StatusError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("relay returned %d: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("relay returned %d: %s", e.Code, e.Message)
}
