package config

import (
	"strings"
	"time"
)

// DefaultBackendURL is where the client expects a local relay.
const DefaultBackendURL = "http://localhost:5001"

// ClientConfig holds configuration for relay callers.
type ClientConfig struct {
	BackendURL string
	Timeout    time.Duration
}

// LoadClientConfig reads DEADCHAT_BACKEND_URL and DEADCHAT_CLIENT_TIMEOUT.
func LoadClientConfig(getenv LookupFunc) (*ClientConfig, error) {
	c := &ClientConfig{BackendURL: DefaultBackendURL}
	if v := getenv("DEADCHAT_BACKEND_URL"); v != "" {
		c.BackendURL = strings.TrimRight(v, "/")
	}
	var err error
	if c.Timeout, err = envDuration(getenv, "DEADCHAT_CLIENT_TIMEOUT", 90*time.Second); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the backend address and timeout.
func (c *ClientConfig) Validate() error {
	v := NewValidator()
	v.ValidateHTTPURL("backendURL", c.BackendURL)
	v.RequireNonNegativeDuration("timeout", c.Timeout)
	return v.Error()
}
