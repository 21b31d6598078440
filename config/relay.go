package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/pflag"

	relayerrors "github.com/sweetpotato0/deadchat/errors"
)

// DefaultModel is the Gemini model the relay generates with.
const DefaultModel = "gemini-2.5-flash"

// RelayConfig holds configuration for the relay server.
type RelayConfig struct {
	Port            int
	APIKeys         []string
	Model           string
	Endpoint        string
	ProviderTimeout time.Duration
	RateLimit       int
	RateWindow      time.Duration
	RedisAddr       string
	Tracing         bool
	LogFormat       string
	LogLevel        string
}

// LookupFunc resolves an environment variable; os.Getenv satisfies it.
type LookupFunc func(string) string

// LoadRelayConfig populates a RelayConfig from the environment. Flags bound
// with BindFlags may override the result before Validate is called.
//
// Credentials come from GEMINI_API_KEYS (comma separated), GEMINI_API_KEY and
// GEMINI_API_KEY_1..N. There is no built-in fallback key.
func LoadRelayConfig(getenv LookupFunc) (*RelayConfig, error) {
	c := &RelayConfig{
		Model:      DefaultModel,
		RateWindow: time.Minute,
		LogFormat:  "json",
		LogLevel:   "info",
	}

	var err error
	if c.Port, err = envInt(getenv, "PORT", 5001); err != nil {
		return nil, err
	}
	if c.RateLimit, err = envInt(getenv, "RELAY_RATE_LIMIT", 0); err != nil {
		return nil, err
	}
	if c.ProviderTimeout, err = envDuration(getenv, "RELAY_PROVIDER_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if c.RateWindow, err = envDuration(getenv, "RELAY_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if v := getenv("GEMINI_MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("DEADCHAT_LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := getenv("DEADCHAT_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	c.Endpoint = getenv("GEMINI_ENDPOINT")
	c.RedisAddr = getenv("RELAY_REDIS_ADDR")
	c.Tracing, _ = strconv.ParseBool(getenv("RELAY_TRACING"))
	c.APIKeys = collectKeys(getenv)
	return c, nil
}

// BindFlags registers command line overrides for the loaded values.
func (c *RelayConfig) BindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.Port, "port", c.Port, "HTTP listen port for the relay")
	fs.StringVar(&c.Model, "model", c.Model, "Gemini model used for generation")
	fs.DurationVar(&c.ProviderTimeout, "provider-timeout", c.ProviderTimeout, "maximum duration of one provider call; 0 disables")
	fs.IntVar(&c.RateLimit, "rate-limit", c.RateLimit, "maximum relay requests per window; 0 disables limiting")
	fs.DurationVar(&c.RateWindow, "rate-window", c.RateWindow, "window length for --rate-limit")
	fs.StringVar(&c.RedisAddr, "redis-addr", c.RedisAddr, "Redis address shared by relay replicas for rate limiting")
	fs.BoolVar(&c.Tracing, "tracing", c.Tracing, "export OpenTelemetry traces")
}

// Validate fails fast when the relay cannot operate.
func (c *RelayConfig) Validate() error {
	if len(c.APIKeys) == 0 {
		return fmt.Errorf("config: %w: set GEMINI_API_KEYS or GEMINI_API_KEY_1", relayerrors.ErrNoCredentials)
	}
	v := NewValidator()
	v.ValidatePort("port", c.Port)
	v.RequireNonEmpty("model", c.Model)
	v.RequireNonNegativeDuration("providerTimeout", c.ProviderTimeout)
	v.RequireNonNegative("rateLimit", c.RateLimit)
	if c.RateLimit > 0 {
		v.RequirePositiveDuration("rateWindow", c.RateWindow)
	}
	v.ValidateOneOf("logFormat", c.LogFormat, "json", "text")
	v.ValidateOneOf("logLevel", c.LogLevel, "debug", "info", "warn", "error")
	return v.Error()
}

// Addr returns the listen address for the configured port.
func (c *RelayConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func collectKeys(getenv LookupFunc) []string {
	keys := strings.Split(getenv("GEMINI_API_KEYS"), ",")
	keys = append(keys, getenv("GEMINI_API_KEY"))
	for i := 1; ; i++ {
		k := getenv("GEMINI_API_KEY_" + strconv.Itoa(i))
		if k == "" {
			break
		}
		keys = append(keys, k)
	}
	keys = lo.Map(keys, func(k string, _ int) string { return strings.TrimSpace(k) })
	return lo.Uniq(lo.Compact(keys))
}

func envInt(getenv LookupFunc, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func envDuration(getenv LookupFunc, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
