// Package config loads the relay settings from the Lambda environment.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

const (
	keyEndpointURL          = "endpoint_url"
	keyEndpointURLParameter = "endpoint_url_parameter"
	keyEndpointTimeout      = "endpoint_timeout"
)

// ParameterResolver looks up a named parameter, e.g. in SSM.
type ParameterResolver interface {
	GetParameter(name string) (string, error)
}

// Config holds the relay configuration.
type Config struct {
	// EndpointURL receives every forwarded event.
	EndpointURL string `mapstructure:"endpoint_url"`
	// EndpointURLParameter names an SSM parameter holding the URL. Only
	// consulted when EndpointURL is empty.
	EndpointURLParameter string `mapstructure:"endpoint_url_parameter"`
	// Timeout bounds the HTTP round trip. Zero leaves it to the invocation deadline.
	Timeout time.Duration `mapstructure:"endpoint_timeout"`
}

// Load reads the configuration from the environment, resolving the endpoint
// through params when only a parameter name is given, and validates it.
func Load(params ParameterResolver) (*Config, error) {
	v := viper.New()
	v.SetDefault(keyEndpointTimeout, "0s")

	for key, env := range map[string]string{
		keyEndpointURL:          "ENDPOINT_URL",
		keyEndpointURLParameter: "ENDPOINT_URL_PARAMETER",
		keyEndpointTimeout:      "ENDPOINT_TIMEOUT",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.EndpointURL == "" && cfg.EndpointURLParameter != "" {
		if params == nil {
			return nil, fmt.Errorf("no parameter store to resolve %s", cfg.EndpointURLParameter)
		}
		value, err := params.GetParameter(cfg.EndpointURLParameter)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve endpoint url from %s: %w", cfg.EndpointURLParameter, err)
		}
		cfg.EndpointURL = value
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the endpoint URL and timeout.
func (c *Config) Validate() error {
	if c.EndpointURL == "" {
		return fmt.Errorf("ENDPOINT_URL is required")
	}

	u, err := url.Parse(c.EndpointURL)
	if err != nil {
		return fmt.Errorf("invalid endpoint url %q: %w", c.EndpointURL, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("endpoint url %q must use http or https", c.EndpointURL)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint url %q has no host", c.EndpointURL)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("endpoint timeout must not be negative, got %s", c.Timeout)
	}

	return nil
}
