package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/bithumb/logging"
)

// DefaultBaseURL is the production REST endpoint.
const DefaultBaseURL = "https://api.bithumb.com"

// Config represents the complete client configuration
type Config struct {
	API         APIConfig         `json:"api" yaml:"api"`
	Credentials CredentialsConfig `json:"credentials" yaml:"credentials"`
	Market      MarketConfig      `json:"market" yaml:"market"`
	Journal     JournalConfig     `json:"journal" yaml:"journal"`
	Log         LogConfig         `json:"log" yaml:"log"`
}

// APIConfig contains transport parameters
type APIConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	Timeout string `json:"timeout" yaml:"timeout"` // e.g. "10s"
}

// CredentialsConfig holds the key pair used to sign private requests.
// Both may be left empty when only public endpoints are used.
type CredentialsConfig struct {
	ConnectKey string `json:"connect_key,omitempty" yaml:"connect_key,omitempty"`
	SecretKey  string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`
}

// MarketConfig contains market defaults
type MarketConfig struct {
	PaymentCurrency string `json:"payment_currency" yaml:"payment_currency"`
}

// JournalConfig contains order journaling parameters
type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// HasCredentials reports whether both keys are set.
func (c CredentialsConfig) HasCredentials() bool {
	return c.ConnectKey != "" && c.SecretKey != ""
}

// TimeoutDuration converts the timeout string to time.Duration
func (a APIConfig) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(a.Timeout)
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// May hold a secret key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.API.BaseURL == "" {
		result = multierror.Append(result, errors.New("api.base_url is required"))
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL))
	}
	if d, err := c.API.TimeoutDuration(); err != nil {
		result = multierror.Append(result, fmt.Errorf("api.timeout: %w", err))
	} else if d < 0 {
		result = multierror.Append(result, errors.New("api.timeout must not be negative"))
	}
	if (c.Credentials.ConnectKey == "") != (c.Credentials.SecretKey == "") {
		result = multierror.Append(result, errors.New("credentials.connect_key and credentials.secret_key must be set together"))
	}
	pc := c.Market.PaymentCurrency
	if pc == "" {
		result = multierror.Append(result, errors.New("market.payment_currency is required"))
	} else if pc != strings.ToUpper(pc) {
		result = multierror.Append(result, fmt.Errorf("market.payment_currency %q must be uppercase", pc))
	}
	if c.Journal.Enabled && c.Journal.DBPath == "" {
		result = multierror.Append(result, errors.New("journal.db_path required when journal is enabled"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("log.level: %w", err))
	}

	return result.ErrorOrNil()
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: "10s",
		},
		Market: MarketConfig{
			PaymentCurrency: "KRW",
		},
		Journal: JournalConfig{
			Enabled: false,
			DBPath:  "./bithumb.sqlite",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
