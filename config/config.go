// Package config loads client settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/kalshi-go/kalshi"
	"github.com/kalshi-go/kalshi/auth"
	"github.com/kalshi-go/kalshi/retry"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// EnvPrefix is prepended to every environment variable, so api_key_id is
// read from KALSHI_API_KEY_ID and pk_file_path from KALSHI_PK_FILE_PATH.
const EnvPrefix = "kalshi"

type Config struct {
	// BaseURL is a URL, or one of "demo" and "production".
	BaseURL        string `mapstructure:"base_url"`
	APIKeyID       string `mapstructure:"api_key_id"`
	PrivateKeyPath string `mapstructure:"pk_file_path"`
	// PrivateKey holds PEM text and takes precedence over PrivateKeyPath.
	PrivateKey string        `mapstructure:"private_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	UserAgent  string        `mapstructure:"user_agent"`
	Logging    LoggingConfig `mapstructure:"logging"`
	Retry      RetryConfig   `mapstructure:"retry"`
}

type LoggingConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	Development      bool     `mapstructure:"development"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	MinDelay    time.Duration `mapstructure:"min_delay"`
	MaxDelay    time.Duration `mapstructure:"max_delay"`
}

// Load reads the YAML file at path, if any, and overlays the environment.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", kalshi.ProductionURL)
	v.SetDefault("api_key_id", "")
	v.SetDefault("pk_file_path", "")
	v.SetDefault("private_key", "")
	v.SetDefault("timeout", kalshi.DefaultTimeout.String())
	v.SetDefault("user_agent", kalshi.DefaultUserAgent)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.encoding", "console")
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.output_paths", []string{"stderr"})
	v.SetDefault("logging.error_output_paths", []string{"stderr"})

	v.SetDefault("retry.max_attempts", retry.DefaultMaxAttempts)
	v.SetDefault("retry.min_delay", retry.DefaultMinDelay.String())
	v.SetDefault("retry.max_delay", retry.DefaultMaxDelay.String())
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var err error

	if strings.TrimSpace(c.BaseURL) == "" {
		err = multierr.Append(err, errors.New("base_url must not be empty"))
	}
	if c.Timeout <= 0 {
		err = multierr.Append(err, errors.New("timeout must be positive"))
	}
	hasKey := c.PrivateKey != "" || c.PrivateKeyPath != ""
	if hasKey && c.APIKeyID == "" {
		err = multierr.Append(err, errors.New("api_key_id is required when a private key is configured"))
	}
	if c.APIKeyID != "" && !hasKey {
		err = multierr.Append(err, errors.New("pk_file_path or private_key is required when api_key_id is set"))
	}
	if c.Retry.MaxAttempts <= 0 {
		err = multierr.Append(err, errors.New("retry.max_attempts must be positive"))
	}
	if c.Retry.MinDelay <= 0 || c.Retry.MaxDelay <= 0 {
		err = multierr.Append(err, errors.New("retry delays must be positive"))
	}
	if c.Retry.MinDelay > c.Retry.MaxDelay {
		err = multierr.Append(err, errors.New("retry.min_delay must not exceed retry.max_delay"))
	}

	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// HasCredential reports whether authenticated routes can be used.
func (c *Config) HasCredential() bool {
	return c.APIKeyID != "" && (c.PrivateKey != "" || c.PrivateKeyPath != "")
}

// Credential loads the configured credential.
func (c *Config) Credential() (*auth.Credential, error) {
	if c.PrivateKey != "" {
		return auth.NewCredential(c.APIKeyID, []byte(c.PrivateKey))
	}
	return auth.LoadCredential(c.PrivateKeyPath, c.APIKeyID)
}

// RetryPolicy converts the retry settings.
func (c *Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: c.Retry.MaxAttempts,
		MinDelay:    c.Retry.MinDelay,
		MaxDelay:    c.Retry.MaxDelay,
	}
}

// ClientOptions converts the configuration into client options, loading
// the credential when one is configured.
func (c *Config) ClientOptions() ([]kalshi.Option, error) {
	options := []kalshi.Option{
		kalshi.WithBaseURL(c.BaseURL),
		kalshi.WithTimeout(c.Timeout),
		kalshi.WithUserAgent(c.UserAgent),
	}
	if c.HasCredential() {
		cred, err := c.Credential()
		if err != nil {
			return nil, fmt.Errorf("failed to load credential: %w", err)
		}
		options = append(options, kalshi.WithCredential(cred))
	}
	return options, nil
}
