package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	appName = "onboard"

	// APIURLEnvVar overrides api_base_url
	APIURLEnvVar = "ONBOARD_API_URL"
	// LogLevelEnvVar overrides log_level
	LogLevelEnvVar = "ONBOARD_LOG_LEVEL"

	DefaultAPIBaseURL       = "http://192.168.1.44:8080/api/v1"
	DefaultRequestTimeout   = 10 * time.Second
	DefaultDebounce         = 300 * time.Millisecond
	DefaultMinSearchChars   = 2
	DefaultCacheTTL         = 90 * time.Second
	DefaultDiscoveryService = "_ledmatrix._tcp"
	DefaultDiscoveryDomain  = "local."
	DefaultDiscoveryTimeout = 3 * time.Second
)

// Config holds the application configuration
type Config struct {
	APIBaseURL     string        `yaml:"api_base_url" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	Debounce       time.Duration `yaml:"debounce" validate:"gte=0"`
	MinSearchChars int           `yaml:"min_search_chars" validate:"gte=1"`
	CacheTTL       time.Duration `yaml:"cache_ttl" validate:"gte=0"`
	LogLevel       string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFile        string        `yaml:"log_file"`
	Discovery      Discovery     `yaml:"discovery"`
}

// Discovery configures mDNS lookup of display controllers
type Discovery struct {
	Service string        `yaml:"service" validate:"required"`
	Domain  string        `yaml:"domain" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		APIBaseURL:     DefaultAPIBaseURL,
		RequestTimeout: DefaultRequestTimeout,
		Debounce:       DefaultDebounce,
		MinSearchChars: DefaultMinSearchChars,
		CacheTTL:       DefaultCacheTTL,
		Discovery: Discovery{
			Service: DefaultDiscoveryService,
			Domain:  DefaultDiscoveryDomain,
			Timeout: DefaultDiscoveryTimeout,
		},
	}
}

// Dir returns the directory holding the config file
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("cannot determine config directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName), nil
}

// Path returns the default config file location
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the default config file, falling back to defaults when it does
// not exist
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file is not an error.
// Environment overrides are applied before validation.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(APIURLEnvVar)); v != "" {
		c.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(LogLevelEnvVar)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

// fillDefaults restores defaults for keys present in the file but left empty
func (c *Config) fillDefaults() {
	d := Default()
	if c.APIBaseURL == "" {
		c.APIBaseURL = d.APIBaseURL
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.MinSearchChars == 0 {
		c.MinSearchChars = d.MinSearchChars
	}
	if c.Discovery.Service == "" {
		c.Discovery.Service = d.Discovery.Service
	}
	if c.Discovery.Domain == "" {
		c.Discovery.Domain = d.Discovery.Domain
	}
	if c.Discovery.Timeout == 0 {
		c.Discovery.Timeout = d.Discovery.Timeout
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
}

var validate = validator.New()

// Validate checks the configuration and reports the first offending field
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Namespace(), Tag: fe.Tag(), Value: fmt.Sprint(fe.Value())}
	}
	return fmt.Errorf("invalid config: %w", err)
}

// ValidationError reports a config value that failed validation
type ValidationError struct {
	Field string
	Tag   string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s=%q fails %q", e.Field, e.Value, e.Tag)
}
