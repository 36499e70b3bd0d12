package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RevCBH/buildlight/internal/escalate"
)

// FileName is the config file looked up in the working directory
const FileName = ".buildlight.yaml"

// Config holds all configuration for the build light.
// It is immutable after creation via LoadConfig() or LoadFile().
type Config struct {
	// Interval is the poll interval in seconds
	Interval int `yaml:"interval"`

	// JobURL is a comma-separated list of Jenkins job base URLs
	JobURL string `yaml:"job_url"`

	// FetchTimeout bounds each status request, as a Go duration string
	FetchTimeout string `yaml:"fetch_timeout"`

	// Notify configures where "unable to contact Jenkins" notices go
	Notify NotifyConfig `yaml:"notify"`

	// Web contains dashboard settings
	Web WebConfig `yaml:"web"`

	// LogLevel controls log verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// NotifyConfig selects notification backends.
type NotifyConfig struct {
	// Backends lists enabled backends: terminal, slack, webhook
	Backends []string `yaml:"backends"`

	// SlackWebhook is the incoming webhook URL for the slack backend
	SlackWebhook string `yaml:"slack_webhook,omitempty"`

	// WebhookURL receives JSON payloads for the webhook backend
	WebhookURL string `yaml:"webhook_url,omitempty"`
}

// WebConfig controls the dashboard server.
type WebConfig struct {
	// Addr is the listen address used when the dashboard is enabled
	Addr string `yaml:"addr"`
}

// logLevels orders the accepted log levels from most to least verbose
var logLevels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// LogsAt reports whether messages at level pass the configured log_level.
// An unknown configured level behaves like the default.
func (c *Config) LogsAt(level string) bool {
	want, ok := logLevels[level]
	if !ok {
		return false
	}
	min, ok := logLevels[c.LogLevel]
	if !ok {
		min = logLevels[DefaultLogLevel]
	}
	return want >= min
}

// FetchTimeoutDuration parses the fetch timeout as a Duration.
func (c *Config) FetchTimeoutDuration() (time.Duration, error) {
	return time.ParseDuration(c.FetchTimeout)
}

// Escalation converts notify settings into escalator configuration.
func (c *Config) Escalation() escalate.Config {
	return escalate.Config{
		Backends:     append([]string(nil), c.Notify.Backends...),
		SlackWebhook: c.Notify.SlackWebhook,
		WebhookURL:   c.Notify.WebhookURL,
	}
}

// YAML renders the config as it would appear in a config file.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// LoadConfig loads configuration from dir/.buildlight.yaml.
// It applies defaults, then file values, then environment overrides,
// then validates. A missing file is not an error.
func LoadConfig(dir string) (*Config, error) {
	return load(filepath.Join(dir, FileName), false)
}

// LoadFile loads configuration from an explicit path, which must exist.
func LoadFile(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, required bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
		// Defaults only
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
