package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Interval:     15,
		JobURL:       "http://ci/job/a",
		FetchTimeout: "10s",
		Notify:       NotifyConfig{Backends: []string{"terminal"}},
		Web:          WebConfig{Addr: ":8080"},
		LogLevel:     "info",
	}
}

func TestValidation_Valid(t *testing.T) {
	if err := validateConfig(validConfig()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidation_Interval(t *testing.T) {
	for _, n := range []int{0, -1} {
		cfg := validConfig()
		cfg.Interval = n

		err := validateConfig(cfg)
		if err == nil {
			t.Fatalf("expected error for interval %d", n)
		}
		if !strings.Contains(err.Error(), "interval") {
			t.Errorf("error should contain 'interval', got: %v", err)
		}
	}
}

func TestValidation_FetchTimeout(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"soon", "invalid duration"},
		{"0s", "must be positive"},
		{"-1s", "must be positive"},
	}

	for _, tt := range tests {
		cfg := validConfig()
		cfg.FetchTimeout = tt.value

		err := validateConfig(cfg)
		if err == nil {
			t.Fatalf("expected error for fetch_timeout %q", tt.value)
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("fetch_timeout %q: expected %q, got: %v", tt.value, tt.want, err)
		}
	}
}

func TestValidation_Backends(t *testing.T) {
	tests := []struct {
		name     string
		backends []string
		want     string
	}{
		{"unknown", []string{"pager"}, "notify.backends[0]"},
		{"slack without webhook", []string{"slack"}, "notify.slack_webhook"},
		{"webhook without url", []string{"terminal", "webhook"}, "notify.webhook_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Notify.Backends = tt.backends

			err := validateConfig(cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got: %v", tt.want, err)
			}
		})
	}
}

func TestValidation_EmptyBackendsAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Notify.Backends = nil
	if err := validateConfig(cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidation_LogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "INFO"

	err := validateConfig(cfg)
	if err == nil {
		t.Fatal("expected error for uppercase log level")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should contain 'log_level', got: %v", err)
	}
}

func TestValidation_WebAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Web.Addr = ""

	err := validateConfig(cfg)
	if err == nil || !strings.Contains(err.Error(), "web.addr") {
		t.Errorf("expected web.addr error, got: %v", err)
	}
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Field: "interval", Value: 0, Message: "must be at least 1"}
	want := "config.interval: must be at least 1 (got: 0)"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
