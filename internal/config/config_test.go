package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// writeFile creates a file with the given content for testing
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Interval != DefaultInterval {
		t.Errorf("expected Interval to be %d, got %d", DefaultInterval, cfg.Interval)
	}
	if cfg.JobURL != DefaultJobURL {
		t.Errorf("expected JobURL to be %q, got %q", DefaultJobURL, cfg.JobURL)
	}
	if cfg.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("expected FetchTimeout to be %q, got %q", DefaultFetchTimeout, cfg.FetchTimeout)
	}
	if cfg.Web.Addr != DefaultWebAddr {
		t.Errorf("expected Web.Addr to be %q, got %q", DefaultWebAddr, cfg.Web.Addr)
	}
	if len(cfg.Notify.Backends) != 1 || cfg.Notify.Backends[0] != "terminal" {
		t.Errorf("expected Notify.Backends to be [terminal], got %v", cfg.Notify.Backends)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("expected LogLevel to be %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	dir := t.TempDir()

	configContent := `
interval: 5
job_url: http://ci/job/a, http://ci/job/b
fetch_timeout: 3s
notify:
  backends: [terminal, webhook]
  webhook_url: http://hooks/buildlight
web:
  addr: 127.0.0.1:9090
log_level: debug
`
	writeFile(t, filepath.Join(dir, FileName), configContent)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Interval != 5 {
		t.Errorf("expected Interval to be 5, got %d", cfg.Interval)
	}
	if cfg.JobURL != "http://ci/job/a, http://ci/job/b" {
		t.Errorf("unexpected JobURL %q", cfg.JobURL)
	}
	d, err := cfg.FetchTimeoutDuration()
	if err != nil || d != 3*time.Second {
		t.Errorf("expected FetchTimeout 3s, got %v (%v)", d, err)
	}
	if cfg.Web.Addr != "127.0.0.1:9090" {
		t.Errorf("expected Web.Addr to be '127.0.0.1:9090', got %q", cfg.Web.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel to be 'debug', got %q", cfg.LogLevel)
	}

	esc := cfg.Escalation()
	if len(esc.Backends) != 2 || esc.WebhookURL != "http://hooks/buildlight" {
		t.Errorf("unexpected escalation config %+v", esc)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()

	configContent := `
interval: 30
job_url: http://ci/job/file
log_level: info
`
	writeFile(t, filepath.Join(dir, FileName), configContent)

	t.Setenv("BUILDLIGHT_INTERVAL", "7")
	t.Setenv("BUILDLIGHT_JOB_URL", "http://ci/job/env")
	t.Setenv("BUILDLIGHT_LOG_LEVEL", "error")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Interval != 7 {
		t.Errorf("expected Interval to be 7, got %d", cfg.Interval)
	}
	if cfg.JobURL != "http://ci/job/env" {
		t.Errorf("expected JobURL to be 'http://ci/job/env', got %q", cfg.JobURL)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected LogLevel to be 'error', got %q", cfg.LogLevel)
	}
}

func TestLoadConfig_EmptyJobURLIsValid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "job_url: \"\"\n")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JobURL != "" {
		t.Errorf("expected empty JobURL, got %q", cfg.JobURL)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "interval: [not, a, number\n")

	_, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("expected parse config error, got: %v", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "interval: 0\nlog_level: loud\n")

	_, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "interval") || !strings.Contains(err.Error(), "log_level") {
		t.Errorf("expected both failures reported, got: %v", err)
	}
}

func TestLoadFile_MissingIsError(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got: %v", err)
	}
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "light.yaml")
	writeFile(t, path, "interval: 60\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interval != 60 {
		t.Errorf("expected Interval to be 60, got %d", cfg.Interval)
	}
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JobURL = "http://ci/job/a"

	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "job_url: http://ci/job/a") {
		t.Errorf("expected job_url in output, got:\n%s", data)
	}

	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Interval != cfg.Interval || back.JobURL != cfg.JobURL {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestConfig_LogsAt(t *testing.T) {
	tests := []struct {
		configured string
		level      string
		want       bool
	}{
		{"info", "debug", false},
		{"info", "info", true},
		{"info", "warn", true},
		{"debug", "debug", true},
		{"warn", "info", false},
		{"error", "warn", false},
		{"error", "error", true},
		{"", "info", true},
		{"info", "trace", false},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.LogLevel = tt.configured
		if got := cfg.LogsAt(tt.level); got != tt.want {
			t.Errorf("LogLevel %q LogsAt(%q) = %v, want %v", tt.configured, tt.level, got, tt.want)
		}
	}
}
