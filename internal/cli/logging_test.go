package cli

import (
	"bytes"
	"log"
	"testing"

	"github.com/RevCBH/buildlight/internal/config"
)

func TestLevelWriter_DropsBelowLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "DEBUG: d\ninfo\nWARN: w\nERROR: e\n"},
		{"info", "info\nWARN: w\nERROR: e\n"},
		{"warn", "WARN: w\nERROR: e\n"},
		{"error", "ERROR: e\n"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.LogLevel = tt.level

			buf := new(bytes.Buffer)
			logger := log.New(&levelWriter{w: buf, cfg: cfg}, "", 0)
			logger.Print("DEBUG: d")
			logger.Print("info")
			logger.Print("WARN: w")
			logger.Print("ERROR: e")

			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestFilterLog_Restores(t *testing.T) {
	buf := new(bytes.Buffer)
	prev := log.Writer()
	log.SetOutput(buf)
	defer log.SetOutput(prev)

	cfg := config.DefaultConfig()
	cfg.LogLevel = "error"
	restore := filterLog(cfg)
	log.Printf("WARN: hidden")
	restore()
	log.Printf("WARN: shown")

	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Errorf("warn line leaked past error level: %q", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Errorf("expected output restored, got %q", buf.String())
	}
}
