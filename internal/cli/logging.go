package cli

import (
	"bytes"
	"io"
	"log"

	"github.com/RevCBH/buildlight/internal/config"
)

// levelWriter drops log lines below the configured log_level. A line's level
// comes from its "WARN:" style prefix; unprefixed lines are info.
type levelWriter struct {
	w   io.Writer
	cfg *config.Config
}

// Write implements io.Writer. log.Logger writes one message per call.
func (l *levelWriter) Write(p []byte) (int, error) {
	if !l.cfg.LogsAt(lineLevel(p)) {
		return len(p), nil
	}
	return l.w.Write(p)
}

var levelPrefixes = []struct {
	prefix []byte
	level  string
}{
	{[]byte("ERROR: "), "error"},
	{[]byte("WARN: "), "warn"},
	{[]byte("DEBUG: "), "debug"},
}

func lineLevel(p []byte) string {
	for _, lp := range levelPrefixes {
		if bytes.Contains(p, lp.prefix) {
			return lp.level
		}
	}
	return "info"
}

// filterLog routes the standard logger through cfg's log_level and returns
// a func restoring the previous output.
func filterLog(cfg *config.Config) func() {
	prev := log.Writer()
	log.SetOutput(&levelWriter{w: prev, cfg: cfg})
	return func() { log.SetOutput(prev) }
}
