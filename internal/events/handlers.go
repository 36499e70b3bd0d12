package events

import (
	"fmt"
	"io"
	"os"
	"time"
)

// LogConfig configures LogHandler
type LogConfig struct {
	Writer         io.Writer // default: os.Stderr
	IncludePayload bool
	TimeFormat     string // default: time.RFC3339
}

// LogHandler returns a handler printing one line per event:
//
//	<time> [type] <job> cycle=#N error="..."
func LogHandler(cfg LogConfig) Handler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}

	return func(e Event) {
		line := e.Time.Format(cfg.TimeFormat) + " " + e.String()
		if cfg.IncludePayload && e.Payload != nil {
			line += fmt.Sprintf(" payload=%v", e.Payload)
		}
		fmt.Fprintln(cfg.Writer, line)
	}
}

// FilterHandler forwards only events whose type is in types
func FilterHandler(next Handler, types ...EventType) Handler {
	allowed := make(map[EventType]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	return func(e Event) {
		if _, ok := allowed[e.Type]; ok {
			next(e)
		}
	}
}
