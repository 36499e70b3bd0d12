package config

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// validateConfig checks all config values for validity.
// Returns nil if valid, or joined errors for all validation failures.
// An empty job_url is valid; the monitor polls nothing and warns.
func validateConfig(cfg *Config) error {
	var errs []error

	// Interval must be >= 1 second
	if cfg.Interval < 1 {
		errs = append(errs, &ValidationError{
			Field:   "interval",
			Value:   cfg.Interval,
			Message: "must be at least 1",
		})
	}

	// FetchTimeout must be a positive Go duration
	if d, err := time.ParseDuration(cfg.FetchTimeout); err != nil {
		errs = append(errs, &ValidationError{
			Field:   "fetch_timeout",
			Value:   cfg.FetchTimeout,
			Message: fmt.Sprintf("invalid duration: %v", err),
		})
	} else if d <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "fetch_timeout",
			Value:   cfg.FetchTimeout,
			Message: "must be positive",
		})
	}

	for i, backend := range cfg.Notify.Backends {
		switch backend {
		case "terminal":
		case "slack":
			if cfg.Notify.SlackWebhook == "" {
				errs = append(errs, &ValidationError{
					Field:   "notify.slack_webhook",
					Value:   cfg.Notify.SlackWebhook,
					Message: "required by the slack backend",
				})
			}
		case "webhook":
			if cfg.Notify.WebhookURL == "" {
				errs = append(errs, &ValidationError{
					Field:   "notify.webhook_url",
					Value:   cfg.Notify.WebhookURL,
					Message: "required by the webhook backend",
				})
			}
		default:
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("notify.backends[%d]", i),
				Value:   backend,
				Message: "must be one of: terminal, slack, webhook",
			})
		}
	}

	if cfg.Web.Addr == "" {
		errs = append(errs, &ValidationError{
			Field:   "web.addr",
			Value:   cfg.Web.Addr,
			Message: "must not be empty",
		})
	}

	// LogLevel must be one of: debug, info, warn, error (case-sensitive)
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		errs = append(errs, &ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: "must be one of: debug, info, warn, error",
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
