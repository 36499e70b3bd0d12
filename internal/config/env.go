package config

import (
	"log"
	"os"
	"strconv"
)

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string)
}{
	{
		envVar: "BUILDLIGHT_INTERVAL",
		apply: func(c *Config, v string) {
			n, err := strconv.Atoi(v)
			if err != nil {
				log.Printf("WARN: ignoring BUILDLIGHT_INTERVAL=%q: %v", v, err)
				return
			}
			c.Interval = n
		},
	},
	{
		envVar: "BUILDLIGHT_JOB_URL",
		apply: func(c *Config, v string) {
			c.JobURL = v
		},
	},
	{
		envVar: "BUILDLIGHT_FETCH_TIMEOUT",
		apply: func(c *Config, v string) {
			c.FetchTimeout = v
		},
	},
	{
		envVar: "BUILDLIGHT_SLACK_WEBHOOK",
		apply: func(c *Config, v string) {
			c.Notify.SlackWebhook = v
		},
	},
	{
		envVar: "BUILDLIGHT_WEBHOOK_URL",
		apply: func(c *Config, v string) {
			c.Notify.WebhookURL = v
		},
	},
	{
		envVar: "BUILDLIGHT_LOG_LEVEL",
		apply: func(c *Config, v string) {
			c.LogLevel = v
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			override.apply(cfg, val)
		}
	}
}
