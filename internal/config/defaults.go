package config

const (
	DefaultInterval     = 15
	DefaultJobURL       = "http://jenkins.server/job/jobname"
	DefaultFetchTimeout = "10s"
	DefaultWebAddr      = ":8080"
	DefaultLogLevel     = "info"
)

// DefaultBackends are used when the file names none
var DefaultBackends = []string{"terminal"}

// DefaultConfig returns a Config with all default values applied.
func DefaultConfig() *Config {
	return &Config{
		Interval:     DefaultInterval,
		JobURL:       DefaultJobURL,
		FetchTimeout: DefaultFetchTimeout,
		Notify: NotifyConfig{
			Backends: append([]string(nil), DefaultBackends...),
		},
		Web: WebConfig{
			Addr: DefaultWebAddr,
		},
		LogLevel: DefaultLogLevel,
	}
}
