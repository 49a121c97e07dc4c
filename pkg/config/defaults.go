package config

import (
	"os"
	"strings"
)

// Default values for configuration.
const (
	// DefaultStatistics is the statistic list computed when none is given.
	DefaultStatistics = "top10,success,unsuccess,top10unsuccess,top10ips,timestat"
	DefaultTopLimit   = 10
	DefaultOutput     = "text"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// Environment variable names.
const (
	EnvStatistics = "ACCESSSTAT_STATISTICS"
	EnvLogLevel   = "ACCESSSTAT_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Statistics:       SplitList(DefaultStatistics),
		StripQueryString: true,
		TopLimit:         DefaultTopLimit,
		Output:           DefaultOutput,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ApplyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvironmentOverrides() {
	if stats := os.Getenv(EnvStatistics); stats != "" {
		c.Statistics = SplitList(stats)
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
}
