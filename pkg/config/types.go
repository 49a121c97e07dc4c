// Package config provides configuration loading and validation for accessstat.
package config

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Statistics lists the statistics to compute.
	Statistics []string `yaml:"statistics" validate:"required,min=1,dive,oneof=top10 success unsuccess top10unsuccess top10ips timestat"`

	// StripQueryString removes the query string from request paths.
	StripQueryString bool `yaml:"strip_query_string"`

	// TopLimit is the number of entries reported by the top-N statistics.
	TopLimit int `yaml:"top_limit" validate:"min=1"`

	// Output is the report format (text or json).
	Output string `yaml:"output" validate:"oneof=text json"`

	// MetricsTextfile is an optional path for a Prometheus textfile with run metrics.
	MetricsTextfile string `yaml:"metrics_textfile,omitempty"`

	Log LogConfig `yaml:"log"`
}

// LogConfig controls diagnostics logging.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `yaml:"format" validate:"oneof=console json"`
}
