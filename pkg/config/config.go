package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Load reads and validates a configuration file.
// Values missing from the file keep their defaults.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.New(strings.Join(msgs, ", "))
}

// formatFieldError renders "Config.Log.Level" style namespaces as "log.level".
func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	if parts := strings.Split(fe.StructNamespace(), "."); len(parts) >= 2 {
		field = fieldPath(parts[1:])
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", field)
	case "min":
		return fmt.Sprintf("%s: must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: invalid value %q (must be one of %s)", field, fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s", field, fe.Tag())
	}
}

var yamlNames = map[string]string{
	"Statistics":       "statistics",
	"StripQueryString": "strip_query_string",
	"TopLimit":         "top_limit",
	"Output":           "output",
	"MetricsTextfile":  "metrics_textfile",
	"Log":              "log",
	"Level":            "level",
	"Format":           "format",
}

func fieldPath(parts []string) string {
	out := make([]string, len(parts))
	for i, p := range parts {
		name, index, _ := strings.Cut(p, "[")
		if yamlName, ok := yamlNames[name]; ok {
			name = yamlName
		}
		if index != "" {
			name += "[" + index
		}
		out[i] = name
	}
	return strings.Join(out, ".")
}
