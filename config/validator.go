package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "host.container")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(c.Fragment.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "fragment.name",
			Value:   c.Fragment.Name,
			Message: "must not be empty",
		})
	}
	if strings.TrimSpace(c.Fragment.Entry) == "" {
		errs = append(errs, ValidationError{
			Field:   "fragment.entry",
			Value:   c.Fragment.Entry,
			Message: "must not be empty",
		})
	}

	if _, err := cascadia.Parse(c.Host.Container); err != nil {
		errs = append(errs, ValidationError{
			Field:   "host.container",
			Value:   c.Host.Container,
			Message: "must be a valid CSS selector",
		})
	}

	if !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errs
}
