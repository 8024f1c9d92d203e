package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/shinji-kodama/cratemover/internal/model"
)

// minPitch is the narrowest column that can hold a "[X]" crate.
const minPitch = 3

// ValidationError represents a specific validation failure in the settings.
type ValidationError struct {
	// Field is the setting that failed validation (e.g., "placeholder").
	Field string

	// Message describes what's wrong with the value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// Validate checks the settings and returns every problem found (empty list
// = valid configuration).
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if utf8.RuneCountInString(cfg.Placeholder) != 1 {
		errs = append(errs, ValidationError{
			Field:   KeyPlaceholder,
			Message: fmt.Sprintf("must be exactly one character, got %q", cfg.Placeholder),
		})
	}

	if cfg.Pitch != 0 && cfg.Pitch < minPitch {
		errs = append(errs, ValidationError{
			Field:   KeyPitch,
			Message: fmt.Sprintf("must be 0 (derive from footer) or at least %d, got %d", minPitch, cfg.Pitch),
		})
	}

	if _, err := model.ParseOutputFormat(cfg.Output); err != nil {
		errs = append(errs, ValidationError{
			Field:   KeyOutput,
			Message: err.Error(),
		})
	}

	return errs
}
