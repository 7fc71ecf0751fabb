package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is the kind of a ConfigError for a required field left unset
	ErrMissingField = errors.New("missing field")

	// ErrInvalidValue is the kind of a ConfigError for a field set to an unusable value
	ErrInvalidValue = errors.New("invalid value")

	// ErrWorkerFailed wraps any failure inside a render worker, returned error or panic
	ErrWorkerFailed = errors.New("render worker failed")
)

// ConfigError reports a camera configuration problem found before rendering.
// Kind is ErrMissingField or ErrInvalidValue, so errors.Is works on either.
type ConfigError struct {
	Field  string
	Kind   error
	Detail string
}

func (e *ConfigError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("camera: %s: %v", e.Field, e.Kind)
	}
	return fmt.Sprintf("camera: %s: %v: %s", e.Field, e.Kind, e.Detail)
}

func (e *ConfigError) Unwrap() error { return e.Kind }

func missingField(field string) *ConfigError {
	return &ConfigError{Field: field, Kind: ErrMissingField}
}

func invalidValue(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Kind: ErrInvalidValue, Detail: fmt.Sprintf(format, args...)}
}
