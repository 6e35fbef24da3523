package errs

import (
	"errors"
	"sort"
	"strings"
)

// Error taxonomy shared by usecases and handlers. Lower layers Mark their
// errors with one of these; the HTTP layer maps them to status codes.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrNotPaid       = errors.New("payment not completed")
	ErrProcessor     = errors.New("payment processor error")
	ErrEmailDispatch = errors.New("email dispatch error")
	ErrStorage       = errors.New("storage error")
	ErrConfiguration = errors.New("configuration error")
)

// ConfigError lists every configuration problem found at startup.
type ConfigError struct {
	Missing []string
	Invalid map[string]string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if len(e.Missing) > 0 {
		b.WriteString(": missing ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		keys := make([]string, 0, len(e.Invalid))
		for k := range e.Invalid {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("; invalid ")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k + " (" + e.Invalid[k] + ")")
		}
	}
	return b.String()
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigError) Empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}

func (e *ConfigError) AddMissing(name string) {
	e.Missing = append(e.Missing, name)
}

func (e *ConfigError) AddInvalid(name, reason string) {
	if e.Invalid == nil {
		e.Invalid = make(map[string]string)
	}
	e.Invalid[name] = reason
}

// FieldErrors carries per-field validation messages; it matches ErrValidation.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

func (e FieldErrors) Is(target error) bool {
	return target == ErrValidation
}
