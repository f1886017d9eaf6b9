package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLanguage is returned when the caller supplies a language
	// code outside the supported set. Surfaced as a 400.
	ErrInvalidLanguage = errors.New("invalid language")
)

// SourceError reports that the primary source could not answer: transport
// failure, timeout, non-2xx status, or a provider-reported error code.
// The orchestrator recovers from it by falling back; it never crosses the
// service boundary.
type SourceError struct {
	Source string // adapter name, e.g. "qweather"
	Msg    string
	Err    error // underlying transport error, if any
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source %s unavailable: %s: %v", e.Source, e.Msg, e.Err)
	}
	return fmt.Sprintf("source %s unavailable: %s", e.Source, e.Msg)
}

func (e *SourceError) Unwrap() error { return e.Err }

// SchemaError reports a provider response missing a required block or
// carrying a required field that cannot be coerced to its type. Recovered
// the same way as SourceError.
type SchemaError struct {
	Field string
	Msg   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error at %s: %s", e.Field, e.Msg)
}

// FatalError means the synthetic adapter itself failed. There is no further
// fallback, so this is the only failure that reaches the caller as a 500.
type FatalError struct {
	Msg string
	Err error
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("weather service failure: %s: %v", e.Msg, e.Err)
	}
	return "weather service failure: " + e.Msg
}

func (e *FatalError) Unwrap() error { return e.Err }
