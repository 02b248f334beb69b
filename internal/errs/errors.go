// Package errs defines the core's error taxonomy (spec.md §7). Every
// fallible core operation returns one of these kinds via errors.As; pure
// functions never return an error — they saturate or clamp instead.
package errs

import "fmt"

// Kind is the closed set of failure categories the core surfaces. The CLI
// maps each kind to an exit code and a human message.
type Kind string

const (
	InvalidInput  Kind = "invalid_input"
	MissingState  Kind = "missing_state"
	Inconsistent  Kind = "inconsistent"
	ConfigDegraded Kind = "config_degraded"
)

// Error is a taxonomy-tagged failure. ConfigDegraded errors are warnings:
// the caller that receives one has already fallen back to bundled
// defaults and may proceed.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Invalid(format string, args ...any) *Error {
	return New(InvalidInput, fmt.Sprintf(format, args...))
}

func Missing(format string, args ...any) *Error {
	return New(MissingState, fmt.Sprintf(format, args...))
}

func Incon(format string, args ...any) *Error {
	return New(Inconsistent, fmt.Sprintf(format, args...))
}

func Degraded(format string, args ...any) *Error {
	return New(ConfigDegraded, fmt.Sprintf(format, args...))
}
