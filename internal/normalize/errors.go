package normalize

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by the strict parse functions. Callers classify with
// errors.Is; the safe wrappers collapse all of them to an absent value.
var (
	// ErrUnparsable means no leading numeric token was found at all.
	ErrUnparsable = errors.New("unparsable format")

	// ErrUnrecognizedUnit means a unit-like token was present but matched
	// no table entry. Never silently treated as a missing unit.
	ErrUnrecognizedUnit = errors.New("unrecognized unit")

	// ErrAmbiguous means no unit token was present and the value falls
	// outside every heuristic band.
	ErrAmbiguous = errors.New("ambiguous unitless value")

	// ErrOutOfRange means the converted value failed the plausibility
	// validator, or a composite remainder violated its structural bound.
	ErrOutOfRange = errors.New("out of range")
)

// ParseError carries the failure kind plus the offending input.
type ParseError struct {
	Input  string
	Kind   error
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s (input %q)", e.Kind, e.Detail, e.Input)
	}
	return fmt.Sprintf("%v (input %q)", e.Kind, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Kind }

func parseErr(kind error, input, format string, args ...any) error {
	return &ParseError{
		Input:  input,
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}
