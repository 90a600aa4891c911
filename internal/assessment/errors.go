package assessment

import (
	"errors"
	"strings"
)

var (
	// ErrNetwork marks a submission that could not be completed: transport
	// failure, timeout or a non-2xx answer.
	ErrNetwork = errors.New("assessment: network failure")
	// ErrDecode marks a response that arrived but did not have the expected shape.
	ErrDecode = errors.New("assessment: decode failure")
	// ErrInFlight is returned when a submission is already outstanding.
	ErrInFlight = errors.New("assessment: submission already in flight")
	// ErrNotFinalStep is returned when submit is attempted before the last step.
	ErrNotFinalStep = errors.New("assessment: submit is only allowed on the final step")
	// ErrUnknownField is returned by UpdateField for names outside the record.
	ErrUnknownField = errors.New("assessment: unknown field")
)

// ValidationError carries every failed rule of one validation pass.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "assessment: invalid input: " + strings.Join(e.Messages, "; ")
}
