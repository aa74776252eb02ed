package pricing

import (
	"errors"
	"math"
)

// MessageTooLarge is shown when inputs are finite but a computed value overflows.
const MessageTooLarge = "Inputs are too large to calculate."

// ValidationError is returned when an input cannot be quoted. Message is written to
// the output panel as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// overflowed reports whether any computed value is NaN or infinite.
func overflowed(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// AsValidation unwraps a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
