package churn

import (
	"errors"
	"fmt"
)

// InputError reports a raw field value outside its control's range or choice set.
type InputError struct {
	Field  string
	Reason string
	// Err is the decoding or read error behind Reason, if any.
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("churn: invalid %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return e.Err }

func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}
