package webjump

import (
	"errors"
	"fmt"
)

// ErrMissingArgument is wrapped by every MissingArgumentError.
var ErrMissingArgument = errors.New("webjump requires an argument")

// MissingArgumentError is returned when a webjump whose argument policy is
// ArgumentRequired is invoked without an argument.
type MissingArgumentError struct {
	Key string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("webjump %s requires an argument", e.Key)
}

func (e *MissingArgumentError) Unwrap() error {
	return ErrMissingArgument
}
