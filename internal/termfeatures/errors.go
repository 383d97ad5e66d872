package termfeatures

import "errors"

var (
	ErrDumbTerminal = errors.New("terminal does not understand escape sequences")
	// ErrNotATerminal is returned for output redirected to a file or pipe.
	ErrNotATerminal = errors.New("output is not a terminal")
)
