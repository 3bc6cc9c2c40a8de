package fetch

import (
	"errors"
	"fmt"
)

// ErrTransport is matched by every *Error with errors.Is.
var ErrTransport = errors.New("transport failure")

// Error describes a request that produced no usable response:
// DNS failure, refused connection, timeout, cancelled context, or a body
// that could not be read.
type Error struct {
	// Op is the HTTP method of the failed request.
	Op string

	// URL is the requested URL.
	URL string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport.
func (e *Error) Is(target error) bool {
	return target == ErrTransport
}
