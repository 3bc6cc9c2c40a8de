package crawler

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSelector is returned by NewParser when a selector does not compile.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrMissingNode is matched by every *MissingNodeError.
	ErrMissingNode = errors.New("required element missing")

	// ErrPageStatus is matched by every *StatusError.
	ErrPageStatus = errors.New("unexpected page status")
)

// MissingNodeError reports the listing fields whose element was not found.
type MissingNodeError struct {
	// Fields lists the missing fields in extraction order.
	Fields []string
}

// Error implements the error interface.
func (e *MissingNodeError) Error() string {
	return "listing is missing " + strings.Join(e.Fields, ", ")
}

// Is reports whether target is ErrMissingNode.
func (e *MissingNodeError) Is(target error) bool {
	return target == ErrMissingNode
}

// StatusError reports a page that answered with a non-2xx status.
// Such a page is treated like an unreachable one.
type StatusError struct {
	URL        string
	StatusCode int
	StatusText string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, e.StatusText)
}

// Is reports whether target is ErrPageStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrPageStatus
}
