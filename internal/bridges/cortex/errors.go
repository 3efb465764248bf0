package cortex

import (
	"errors"
	"fmt"
)

// Domain errors for the cortex package.
var (
	// ErrTransport is returned when a request to the controller fails
	// before a usable reply is received.
	ErrTransport = errors.New("cortex: transport failure")

	// ErrUnexpectedStatus is returned when the controller answers with a
	// non-2xx status. It wraps ErrTransport.
	ErrUnexpectedStatus = fmt.Errorf("%w: unexpected status", ErrTransport)

	// ErrParse is returned when a controller reply does not have the
	// expected shape.
	ErrParse = errors.New("cortex: unparseable reply")

	// ErrUnknownObjectType is returned when an object's ControlObjectType
	// is not one the bridge can translate.
	ErrUnknownObjectType = errors.New("cortex: unknown object type")
)

// ParseError describes a controller reply that could not be decoded.
type ParseError struct {
	// Shape names the expected reply, e.g. "PortEvent".
	Shape string

	// Err is the underlying decode failure.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cortex: parsing %s reply: %v", e.Shape, e.Err)
}

// Unwrap returns ErrParse and the underlying error, so both match errors.Is.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

func parseErr(shape string, err error) error {
	return &ParseError{Shape: shape, Err: err}
}
