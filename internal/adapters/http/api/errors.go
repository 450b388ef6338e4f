package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
)

// wrap annotates an error with the handler operation name.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// wrapKind annotates a sentinel kind with the operation and its cause.
func wrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// newKind annotates a sentinel kind with the operation.
func newKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}
