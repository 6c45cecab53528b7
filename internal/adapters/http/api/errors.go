package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
	ErrUnavailable  = errors.New("unavailable")
	ErrTimeout      = errors.New("timeout")
)

// kindError tags an error with the operation that produced it and a
// sentinel kind callers can match with errors.Is.
type kindError struct {
	op   string
	kind error
	err  error
}

func (e *kindError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %v", e.op, e.kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.op, e.kind, e.err)
}

func (e *kindError) Unwrap() []error {
	if e.err == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.err}
}

// WrapKind wraps err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &kindError{op: op, kind: kind, err: err}
}

// NewKind returns an error of the given kind for op.
func NewKind(op string, kind error) error {
	return &kindError{op: op, kind: kind}
}
