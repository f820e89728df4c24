package fieldtrack

import "fmt"

// ErrorCode mirrors the ErrorCode enum of the original C sampler this
// package reimplements. REPEAT and DELETE are reserved for the advection
// layer that consumes this package; no function here ever produces them,
// and CodeOf reports any error not produced by this package as
// ErrorUnknown.
type ErrorCode int32

const (
	// Success indicates a query completed and wrote a value.
	Success ErrorCode = iota
	// Repeat is reserved for the advection layer. Never produced here.
	Repeat
	// Delete is reserved for the advection layer. Never produced here.
	Delete
	// ErrorUnknown indicates a programmer error such as an unknown grid
	// or interpolation code.
	ErrorUnknown
	// OutOfBounds indicates the query point lies outside the domain, or
	// a bounded search failed to converge.
	OutOfBounds
	// TimeExtrapolation indicates a non-periodic field with time
	// extrapolation disabled was queried outside its time axis.
	TimeExtrapolation
)

func (c ErrorCode) String() string {
	switch c {
	case Success:
		return "success"
	case Repeat:
		return "repeat"
	case Delete:
		return "delete"
	case ErrorUnknown:
		return "error"
	case OutOfBounds:
		return "out of bounds"
	case TimeExtrapolation:
		return "time extrapolation"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int32(c))
	}
}

// locateError is the concrete error type returned by every locator and
// kernel in this package. Code carries the taxonomy from the original C
// sampler so that callers needing the numeric contract can recover it
// with CodeOf.
type locateError struct {
	Code ErrorCode
	msg  string
}

func (e *locateError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return e.Code.String()
}

func newError(code ErrorCode, format string, args ...interface{}) error {
	return &locateError{Code: code, msg: fmt.Sprintf(format, args...)}
}

// CodeOf returns the ErrorCode carried by err, or Success if err is nil.
// An error not produced by this package reports ErrorUnknown.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	if le, ok := err.(*locateError); ok {
		return le.Code
	}
	return ErrorUnknown
}

// ErrOutOfBounds reports whether err is an out-of-domain or
// non-convergent search failure.
func ErrOutOfBounds(err error) bool {
	return CodeOf(err) == OutOfBounds
}

// ErrTimeExtrapolation reports whether err is a disallowed
// out-of-time-range query.
func ErrTimeExtrapolation(err error) bool {
	return CodeOf(err) == TimeExtrapolation
}
