package fft

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the transform facade. Specific argument
// failures wrap ErrInvalidArgument so callers can match either the exact
// condition or the taxonomy kind.
var (
	// ErrInvalidArgument is the base kind for every rejected argument.
	ErrInvalidArgument = errors.New("fft: invalid argument")

	// ErrUnsupportedDatatype is returned when an element type has no
	// instantiation (e.g. extended precision).
	ErrUnsupportedDatatype = errors.New("fft: unsupported data type")

	// ErrOverflow is returned when a requested size would overflow the
	// internal size arithmetic.
	ErrOverflow = errors.New("fft: size overflow")

	// ErrInternal signals a violated invariant in the planner or pass
	// tree; it indicates a bug, not a caller error.
	ErrInternal = errors.New("fft: internal invariant violated")
)

var (
	errNilArray    = fmt.Errorf("%w: nil array data", ErrInvalidArgument)
	errShape       = fmt.Errorf("%w: shape mismatch", ErrInvalidArgument)
	errAxis        = fmt.Errorf("%w: axis out of range or repeated", ErrInvalidArgument)
	errNorm        = fmt.Errorf("%w: inorm must be 0, 1 or 2", ErrInvalidArgument)
	errLastsize    = fmt.Errorf("%w: lastsize must be 2n-2 or 2n-1", ErrInvalidArgument)
	errKind        = fmt.Errorf("%w: transform type must be in 1..4", ErrInvalidArgument)
	errShortLength = fmt.Errorf("%w: axis too short for this transform", ErrInvalidArgument)
)
