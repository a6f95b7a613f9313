package gridder

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the gridder entry points.
var (
	// ErrInvalidArgument is the base kind for every rejected argument.
	ErrInvalidArgument = errors.New("gridder: invalid argument")

	// ErrUnsupportedDatatype is returned for element types without an
	// instantiation.
	ErrUnsupportedDatatype = errors.New("gridder: unsupported data type")

	// ErrInternal signals a violated invariant in the planner or the
	// gridding pipeline.
	ErrInternal = errors.New("gridder: internal invariant violated")
)

var (
	errNilArray = fmt.Errorf("%w: nil array data", ErrInvalidArgument)
	errShape    = fmt.Errorf("%w: shape mismatch", ErrInvalidArgument)
	errPixsize  = fmt.Errorf("%w: pixel size must be positive", ErrInvalidArgument)
	errEpsilon  = fmt.Errorf("%w: epsilon must be positive", ErrInvalidArgument)
	errOddImage = fmt.Errorf("%w: image dimensions must be even", ErrInvalidArgument)
	errFreq     = fmt.Errorf("%w: channel frequencies must be positive", ErrInvalidArgument)
)
