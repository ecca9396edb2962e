package costack

import(
	"errors"
)

// All of these are local, recoverable failures - a caller can skip
// the offending exposure and keep accumulating others.
var(
	ErrUnknownPlane       = errors.New("unknown mask plane")
	ErrDegenerateVariance = errors.New("degenerate variance")
	ErrDimensionMismatch  = errors.New("dimension mismatch")
	ErrBadZeroPoint       = errors.New("zero point does not round trip")
)
