package xlgrid

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates a sub-range or address that falls outside its parent range.
var ErrOutOfBounds = errors.New("out of bounds")

// ErrInvalidAddress indicates a malformed A1-style cell or range reference.
var ErrInvalidAddress = errors.New("invalid address")

// RangeError reports a failed range operation together with the range it
// was applied to and the offending target.
type RangeError struct {
	Op     string // "range", "cell"
	Range  RangeAddress
	Target RangeAddress
	Err    error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %s in %s: %v", e.Op, e.Target, e.Range, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}
