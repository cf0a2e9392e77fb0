package integration

import (
	"errors"

	"gonum.org/v1/gonum/integrate"
)

var (
	// ErrInsufficientData is returned when fewer than two samples are available
	ErrInsufficientData = errors.New("at least two samples are required")
	// ErrLengthMismatch is returned when x and y differ in length
	ErrLengthMismatch = errors.New("x and y must have the same length")
	// ErrDuplicateShift is returned when the abscissae are not strictly increasing
	ErrDuplicateShift = errors.New("shift values must be strictly increasing")
)

// Simpson approximates the integral of y over x using the composite Simpson's
// rule for irregularly spaced samples. x must be sorted ascending.
//
// With an odd number of intervals the last interval is integrated with the
// irregular-spacing end correction. Two samples fall back to the trapezoid.
func Simpson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, ErrLengthMismatch
	}
	if len(x) < 2 {
		return 0, ErrInsufficientData
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return 0, ErrDuplicateShift
		}
	}

	if len(x) == 2 {
		return integrate.Trapezoidal(x, y), nil
	}
	return integrate.Simpsons(x, y), nil
}
