// Package rootfind solves scalar equations of the form f(x) = 0 by
// Newton-Raphson iteration with a numerically estimated derivative.
//
// The solver knows nothing about astronomy: callers pass the residual as a
// function. Angular residuals must be folded with Wrap180 first, otherwise the
// 0°/360° seam looks like a 360° jump and the iteration never settles.
package rootfind

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DerivativeStep is the forward-difference step, in days.
	DerivativeStep = 5e-6

	// Tolerance is the convergence threshold on successive iterates, in days.
	Tolerance = 1e-7

	// MaxIterations caps the iteration count.
	MaxIterations = 1000
)

// ErrNonConvergence reports that the solver gave up without meeting Tolerance.
var ErrNonConvergence = errors.New("root finder did not converge")

// Func is a residual function. Errors abort the iteration and are returned as is.
type Func func(x float64) (float64, error)

// Newton searches for a root of f starting from x0.
func Newton(x0 float64, f Func) (float64, error) {
	x := x0
	for i := 0; i < MaxIterations; i++ {
		fx, err := f(x)
		if err != nil {
			return 0, err
		}
		if fx == 0 {
			return x, nil
		}

		fxStep, err := f(x + DerivativeStep)
		if err != nil {
			return 0, err
		}
		slope := (fxStep - fx) / DerivativeStep

		next := x - fx/slope
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, fmt.Errorf("%w: flat or undefined slope at x=%v", ErrNonConvergence, x)
		}
		if math.Abs(next-x) <= Tolerance {
			return next, nil
		}
		x = next
	}
	return 0, fmt.Errorf("%w: %d iterations from x0=%v", ErrNonConvergence, MaxIterations, x0)
}

// Wrap180 folds an angle in degrees into (-180, 180].
func Wrap180(deg float64) float64 {
	r := math.Mod(deg, 360)
	switch {
	case r <= -180:
		r += 360
	case r > 180:
		r -= 360
	}
	return r
}

// Norm360 folds an angle in degrees into [0, 360).
func Norm360(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	// -1e-18 + 360 rounds to 360.
	if r >= 360 {
		r -= 360
	}
	return r
}
