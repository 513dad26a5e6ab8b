// Package solver finds roots of one-dimensional functions.
//
// Root finders are values implementing RootFinder, so callers such as the credit
// curve bootstrap can take one as a dependency and tune it through Config.
package solver

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoBracket is returned when f does not change sign over the interval.
	ErrNoBracket = errors.New("root is not bracketed")
	// ErrNoConvergence is returned when the iteration bound is reached.
	ErrNoConvergence = errors.New("root finder did not converge")
)

// Func is a function of one variable.
type Func func(x float64) float64

// RootFinder finds x in [lo, hi] with f(x) = 0. f(lo) and f(hi) must have opposite
// signs, or one of them must be zero.
type RootFinder interface {
	FindRoot(f Func, lo, hi float64) (float64, error)
}

// BracketRoot widens [x1, x2] geometrically until f changes sign over it.
func BracketRoot(f Func, x1, x2 float64, cfg Config) (float64, float64, error) {
	cfg = cfg.orDefault()
	if x1 == x2 {
		return 0, 0, fmt.Errorf("solver.BracketRoot: %w: empty initial interval at %g", ErrNoBracket, x1)
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	f1, f2 := f(x1), f(x2)
	for i := 0; i < cfg.BracketMaxIterations; i++ {
		if math.IsNaN(f1) || math.IsNaN(f2) {
			return 0, 0, fmt.Errorf("solver.BracketRoot: %w: f is NaN on [%g, %g]", ErrNoBracket, x1, x2)
		}
		if f1*f2 <= 0 {
			return x1, x2, nil
		}
		if math.Abs(f1) < math.Abs(f2) {
			x1 += cfg.BracketGrowth * (x1 - x2)
			f1 = f(x1)
		} else {
			x2 += cfg.BracketGrowth * (x2 - x1)
			f2 = f(x2)
		}
	}
	if f1*f2 <= 0 {
		return x1, x2, nil
	}
	return 0, 0, fmt.Errorf("solver.BracketRoot: %w: no sign change after %d expansions, last interval [%g, %g]",
		ErrNoBracket, cfg.BracketMaxIterations, x1, x2)
}

// checkBracket evaluates f at both ends. done is true when an end is already a root.
func checkBracket(f Func, lo, hi float64) (flo, fhi, root float64, done bool, err error) {
	flo, fhi = f(lo), f(hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) {
		return 0, 0, 0, false, fmt.Errorf("%w: f is NaN on [%g, %g]", ErrNoBracket, lo, hi)
	}
	if flo == 0 {
		return flo, fhi, lo, true, nil
	}
	if fhi == 0 {
		return flo, fhi, hi, true, nil
	}
	if (flo > 0) == (fhi > 0) {
		return 0, 0, 0, false, fmt.Errorf("%w: f(%g)=%g and f(%g)=%g have the same sign", ErrNoBracket, lo, flo, hi, fhi)
	}
	return flo, fhi, 0, false, nil
}
