package solver

import (
	"fmt"
	"math"
)

// Newton takes Newton-Raphson steps inside the bracket and falls back to bisection
// when a step would leave it or the derivative is too flat.
type Newton struct {
	Config Config
	// Derivative of f. When nil a central difference with Config.DerivativeStep is used.
	Derivative Func
}

func NewNewton(cfg Config, derivative Func) Newton {
	return Newton{Config: cfg.orDefault(), Derivative: derivative}
}

func (s Newton) FindRoot(f Func, lo, hi float64) (float64, error) {
	cfg := s.Config.orDefault()

	flo, _, root, done, err := checkBracket(f, lo, hi)
	if err != nil {
		return 0, fmt.Errorf("solver.Newton: %w", err)
	}
	if done {
		return root, nil
	}

	deriv := s.Derivative
	if deriv == nil {
		h := cfg.DerivativeStep
		deriv = func(x float64) float64 { return (f(x+h) - f(x-h)) / (2 * h) }
	}

	x := lo + 0.5*(hi-lo)
	for i := 0; i < cfg.MaxIterations; i++ {
		fx := f(x)
		if math.IsNaN(fx) {
			return 0, fmt.Errorf("solver.Newton: %w: f(%g) is NaN", ErrNoConvergence, x)
		}
		if fx == 0 || math.Abs(fx) <= cfg.FunctionTolerance {
			return x, nil
		}

		// keep the bracket around the root
		if (fx > 0) == (flo > 0) {
			lo, flo = x, fx
		} else {
			hi = x
		}
		if hi-lo <= cfg.AbsoluteTolerance {
			return x, nil
		}

		next := lo + 0.5*(hi-lo)
		if df := deriv(x); math.Abs(df) >= cfg.DerivativeThreshold {
			step := fx / df
			if limit := cfg.DampingFactor * (hi - lo); cfg.DampingFactor > 0 && math.Abs(step) > limit {
				step = math.Copysign(limit, step)
			}
			if cand := x - step; cand > lo && cand < hi {
				next = cand
			}
		}
		if math.Abs(next-x) <= cfg.AbsoluteTolerance {
			return next, nil
		}
		x = next
	}
	return 0, fmt.Errorf("solver.Newton: %w after %d iterations", ErrNoConvergence, cfg.MaxIterations)
}
