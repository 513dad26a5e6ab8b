package solver

import (
	"fmt"
	"math"
)

// Bisection halves the bracket until it is narrower than the tolerance.
type Bisection struct {
	Config Config
}

func NewBisection(cfg Config) Bisection {
	return Bisection{Config: cfg.orDefault()}
}

func (s Bisection) FindRoot(f Func, lo, hi float64) (float64, error) {
	cfg := s.Config.orDefault()

	flo, _, root, done, err := checkBracket(f, lo, hi)
	if err != nil {
		return 0, fmt.Errorf("solver.Bisection: %w", err)
	}
	if done {
		return root, nil
	}

	for i := 0; i < cfg.MaxIterations; i++ {
		mid := lo + 0.5*(hi-lo)
		if mid == lo || mid == hi {
			return mid, nil
		}
		fm := f(mid)
		if math.IsNaN(fm) {
			return 0, fmt.Errorf("solver.Bisection: %w: f(%g) is NaN", ErrNoConvergence, mid)
		}
		if fm == 0 || math.Abs(fm) <= cfg.FunctionTolerance || 0.5*(hi-lo) <= cfg.AbsoluteTolerance {
			return mid, nil
		}
		if (fm > 0) == (flo > 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return 0, fmt.Errorf("solver.Bisection: %w after %d iterations", ErrNoConvergence, cfg.MaxIterations)
}
