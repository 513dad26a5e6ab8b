package solver

import (
	"fmt"
	"math"
)

const machineEpsilon = 2.220446049250313e-16

// Brent combines bisection, secant and inverse quadratic interpolation.
type Brent struct {
	Config Config
}

// NewBrent returns a Brent solver; a zero cfg means DefaultConfig.
func NewBrent(cfg Config) Brent {
	return Brent{Config: cfg.orDefault()}
}

func (s Brent) FindRoot(f Func, lo, hi float64) (float64, error) {
	cfg := s.Config.orDefault()

	fa, fb, root, done, err := checkBracket(f, lo, hi)
	if err != nil {
		return 0, fmt.Errorf("solver.Brent: %w", err)
	}
	if done {
		return root, nil
	}

	a, b := lo, hi
	c, fc := b, fb
	var d, e float64
	for i := 0; i < cfg.MaxIterations; i++ {
		if (fb > 0 && fc > 0) || (fb < 0 && fc < 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol := 2*machineEpsilon*math.Abs(b) + 0.5*cfg.AbsoluteTolerance
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol || fb == 0 || math.Abs(fb) <= cfg.FunctionTolerance {
			return b, nil
		}

		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			sr := fb / fa
			var p, q float64
			if a == c {
				// secant
				p = 2 * xm * sr
				q = 1 - sr
			} else {
				// inverse quadratic
				q = fa / fc
				r := fb / fc
				p = sr * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (sr - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else {
			b += math.Copysign(tol, xm)
		}
		fb = f(b)
		if math.IsNaN(fb) {
			return 0, fmt.Errorf("solver.Brent: %w: f(%g) is NaN", ErrNoConvergence, b)
		}
	}
	return 0, fmt.Errorf("solver.Brent: %w after %d iterations", ErrNoConvergence, cfg.MaxIterations)
}
