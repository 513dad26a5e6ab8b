// Package curve provides immutable one-dimensional curves of time against value.
//
// A curve is built once from sorted knots and never changes afterwards: every
// "modification" (shift, recalibration) produces a new value, so curves can be
// shared across goroutines without locking.
package curve

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidCurve is returned when knots cannot form a curve.
	ErrInvalidCurve = errors.New("invalid curve")
	// ErrUnsupportedCurveType is returned when an operation needs a curve representation
	// other than the one supplied.
	ErrUnsupportedCurveType = errors.New("unsupported curve type")
)

// Curve maps a time (in years) onto a value.
type Curve interface {
	Value(t float64) float64
}

// New builds a curve from knots. A single knot yields a ConstantCurve; two or more
// yield an InterpolatedCurve using interp.
func New(times, values []float64, interp Interpolator) (Curve, error) {
	if err := validateKnots(times, values); err != nil {
		return nil, fmt.Errorf("curve.New: %w", err)
	}
	if len(times) == 1 {
		return NewConstant(values[0]), nil
	}
	return NewInterpolated(times, values, interp)
}

// Sample evaluates c at every time in ts.
func Sample(c Curve, ts []float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = c.Value(t)
	}
	return out
}

func validateKnots(times, values []float64) error {
	if len(times) == 0 {
		return fmt.Errorf("%w: no knots", ErrInvalidCurve)
	}
	if len(times) != len(values) {
		return fmt.Errorf("%w: %d times but %d values", ErrInvalidCurve, len(times), len(values))
	}
	for i := range times {
		if math.IsNaN(times[i]) || math.IsInf(times[i], 0) {
			return fmt.Errorf("%w: time %d is not finite", ErrInvalidCurve, i)
		}
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			return fmt.Errorf("%w: value %d is not finite", ErrInvalidCurve, i)
		}
		if i > 0 && times[i] <= times[i-1] {
			return fmt.Errorf("%w: times not strictly increasing at index %d (%g <= %g)", ErrInvalidCurve, i, times[i], times[i-1])
		}
	}
	return nil
}

// ConstantCurve returns the same value for every time.
type ConstantCurve struct {
	value float64
}

// NewConstant builds a flat curve.
func NewConstant(value float64) *ConstantCurve {
	return &ConstantCurve{value: value}
}

func (c *ConstantCurve) Value(float64) float64 {
	return c.value
}

// Level returns the constant value.
func (c *ConstantCurve) Level() float64 {
	return c.value
}

// InterpolatedCurve interpolates between knots and extrapolates outside them.
type InterpolatedCurve struct {
	times  []float64
	values []float64
	interp Interpolator
}

// NewInterpolated builds an interpolated curve; it needs at least two knots.
func NewInterpolated(times, values []float64, interp Interpolator) (*InterpolatedCurve, error) {
	if err := validateKnots(times, values); err != nil {
		return nil, fmt.Errorf("curve.NewInterpolated: %w", err)
	}
	if len(times) < 2 {
		return nil, fmt.Errorf("curve.NewInterpolated: %w: need at least 2 knots, got %d", ErrInvalidCurve, len(times))
	}
	if interp.IsZero() {
		return nil, fmt.Errorf("curve.NewInterpolated: %w: no interpolator", ErrInvalidCurve)
	}
	if err := interp.validate(values); err != nil {
		return nil, fmt.Errorf("curve.NewInterpolated: %w", err)
	}

	c := &InterpolatedCurve{
		times:  make([]float64, len(times)),
		values: make([]float64, len(values)),
		interp: interp,
	}
	copy(c.times, times)
	copy(c.values, values)
	return c, nil
}

// Value returns the knot value on an exact hit, the interpolated value inside the
// knot range and the extrapolated value outside it.
func (c *InterpolatedCurve) Value(t float64) float64 {
	if math.IsNaN(t) {
		return math.NaN()
	}
	n := len(c.times)
	if t < c.times[0] {
		return c.interp.extrapolateBelow(c.times, c.values, t)
	}
	if t > c.times[n-1] {
		return c.interp.extrapolateAbove(c.times, c.values, t)
	}
	idx, exact := searchKnot(c.times, t)
	if exact {
		return c.values[idx]
	}
	return c.interp.interpolate(c.times, c.values, idx-1, t)
}

// Times returns a copy of the knot times.
func (c *InterpolatedCurve) Times() []float64 {
	out := make([]float64, len(c.times))
	copy(out, c.times)
	return out
}

// Values returns a copy of the knot values.
func (c *InterpolatedCurve) Values() []float64 {
	out := make([]float64, len(c.values))
	copy(out, c.values)
	return out
}

// Size is the number of knots.
func (c *InterpolatedCurve) Size() int {
	return len(c.times)
}

// Interpolator returns the interpolation strategy.
func (c *InterpolatedCurve) Interpolator() Interpolator {
	return c.interp
}

// IndexOf returns the knot index at exactly t, or -1.
func (c *InterpolatedCurve) IndexOf(t float64) int {
	idx, exact := searchKnot(c.times, t)
	if !exact {
		return -1
	}
	return idx
}
