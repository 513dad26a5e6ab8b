package shift

import (
	"fmt"
	"sort"

	"github.com/meenmo/creditcurve/curve"
)

// pointShifter shifts a curve at individual times by the given amounts.
type pointShifter func(times, amounts []float64) (curve.Curve, error)

// shiftFunctionFor returns the additive point-shift function for c's representation.
func shiftFunctionFor(c curve.Curve) (pointShifter, error) {
	switch cc := c.(type) {
	case *curve.InterpolatedCurve:
		return func(times, amounts []float64) (curve.Curve, error) {
			return shiftKnots(cc, times, amounts, func(v, a float64) float64 { return v + a })
		}, nil
	case *curve.ConstantCurve:
		return func(times, amounts []float64) (curve.Curve, error) {
			if len(times) > 0 {
				return nil, fmt.Errorf("%w: %w: cannot point shift a constant curve", ErrShift, curve.ErrUnsupportedCurveType)
			}
			return curve.NewConstant(cc.Level()), nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %w: no point shift function for %T", ErrShift, curve.ErrUnsupportedCurveType, c)
	}
}

// PointShift applies amounts at the given times. Relative shifts need an interpolated
// curve; an existing knot is scaled in place, any other time becomes a new knot.
func PointShift(c curve.Curve, times, amounts []float64, st Type) (curve.Curve, error) {
	if err := checkInputs(c, st); err != nil {
		return nil, fmt.Errorf("shift.PointShift: %w", err)
	}
	if len(times) != len(amounts) {
		return nil, fmt.Errorf("shift.PointShift: %w: must have one shift per point (%d times, %d shifts)", ErrShift, len(times), len(amounts))
	}
	for i := range times {
		if !finite(times[i]) || !finite(amounts[i]) {
			return nil, fmt.Errorf("shift.PointShift: %w: point %d is not finite", ErrShift, i)
		}
	}

	switch st {
	case Absolute:
		fn, err := shiftFunctionFor(c)
		if err != nil {
			return nil, fmt.Errorf("shift.PointShift: %w", err)
		}
		out, err := fn(times, amounts)
		if err != nil {
			return nil, fmt.Errorf("shift.PointShift: %w", err)
		}
		return out, nil
	default:
		ic, ok := c.(*curve.InterpolatedCurve)
		if !ok {
			return nil, fmt.Errorf("shift.PointShift: %w: %w: relative point shifts need an interpolated curve, got %T", ErrShift, curve.ErrUnsupportedCurveType, c)
		}
		out, err := shiftKnots(ic, times, amounts, func(v, a float64) float64 { return v * (1 + a) })
		if err != nil {
			return nil, fmt.Errorf("shift.PointShift: %w", err)
		}
		return out, nil
	}
}

// shiftKnots applies each amount in order. New knots take the original curve's value
// at that time; a time repeated in the list hits the knot created earlier.
func shiftKnots(c *curve.InterpolatedCurve, times, amounts []float64, apply func(v, a float64) float64) (*curve.InterpolatedCurve, error) {
	xs := c.Times()
	ys := c.Values()
	for i, t := range times {
		idx := indexOf(xs, t)
		if idx >= 0 {
			ys[idx] = apply(ys[idx], amounts[i])
			continue
		}
		xs = append(xs, t)
		ys = append(ys, apply(c.Value(t), amounts[i]))
	}

	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return xs[order[a]] < xs[order[b]] })

	sortedX := make([]float64, len(xs))
	sortedY := make([]float64, len(ys))
	for i, k := range order {
		sortedX[i] = xs[k]
		sortedY[i] = ys[k]
	}
	return curve.NewInterpolated(sortedX, sortedY, c.Interpolator())
}

func indexOf(xs []float64, t float64) int {
	for i, x := range xs {
		if x == t {
			return i
		}
	}
	return -1
}
