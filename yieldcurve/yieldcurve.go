// Package yieldcurve wraps curves of continuously compounded zero rates and exposes
// discount factors.
package yieldcurve

import (
	"fmt"
	"math"

	"github.com/meenmo/creditcurve/curve"
	"github.com/meenmo/creditcurve/shift"
)

// DiscountCurve is what pricers need from a yield curve.
type DiscountCurve interface {
	Name() string
	DiscountFactor(t float64) float64
	// TimePoints are the knot times in the caller's time frame.
	TimePoints() []float64
}

// YieldCurve is a named zero-rate curve with DF(t) = exp(-t*r(t)).
type YieldCurve struct {
	name  string
	curve curve.Curve
}

// New wraps c under name.
func New(name string, c curve.Curve) (*YieldCurve, error) {
	if c == nil {
		return nil, fmt.Errorf("yieldcurve.New: %w: nil curve", curve.ErrInvalidCurve)
	}
	return &YieldCurve{name: name, curve: c}, nil
}

// FromRates builds a YieldCurve on the given knots with ISDA interpolation.
func FromRates(name string, times, rates []float64) (*YieldCurve, error) {
	c, err := curve.New(times, rates, curve.ISDAFlat)
	if err != nil {
		return nil, fmt.Errorf("yieldcurve.FromRates: %w", err)
	}
	return &YieldCurve{name: name, curve: c}, nil
}

func (y *YieldCurve) Name() string { return y.name }

func (y *YieldCurve) Curve() curve.Curve { return y.curve }

// InterestRate is the zero rate at t.
func (y *YieldCurve) InterestRate(t float64) float64 {
	return y.curve.Value(t)
}

func (y *YieldCurve) DiscountFactor(t float64) float64 {
	return math.Exp(-t * y.curve.Value(t))
}

// TimePoints returns the knot times, or nil for curves without knots.
func (y *YieldCurve) TimePoints() []float64 {
	return knotTimes(y.curve, 0)
}

// WithShift applies spec to the zero rates and returns a renamed copy.
func (y *YieldCurve) WithShift(spec shift.Spec, st shift.Type) (*YieldCurve, error) {
	c, err := shift.Apply(y.curve, spec, st)
	if err != nil {
		return nil, fmt.Errorf("yieldcurve.WithShift: %w", err)
	}
	return &YieldCurve{name: y.name + suffix(spec), curve: c}, nil
}

func (y *YieldCurve) WithParallelShift(amount float64, st shift.Type) (*YieldCurve, error) {
	return y.WithShift(shift.Parallel{Amount: amount}, st)
}

func (y *YieldCurve) WithBucketedShifts(buckets []shift.Bucket, amounts []float64, st shift.Type) (*YieldCurve, error) {
	return y.WithShift(shift.Bucketed{Buckets: buckets, Amounts: amounts}, st)
}

func (y *YieldCurve) WithPointShifts(times, amounts []float64, st shift.Type) (*YieldCurve, error) {
	return y.WithShift(shift.Points{Times: times, Amounts: amounts}, st)
}

func suffix(spec shift.Spec) string {
	switch spec.(type) {
	case shift.Parallel:
		return "WithParallelShift"
	case shift.Bucketed:
		return "WithBucketedShifts"
	case shift.Points:
		return "WithPointShifts"
	default:
		return "WithShift"
	}
}

func knotTimes(c curve.Curve, offset float64) []float64 {
	var ts []float64
	switch cc := c.(type) {
	case *curve.InterpolatedCurve:
		ts = cc.Times()
	case *curve.SpreadCurve:
		return knotTimes(cc.Base(), offset)
	default:
		return nil
	}
	for i := range ts {
		ts[i] += offset
	}
	return ts
}
