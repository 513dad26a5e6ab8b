package yieldcurve

import (
	"fmt"
	"math"

	"github.com/meenmo/creditcurve/curve"
	"github.com/meenmo/creditcurve/shift"
)

// ISDACurve is a zero-rate curve whose knots are measured from a spot date that sits
// offset years after the valuation date. Callers work in valuation-date time; the
// curve data stays in spot-date time.
type ISDACurve struct {
	name   string
	curve  curve.Curve
	times  []float64
	offset float64
}

// NewISDACurve builds the curve with ISDA interpolation and flat extrapolation. A
// single knot gives a constant rate.
func NewISDACurve(name string, times, rates []float64, offset float64) (*ISDACurve, error) {
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return nil, fmt.Errorf("yieldcurve.NewISDACurve: %w: offset is not finite", curve.ErrInvalidCurve)
	}
	c, err := curve.New(times, rates, curve.ISDAFlat)
	if err != nil {
		return nil, fmt.Errorf("yieldcurve.NewISDACurve: %s: %w", name, err)
	}
	ts := make([]float64, len(times))
	copy(ts, times)
	return &ISDACurve{name: name, curve: c, times: ts, offset: offset}, nil
}

func (y *ISDACurve) Name() string { return y.name }

// Curve returns the underlying curve in spot-date time.
func (y *ISDACurve) Curve() curve.Curve { return y.curve }

func (y *ISDACurve) Offset() float64 { return y.offset }

// InterestRate is the zero rate of the underlying curve at t - offset.
func (y *ISDACurve) InterestRate(t float64) float64 {
	return y.curve.Value(t - y.offset)
}

// DiscountFactor is exp((offset-t)*r(t)) / exp(offset*r(0)).
func (y *ISDACurve) DiscountFactor(t float64) float64 {
	return math.Exp((y.offset-t)*y.InterestRate(t)) / math.Exp(y.offset*y.InterestRate(0))
}

// TimePoints returns the knot times shifted by the offset.
func (y *ISDACurve) TimePoints() []float64 {
	out := make([]float64, len(y.times))
	for i, t := range y.times {
		out[i] = t + y.offset
	}
	return out
}

// WithShift applies spec to the underlying rates. Bucket bounds and point times are
// given in valuation-date time, like TimePoints.
func (y *ISDACurve) WithShift(spec shift.Spec, st shift.Type) (*ISDACurve, error) {
	c, err := shift.Apply(y.curve, y.toCurveTime(spec), st)
	if err != nil {
		return nil, fmt.Errorf("yieldcurve.ISDACurve.WithShift: %w", err)
	}
	times := y.times
	if ic, ok := c.(*curve.InterpolatedCurve); ok {
		times = ic.Times()
	}
	ts := make([]float64, len(times))
	copy(ts, times)
	return &ISDACurve{name: y.name + suffix(spec), curve: c, times: ts, offset: y.offset}, nil
}

func (y *ISDACurve) WithParallelShift(amount float64, st shift.Type) (*ISDACurve, error) {
	return y.WithShift(shift.Parallel{Amount: amount}, st)
}

func (y *ISDACurve) WithBucketedShifts(buckets []shift.Bucket, amounts []float64, st shift.Type) (*ISDACurve, error) {
	return y.WithShift(shift.Bucketed{Buckets: buckets, Amounts: amounts}, st)
}

func (y *ISDACurve) WithPointShifts(times, amounts []float64, st shift.Type) (*ISDACurve, error) {
	return y.WithShift(shift.Points{Times: times, Amounts: amounts}, st)
}

func (y *ISDACurve) toCurveTime(spec shift.Spec) shift.Spec {
	if y.offset == 0 {
		return spec
	}
	switch s := spec.(type) {
	case shift.Bucketed:
		buckets := make([]shift.Bucket, len(s.Buckets))
		for i, b := range s.Buckets {
			buckets[i] = shift.Bucket{Start: b.Start - y.offset, End: b.End - y.offset}
		}
		return shift.Bucketed{Buckets: buckets, Amounts: s.Amounts}
	case shift.Points:
		times := make([]float64, len(s.Times))
		for i, t := range s.Times {
			times[i] = t - y.offset
		}
		return shift.Points{Times: times, Amounts: s.Amounts}
	default:
		return spec
	}
}
