package credit

import (
	"fmt"
	"math"

	"github.com/meenmo/creditcurve/curve"
	"github.com/meenmo/creditcurve/shift"
)

// CreditCurve holds zero hazard rates h(t), with survival Q(t) = exp(-h(t)*t).
// Knots sit at the protection end of the calibration instruments.
type CreditCurve struct {
	times []float64
	rates []float64
	curve curve.Curve
}

// NewCreditCurve builds a hazard curve with ISDA interpolation and flat
// extrapolation. Knot times must be positive and strictly increasing.
func NewCreditCurve(times, hazardRates []float64) (*CreditCurve, error) {
	if len(times) > 0 && times[0] <= 0 {
		return nil, fmt.Errorf("credit.NewCreditCurve: %w: first knot time %g is not positive", curve.ErrInvalidCurve, times[0])
	}
	c, err := curve.New(times, hazardRates, curve.ISDAFlat)
	if err != nil {
		return nil, fmt.Errorf("credit.NewCreditCurve: %w", err)
	}
	cc := &CreditCurve{
		times: make([]float64, len(times)),
		rates: make([]float64, len(hazardRates)),
		curve: c,
	}
	copy(cc.times, times)
	copy(cc.rates, hazardRates)
	return cc, nil
}

// NewFlatCreditCurve is a constant hazard rate with a single knot at t = 1.
func NewFlatCreditCurve(hazardRate float64) (*CreditCurve, error) {
	return NewCreditCurve([]float64{1}, []float64{hazardRate})
}

// HazardRate is the zero hazard rate h(t).
func (c *CreditCurve) HazardRate(t float64) float64 {
	return c.curve.Value(t)
}

// SurvivalProbability is exp(-h(t)*t).
func (c *CreditCurve) SurvivalProbability(t float64) float64 {
	return math.Exp(-c.HazardRate(t) * t)
}

// Times returns a copy of the knot times.
func (c *CreditCurve) Times() []float64 {
	out := make([]float64, len(c.times))
	copy(out, c.times)
	return out
}

// Rates returns a copy of the knot hazard rates.
func (c *CreditCurve) Rates() []float64 {
	out := make([]float64, len(c.rates))
	copy(out, c.rates)
	return out
}

func (c *CreditCurve) NumKnots() int { return len(c.times) }

func (c *CreditCurve) Curve() curve.Curve { return c.curve }

// WithRate returns a copy with knot i set to h.
func (c *CreditCurve) WithRate(i int, h float64) (*CreditCurve, error) {
	if i < 0 || i >= len(c.rates) {
		return nil, fmt.Errorf("credit.WithRate: %w: knot %d out of range [0, %d)", curve.ErrInvalidCurve, i, len(c.rates))
	}
	rates := c.Rates()
	rates[i] = h
	return NewCreditCurve(c.times, rates)
}

// WithPointShift returns a copy with amount added to the hazard rate at knot i.
func (c *CreditCurve) WithPointShift(i int, amount float64) (*CreditCurve, error) {
	if i < 0 || i >= len(c.rates) {
		return nil, fmt.Errorf("credit.WithPointShift: %w: knot %d out of range [0, %d)", curve.ErrInvalidCurve, i, len(c.rates))
	}
	if len(c.times) == 1 {
		return c.WithRate(0, c.rates[0]+amount)
	}
	shifted, err := shift.PointShift(c.curve, []float64{c.times[i]}, []float64{amount}, shift.Absolute)
	if err != nil {
		return nil, fmt.Errorf("credit.WithPointShift: %w", err)
	}
	rates := c.Rates()
	rates[i] = shifted.Value(c.times[i])
	return &CreditCurve{times: c.Times(), rates: rates, curve: shifted}, nil
}
