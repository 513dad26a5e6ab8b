package credit

import (
	"fmt"
	"time"

	"github.com/meenmo/creditcurve/cds"
	"github.com/meenmo/creditcurve/shift"
	"github.com/meenmo/creditcurve/yieldcurve"
)

// StandardHedge hedges a target with standard IMM contracts on the quoted tenors,
// every one paying the target's coupon.
type StandardHedge struct {
	Factory    *cds.Factory
	Calibrator *Calibrator
	Calculator *HedgeRatioCalculator
}

// NewStandardHedge uses default conventions where a component is nil.
func NewStandardHedge(f *cds.Factory, cal *Calibrator, calc *HedgeRatioCalculator) StandardHedge {
	if f == nil {
		f = cds.NewFactory()
	}
	if cal == nil {
		cal = NewCalibrator()
	}
	if calc == nil {
		calc = NewHedgeRatioCalculator()
	}
	return StandardHedge{Factory: f, Calibrator: cal, Calculator: calc}
}

// Buckets builds the IMM calibration contracts for tenors.
func (s StandardHedge) Buckets(tradeDate time.Time, tenors []cds.Tenor) ([]*cds.Analytic, error) {
	return s.Factory.MakeIMMCDS(tradeDate, tenors)
}

// Notionals calibrates to spreads on the tenor buckets and returns the hedge notionals.
func (s StandardHedge) Notionals(tradeDate time.Time, tenors []cds.Tenor, spreads []float64, target Target, yc yieldcurve.DiscountCurve) ([]HedgeNotional, *CreditCurve, error) {
	buckets, err := s.Buckets(tradeDate, tenors)
	if err != nil {
		return nil, nil, fmt.Errorf("credit.StandardHedge: %w", err)
	}
	cc, err := s.Calibrator.Calibrate(buckets, spreads, yc)
	if err != nil {
		return nil, nil, fmt.Errorf("credit.StandardHedge: %w", err)
	}
	coupons := make([]float64, len(buckets))
	for i := range coupons {
		coupons[i] = target.Coupon
	}
	notionals, err := s.Calculator.HedgeNotionals(target, cc, yc, buckets, coupons)
	if err != nil {
		return nil, nil, fmt.Errorf("credit.StandardHedge: %w", err)
	}
	return notionals, cc, nil
}

// StandardHedgeNotionals is StandardHedge.Notionals with default conventions.
func StandardHedgeNotionals(tradeDate time.Time, tenors []cds.Tenor, spreads []float64, target Target, yc yieldcurve.DiscountCurve) ([]HedgeNotional, error) {
	notionals, _, err := NewStandardHedge(nil, nil, nil).Notionals(tradeDate, tenors, spreads, target, yc)
	return notionals, err
}

// IR01 is the change in the target's clean PV, scaled by its notional, for an
// absolute parallel shift of bump in the yield curve's zero rates.
func IR01(p *Pricer, target Target, yc *yieldcurve.ISDACurve, cc *CreditCurve, bump float64) (float64, error) {
	if p == nil {
		p = NewPricer()
	}
	if target.Analytic == nil || yc == nil || cc == nil {
		return 0, fmt.Errorf("credit.IR01: %w: target, yield curve and credit curve are required", ErrHedge)
	}
	bumped, err := yc.WithParallelShift(bump, shift.Absolute)
	if err != nil {
		return 0, fmt.Errorf("credit.IR01: %w", err)
	}
	base := p.PV(target.Analytic, target.Coupon, yc, cc, Clean)
	shifted := p.PV(target.Analytic, target.Coupon, bumped, cc, Clean)
	return (shifted - base) * target.Notional, nil
}
