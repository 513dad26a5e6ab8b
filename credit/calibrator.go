// Package credit calibrates hazard-rate curves to CDS quotes and computes hedges
// against them.
package credit

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/meenmo/creditcurve/cds"
	"github.com/meenmo/creditcurve/solver"
	"github.com/meenmo/creditcurve/yieldcurve"
)

var (
	// ErrCalibration is returned when a bucket cannot be repriced.
	ErrCalibration = errors.New("credit curve calibration failed")
	// ErrHedge is returned when hedge ratios cannot be computed.
	ErrHedge = errors.New("hedge ratio calculation failed")
)

// CalibrationConfig bounds the bootstrap.
type CalibrationConfig struct {
	// PVTolerance is the largest per-unit-notional PV a calibrated bucket may keep.
	PVTolerance float64
	// Solver configures bracket expansion and the default root finder.
	Solver solver.Config
}

var DefaultCalibrationConfig = CalibrationConfig{
	PVTolerance: 1e-10,
	Solver:      solver.DefaultConfig,
}

// Calibrator bootstraps credit curves one bucket at a time.
type Calibrator struct {
	rootFinder solver.RootFinder
	pricer     *Pricer
	cfg        CalibrationConfig
	logger     zerolog.Logger
}

// CalibratorOption configures a Calibrator.
type CalibratorOption func(*Calibrator)

// WithRootFinder replaces the default Brent solver.
func WithRootFinder(rf solver.RootFinder) CalibratorOption {
	return func(c *Calibrator) { c.rootFinder = rf }
}

func WithPricer(p *Pricer) CalibratorOption {
	return func(c *Calibrator) { c.pricer = p }
}

func WithConfig(cfg CalibrationConfig) CalibratorOption {
	return func(c *Calibrator) { c.cfg = cfg }
}

func WithLogger(l zerolog.Logger) CalibratorOption {
	return func(c *Calibrator) { c.logger = l }
}

func NewCalibrator(opts ...CalibratorOption) *Calibrator {
	c := &Calibrator{
		pricer: NewPricer(),
		cfg:    DefaultCalibrationConfig,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rootFinder == nil {
		c.rootFinder = solver.NewBrent(c.cfg.Solver)
	}
	return c
}

// Calibrate finds the hazard curve that reprices every bucket at its par spread.
func (c *Calibrator) Calibrate(buckets []*cds.Analytic, spreads []float64, yc yieldcurve.DiscountCurve) (*CreditCurve, error) {
	if len(buckets) != len(spreads) {
		return nil, fmt.Errorf("credit.Calibrate: %w: %d buckets but %d spreads", ErrCalibration, len(buckets), len(spreads))
	}
	curve, err := c.bootstrap(buckets, cds.ParSpreads(spreads), yc)
	if err != nil {
		return nil, fmt.Errorf("credit.Calibrate: %w", err)
	}
	return curve, nil
}

// CalibrateQuotes is Calibrate for a mix of par spread and points upfront quotes.
func (c *Calibrator) CalibrateQuotes(buckets []*cds.Analytic, quotes []cds.Quote, yc yieldcurve.DiscountCurve) (*CreditCurve, error) {
	if len(buckets) != len(quotes) {
		return nil, fmt.Errorf("credit.CalibrateQuotes: %w: %d buckets but %d quotes", ErrCalibration, len(buckets), len(quotes))
	}
	curve, err := c.bootstrap(buckets, quotes, yc)
	if err != nil {
		return nil, fmt.Errorf("credit.CalibrateQuotes: %w", err)
	}
	return curve, nil
}

func (c *Calibrator) bootstrap(buckets []*cds.Analytic, quotes []cds.Quote, yc yieldcurve.DiscountCurve) (*CreditCurve, error) {
	if len(buckets) == 0 {
		return nil, fmt.Errorf("%w: no buckets", ErrCalibration)
	}
	if yc == nil {
		return nil, fmt.Errorf("%w: nil yield curve", ErrCalibration)
	}

	n := len(buckets)
	times := make([]float64, n)
	coupons := make([]float64, n)
	upfronts := make([]float64, n)
	for i, b := range buckets {
		if b == nil {
			return nil, fmt.Errorf("%w: bucket %d is nil", ErrCalibration, i)
		}
		times[i] = b.ProtectionEnd()
		if i > 0 && times[i] <= times[i-1] {
			return nil, fmt.Errorf("%w: bucket %d (%s) does not mature after bucket %d", ErrCalibration, i, b.Label(), i-1)
		}
		switch q := quotes[i].(type) {
		case cds.ParSpread:
			coupons[i] = q.Spread
		case cds.PointsUpfront:
			coupons[i], upfronts[i] = q.Coupon, q.Upfront
		default:
			return nil, fmt.Errorf("%w: unsupported quote %T for bucket %d", ErrCalibration, quotes[i], i)
		}
		if !finite(coupons[i]) || !finite(upfronts[i]) {
			return nil, fmt.Errorf("%w: quote for bucket %d is not finite", ErrCalibration, i)
		}
	}

	rates := make([]float64, n)
	for i, b := range buckets {
		pv := func(h float64) float64 {
			rates[i] = h
			cc, err := NewCreditCurve(times[:i+1], rates[:i+1])
			if err != nil {
				return math.NaN()
			}
			return c.pricer.PV(b, coupons[i], yc, cc, Clean) - upfronts[i]
		}

		guess := (coupons[i] + upfronts[i]/times[i]) / b.LGD()
		if !(guess > 0) || !finite(guess) {
			guess = 0.01
		}
		lo, hi, err := solver.BracketRoot(pv, 0.8*guess, 1.25*guess, c.cfg.Solver)
		if err != nil {
			return nil, fmt.Errorf("%w: bucket %d (%s): %w", ErrCalibration, i, b.Label(), err)
		}
		h, err := c.rootFinder.FindRoot(pv, lo, hi)
		if err != nil {
			return nil, fmt.Errorf("%w: bucket %d (%s): %w", ErrCalibration, i, b.Label(), err)
		}
		residual := pv(h)
		if !finite(h) || !finite(residual) || math.Abs(residual) > c.cfg.PVTolerance {
			return nil, fmt.Errorf("%w: bucket %d (%s): hazard %g leaves PV %g", ErrCalibration, i, b.Label(), h, residual)
		}

		c.logger.Debug().
			Int("bucket", i).
			Str("tenor", b.Label()).
			Float64("time", times[i]).
			Float64("hazard", h).
			Float64("pv", residual).
			Msg("calibrated bucket")
	}

	cc, err := NewCreditCurve(times, rates)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCalibration, err)
	}
	return cc, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
