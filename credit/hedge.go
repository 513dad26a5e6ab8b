package credit

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/meenmo/creditcurve/cds"
	"github.com/meenmo/creditcurve/yieldcurve"
)

// DefaultHedgeBump is the hazard-rate bump for finite-difference sensitivities.
const DefaultHedgeBump = 1e-6

// Target is the exposure being hedged.
type Target struct {
	Analytic *cds.Analytic
	Coupon   float64
	Notional float64
}

// HedgeNotional is the notional of one bucket instrument in the hedge.
type HedgeNotional struct {
	Tenor    string
	Notional float64
}

// HedgeRatioCalculator matches the target's hazard-curve sensitivities with a
// portfolio of bucket instruments.
type HedgeRatioCalculator struct {
	pricer *Pricer
	bump   float64
	logger zerolog.Logger
}

// HedgeOption configures a HedgeRatioCalculator.
type HedgeOption func(*HedgeRatioCalculator)

func WithHedgePricer(p *Pricer) HedgeOption {
	return func(h *HedgeRatioCalculator) { h.pricer = p }
}

// WithBump sets the central-difference bump applied to each hazard knot.
func WithBump(bump float64) HedgeOption {
	return func(h *HedgeRatioCalculator) { h.bump = bump }
}

func WithHedgeLogger(l zerolog.Logger) HedgeOption {
	return func(h *HedgeRatioCalculator) { h.logger = l }
}

func NewHedgeRatioCalculator(opts ...HedgeOption) *HedgeRatioCalculator {
	h := &HedgeRatioCalculator{
		pricer: NewPricer(),
		bump:   DefaultHedgeBump,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HedgeRatios returns, per bucket, the notional of the bucket instrument per unit
// notional of the target. The credit curve must have one knot per bucket.
func (h *HedgeRatioCalculator) HedgeRatios(target Target, cc *CreditCurve, yc yieldcurve.DiscountCurve, buckets []*cds.Analytic, hedgeCoupons []float64) ([]float64, error) {
	if target.Analytic == nil || cc == nil || yc == nil {
		return nil, fmt.Errorf("credit.HedgeRatios: %w: target, credit curve and yield curve are required", ErrHedge)
	}
	n := len(buckets)
	if n == 0 {
		return nil, fmt.Errorf("credit.HedgeRatios: %w: no buckets", ErrHedge)
	}
	if len(hedgeCoupons) != n {
		return nil, fmt.Errorf("credit.HedgeRatios: %w: %d buckets but %d coupons", ErrHedge, n, len(hedgeCoupons))
	}
	if cc.NumKnots() != n {
		return nil, fmt.Errorf("credit.HedgeRatios: %w: credit curve has %d knots for %d buckets", ErrHedge, cc.NumKnots(), n)
	}
	if !(h.bump > 0) {
		return nil, fmt.Errorf("credit.HedgeRatios: %w: bump %g must be positive", ErrHedge, h.bump)
	}

	// a[j][i] is dPV_i/dh_j; v[j] is dPV_target/dh_j
	a := mat.NewDense(n, n, nil)
	v := mat.NewVecDense(n, nil)
	for j := 0; j < n; j++ {
		up, err := cc.WithPointShift(j, h.bump)
		if err != nil {
			return nil, fmt.Errorf("credit.HedgeRatios: %w: %w", ErrHedge, err)
		}
		down, err := cc.WithPointShift(j, -h.bump)
		if err != nil {
			return nil, fmt.Errorf("credit.HedgeRatios: %w: %w", ErrHedge, err)
		}
		for i, b := range buckets {
			if b == nil {
				return nil, fmt.Errorf("credit.HedgeRatios: %w: bucket %d is nil", ErrHedge, i)
			}
			a.Set(j, i, h.sensitivity(b, hedgeCoupons[i], yc, up, down))
		}
		v.SetVec(j, h.sensitivity(target.Analytic, target.Coupon, yc, up, down))
	}

	var w mat.VecDense
	if err := w.SolveVec(a, v); err != nil {
		return nil, fmt.Errorf("credit.HedgeRatios: %w: %w", ErrHedge, err)
	}

	ratios := make([]float64, n)
	for i := range ratios {
		ratios[i] = w.AtVec(i)
	}
	h.logger.Debug().Floats64("ratios", ratios).Str("target", target.Analytic.Label()).Msg("hedge ratios")
	return ratios, nil
}

// HedgeNotionals scales HedgeRatios by the target notional and labels each entry
// with its bucket tenor, in bucket order.
func (h *HedgeRatioCalculator) HedgeNotionals(target Target, cc *CreditCurve, yc yieldcurve.DiscountCurve, buckets []*cds.Analytic, hedgeCoupons []float64) ([]HedgeNotional, error) {
	ratios, err := h.HedgeRatios(target, cc, yc, buckets, hedgeCoupons)
	if err != nil {
		return nil, err
	}
	out := make([]HedgeNotional, len(ratios))
	for i, r := range ratios {
		out[i] = HedgeNotional{Tenor: buckets[i].Label(), Notional: r * target.Notional}
	}
	return out, nil
}

func (h *HedgeRatioCalculator) sensitivity(c *cds.Analytic, coupon float64, yc yieldcurve.DiscountCurve, up, down *CreditCurve) float64 {
	pvUp := h.pricer.PV(c, coupon, yc, up, Clean)
	pvDown := h.pricer.PV(c, coupon, yc, down, Clean)
	return (pvUp - pvDown) / (2 * h.bump)
}
