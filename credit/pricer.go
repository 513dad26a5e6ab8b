package credit

import (
	"fmt"
	"math"
	"sort"

	"github.com/meenmo/creditcurve/cds"
	"github.com/meenmo/creditcurve/yieldcurve"
)

// PriceType selects whether accrued premium is included in the premium leg.
type PriceType int

const (
	Clean PriceType = iota
	Dirty
)

func (p PriceType) String() string {
	if p == Dirty {
		return "DIRTY"
	}
	return "CLEAN"
}

// Pricer values CDSs with the ISDA standard model. Both curves are treated as
// piecewise-constant forwards between their knots, so every leg integral is closed
// form. Values are per unit notional, as of the cash settle date.
type Pricer struct{}

func NewPricer() *Pricer {
	return &Pricer{}
}

// ProtectionLeg is the value of the contingent leg.
func (p *Pricer) ProtectionLeg(c *cds.Analytic, yc yieldcurve.DiscountCurve, cc *CreditCurve) float64 {
	start, end := c.ProtectionStart(), c.ProtectionEnd()
	nodes := integrationNodes(start, end, yc.TimePoints(), cc.Times())

	ht0 := -math.Log(cc.SurvivalProbability(nodes[0]))
	rt0 := -math.Log(yc.DiscountFactor(nodes[0]))
	b0 := math.Exp(-ht0 - rt0)

	pv := 0.0
	for _, t := range nodes[1:] {
		ht1 := -math.Log(cc.SurvivalProbability(t))
		rt1 := -math.Log(yc.DiscountFactor(t))
		b1 := math.Exp(-ht1 - rt1)

		dht := ht1 - ht0
		pv += dht * b0 * e1(dht+rt1-rt0)

		ht0, rt0, b0 = ht1, rt1, b1
	}
	return c.LGD() * pv / yc.DiscountFactor(c.CashSettleTime())
}

// RPV01 is the premium leg value per unit coupon.
func (p *Pricer) RPV01(c *cds.Analytic, yc yieldcurve.DiscountCurve, cc *CreditCurve, pt PriceType) float64 {
	ycTimes, ccTimes := yc.TimePoints(), cc.Times()

	pv := 0.0
	for i := 0; i < c.NumPeriods(); i++ {
		per := c.Period(i)
		pv += per.YearFrac * yc.DiscountFactor(per.PaymentTime) * cc.SurvivalProbability(per.EffEnd)
		if c.PayAccOnDefault() {
			pv += accrualOnDefault(per, c.ProtectionStart(), yc, cc, ycTimes, ccTimes)
		}
	}
	pv /= yc.DiscountFactor(c.CashSettleTime())
	if pt == Clean {
		pv -= c.Accrued()
	}
	return pv
}

// PV is the value to the protection buyer paying coupon.
func (p *Pricer) PV(c *cds.Analytic, coupon float64, yc yieldcurve.DiscountCurve, cc *CreditCurve, pt PriceType) float64 {
	return p.ProtectionLeg(c, yc, cc) - coupon*p.RPV01(c, yc, cc, pt)
}

// ParSpread is the coupon at which the clean PV is zero.
func (p *Pricer) ParSpread(c *cds.Analytic, yc yieldcurve.DiscountCurve, cc *CreditCurve) (float64, error) {
	rpv01 := p.RPV01(c, yc, cc, Clean)
	if !(rpv01 > 0) {
		return 0, fmt.Errorf("credit.ParSpread: %w: non-positive RPV01 %g for %s", ErrCalibration, rpv01, c.Label())
	}
	return p.ProtectionLeg(c, yc, cc) / rpv01, nil
}

// accrualOnDefault is the expected premium accrued from the period start to default,
// for defaults inside the period.
func accrualOnDefault(per cds.CouponPeriod, protStart float64, yc yieldcurve.DiscountCurve, cc *CreditCurve, ycTimes, ccTimes []float64) float64 {
	start := math.Max(per.EffStart, protStart)
	if start >= per.EffEnd {
		return 0
	}
	nodes := integrationNodes(start, per.EffEnd, ycTimes, ccTimes)

	t0 := nodes[0]
	ht0 := -math.Log(cc.SurvivalProbability(t0))
	rt0 := -math.Log(yc.DiscountFactor(t0))
	b0 := math.Exp(-ht0 - rt0)

	pv := 0.0
	for _, t1 := range nodes[1:] {
		ht1 := -math.Log(cc.SurvivalProbability(t1))
		rt1 := -math.Log(yc.DiscountFactor(t1))
		b1 := math.Exp(-ht1 - rt1)

		dt := t1 - t0
		dht := ht1 - ht0
		x := dht + rt1 - rt0
		tau := t0 - per.EffStart
		pv += dht * b0 * (tau*e1(x) + dt*e2(x))

		t0, ht0, rt0, b0 = t1, ht1, rt1, b1
	}
	return pv * per.YearFrac / (per.EffEnd - per.EffStart)
}

// e1 is (1-exp(-x))/x.
func e1(x float64) float64 {
	if x == 0 {
		return 1
	}
	return -math.Expm1(-x) / x
}

// e2 is (1-exp(-x)(1+x))/x^2.
func e2(x float64) float64 {
	if math.Abs(x) < 1e-2 {
		return 0.5 + x*(-1.0/3+x*(1.0/8+x*(-1.0/30+x*(1.0/144+x*(-1.0/840)))))
	}
	return (-math.Expm1(-x) - x*math.Exp(-x)) / (x * x)
}

// integrationNodes returns start, end and every knot strictly between them, sorted.
func integrationNodes(start, end float64, sets ...[]float64) []float64 {
	nodes := []float64{start, end}
	for _, set := range sets {
		for _, t := range set {
			if t > start && t < end {
				nodes = append(nodes, t)
			}
		}
	}
	sort.Float64s(nodes)

	out := nodes[:1]
	for _, t := range nodes[1:] {
		if t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}
