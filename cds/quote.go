package cds

// Quote is a market quote for a calibration instrument: ParSpread or PointsUpfront.
type Quote interface {
	isQuote()
}

// ParSpread quotes the coupon at which the contract has zero value.
type ParSpread struct {
	Spread float64
}

// PointsUpfront quotes a standard coupon plus an upfront payment, both per unit notional.
type PointsUpfront struct {
	Coupon  float64
	Upfront float64
}

func (ParSpread) isQuote()     {}
func (PointsUpfront) isQuote() {}

// ParSpreads wraps plain spreads as quotes.
func ParSpreads(spreads []float64) []Quote {
	out := make([]Quote, len(spreads))
	for i, s := range spreads {
		out[i] = ParSpread{Spread: s}
	}
	return out
}
