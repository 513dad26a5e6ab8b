package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/meenmo/creditcurve/credit"
	"github.com/meenmo/creditcurve/utils"
)

// HedgeReport summarises the hedge of the snapshot's target trade.
type HedgeReport struct {
	Notionals []credit.HedgeNotional
	TargetPV  float64
	IR01      float64
}

// Hedge calibrates the credit curve, then prints the bucket notionals that neutralise
// the target's hazard-rate sensitivities along with its PV and IR01.
func (a *App) Hedge(opts HedgeOptions) error {
	report, err := a.hedge(opts)
	if err != nil {
		return err
	}

	places := a.Config.Output.NotionalPlaces
	writer := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Tenor\tNotional")
	total := decimal.Zero
	for _, n := range report.Notionals {
		d := decimal.NewFromFloat(n.Notional).Round(places)
		total = total.Add(d)
		fmt.Fprintf(writer, "%s\t%s\n", n.Tenor, d.StringFixed(places))
	}
	fmt.Fprintf(writer, "Total\t%s\n", total.StringFixed(places))
	fmt.Fprintf(writer, "Target PV\t%s\n", formatFloat(report.TargetPV, places))
	fmt.Fprintf(writer, "IR01\t%s\n", formatFloat(report.IR01, places))
	return writer.Flush()
}

func (a *App) hedge(opts HedgeOptions) (*HedgeReport, error) {
	m, err := a.loadMarket(opts.MarketPath)
	if err != nil {
		return nil, err
	}
	target, err := m.snapshot.TargetTrade(m.factory)
	if err != nil {
		return nil, err
	}
	cc, err := a.calibrate(m)
	if err != nil {
		return nil, err
	}

	calc := credit.NewHedgeRatioCalculator(
		credit.WithBump(a.Config.Hedge.Bump),
		credit.WithHedgeLogger(a.Logger),
	)
	coupons := make([]float64, len(m.buckets))
	for i := range coupons {
		coupons[i] = target.Coupon
	}
	notionals, err := calc.HedgeNotionals(target, cc, m.yield, m.buckets, coupons)
	if err != nil {
		return nil, err
	}

	pricer := credit.NewPricer()
	ir01, err := credit.IR01(pricer, target, m.yield, cc, a.Config.Hedge.IR01Bump)
	if err != nil {
		return nil, err
	}
	pv := pricer.PV(target.Analytic, target.Coupon, m.yield, cc, credit.Clean) * target.Notional

	a.Logger.Info().
		Str("target", target.Analytic.Maturity().Format(utils.DateLayout)).
		Float64("notional", target.Notional).
		Float64("pv", pv).
		Msg("computed hedge")
	return &HedgeReport{Notionals: notionals, TargetPV: pv, IR01: ir01}, nil
}
