package main

import (
	"fmt"
	"time"

	"github.com/meenmo/creditcurve/cds"
	"github.com/meenmo/creditcurve/credit"
	"github.com/meenmo/creditcurve/shift"
	"github.com/meenmo/creditcurve/utils"
	"github.com/meenmo/creditcurve/yieldcurve"
)

func main() {
	tradeDate := utils.Date(2013, time.June, 12)

	yc, err := yieldcurve.NewISDACurve("USD",
		[]float64{0.0833, 0.25, 0.5, 1, 2, 3, 5, 7, 10, 30},
		[]float64{0.0031, 0.0036, 0.0049, 0.0068, 0.0062, 0.0081, 0.0127, 0.0168, 0.0214, 0.0282},
		0,
	)
	if err != nil {
		panic(err)
	}

	tenors := []cds.Tenor{
		cds.MustParseTenor("6M"),
		cds.MustParseTenor("1Y"),
		cds.MustParseTenor("3Y"),
		cds.MustParseTenor("5Y"),
		cds.MustParseTenor("7Y"),
		cds.MustParseTenor("10Y"),
	}
	spreads := []float64{0.0070, 0.0075, 0.0095, 0.0115, 0.0130, 0.0140}

	f := cds.NewFactory()
	targetCDS, err := f.MakeIMMCDSToMaturity(tradeDate, utils.Date(2017, time.September, 20), "target")
	if err != nil {
		panic(err)
	}
	target := credit.Target{Analytic: targetCDS, Coupon: 0.01, Notional: 10_000_000}

	hedger := credit.NewStandardHedge(f, nil, nil)
	notionals, cc, err := hedger.Notionals(tradeDate, tenors, spreads, target, yc)
	if err != nil {
		panic(err)
	}

	fmt.Println("Credit curve:")
	for i, t := range cc.Times() {
		fmt.Printf("  %-4s t=%.4f h=%.6f Q=%.6f\n", tenors[i], t, cc.Rates()[i], cc.SurvivalProbability(t))
	}

	fmt.Println("Hedge notionals:")
	for _, n := range notionals {
		fmt.Printf("  %-4s %.2f\n", n.Tenor, n.Notional)
	}

	pricer := credit.NewPricer()
	bumped, err := yc.WithParallelShift(0.0001, shift.Absolute)
	if err != nil {
		panic(err)
	}
	base := pricer.PV(targetCDS, target.Coupon, yc, cc, credit.Clean) * target.Notional
	shifted := pricer.PV(targetCDS, target.Coupon, bumped, cc, credit.Clean) * target.Notional
	fmt.Printf("Target PV: %.2f\n", base)
	fmt.Printf("Target PV (+1bp rates): %.2f\n", shifted)
}
