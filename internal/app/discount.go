package app

import (
	"fmt"
	"text/tabwriter"
)

// Discount prints zero rates and discount factors of the snapshot yield curve.
func (a *App) Discount(opts DiscountOptions) error {
	m, err := a.loadMarket(opts.MarketPath)
	if err != nil {
		return err
	}
	times := opts.Times
	if len(times) == 0 {
		times = a.Config.Output.DiscountTimes
	}

	places := a.Config.Output.Decimals
	writer := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Time\tZero (%s)\tDiscount\n", m.yield.Name())
	for _, t := range times {
		if t < 0 {
			return fmt.Errorf("time %g is negative", t)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n",
			formatFloat(t, places),
			formatFloat(m.yield.InterestRate(t), places),
			formatFloat(m.yield.DiscountFactor(t), places),
		)
	}
	return writer.Flush()
}
