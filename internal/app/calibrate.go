package app

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/meenmo/creditcurve/utils"
)

// CurvePoint is one calibrated knot as printed by the calibrate command.
type CurvePoint struct {
	Tenor      string  `json:"tenor"`
	Maturity   string  `json:"maturity"`
	Time       float64 `json:"time"`
	HazardRate float64 `json:"hazard_rate"`
	Survival   float64 `json:"survival"`
}

// Calibrate bootstraps the credit curve from the snapshot quotes and prints its knots.
func (a *App) Calibrate(opts CalibrateOptions) error {
	m, err := a.loadMarket(opts.MarketPath)
	if err != nil {
		return err
	}
	cc, err := a.calibrate(m)
	if err != nil {
		return err
	}

	times, rates := cc.Times(), cc.Rates()
	points := make([]CurvePoint, len(times))
	for i, b := range m.buckets {
		points[i] = CurvePoint{
			Tenor:      b.Label(),
			Maturity:   b.Maturity().Format(utils.DateLayout),
			Time:       times[i],
			HazardRate: rates[i],
			Survival:   cc.SurvivalProbability(times[i]),
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	}

	places := a.Config.Output.Decimals
	writer := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Tenor\tMaturity\tTime\tHazard\tSurvival")
	for _, p := range points {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			p.Tenor,
			p.Maturity,
			formatFloat(p.Time, places),
			formatFloat(p.HazardRate, places),
			formatFloat(p.Survival, places),
		)
	}
	return writer.Flush()
}
