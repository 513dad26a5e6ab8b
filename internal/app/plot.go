package app

import (
	"errors"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/meenmo/creditcurve/credit"
)

const plotSamples = 200

// Plot renders the calibrated hazard rate and survival probability as a PNG.
func (a *App) Plot(opts PlotOptions) error {
	if opts.PNGPath == "" {
		return errors.New("--png must be provided")
	}
	m, err := a.loadMarket(opts.MarketPath)
	if err != nil {
		return err
	}
	cc, err := a.calibrate(m)
	if err != nil {
		return err
	}
	if err := a.writeCurvePNG(opts.PNGPath, cc); err != nil {
		return err
	}
	a.Logger.Info().Str("png", opts.PNGPath).Msg("wrote credit curve chart")
	return nil
}

func (a *App) writeCurvePNG(path string, cc *credit.CreditCurve) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	knots := cc.Times()
	end := knots[len(knots)-1] * 1.1
	x := make([]float64, plotSamples+1)
	hazard := make([]float64, len(x))
	survival := make([]float64, len(x))
	for i := range x {
		t := end * float64(i) / plotSamples
		x[i] = t
		hazard[i] = cc.HazardRate(t)
		survival[i] = cc.SurvivalProbability(t)
	}

	rateFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.4f")
	}
	graph := chart.Chart{
		Width:  a.Config.Output.ChartWidth,
		Height: a.Config.Output.ChartHeight,
		XAxis: chart.XAxis{
			Name: "Time (years)",
		},
		YAxis: chart.YAxis{
			Name:           "Hazard rate",
			ValueFormatter: rateFormatter,
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Survival",
			ValueFormatter: rateFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Hazard",
				XValues: x,
				YValues: hazard,
			},
			chart.ContinuousSeries{
				Name:    "Survival",
				XValues: x,
				YValues: survival,
				YAxis:   chart.YAxisSecondary,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
