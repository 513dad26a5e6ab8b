package app

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/meenmo/creditcurve/cds"
	"github.com/meenmo/creditcurve/config"
	"github.com/meenmo/creditcurve/credit"
	"github.com/meenmo/creditcurve/marketdata"
	"github.com/meenmo/creditcurve/yieldcurve"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Out    io.Writer
}

// NewApp constructs a new application handle writing results to stdout.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger(), Out: os.Stdout}
}

// CalibrateOptions configure the calibrate command.
type CalibrateOptions struct {
	MarketPath string
	JSON       bool
}

// HedgeOptions configure the hedge command.
type HedgeOptions struct {
	MarketPath string
}

// DiscountOptions configure the discount command.
type DiscountOptions struct {
	MarketPath string
	Times      []float64
}

// ShiftOptions configure the shift command. Exactly one of Parallel, Buckets or Points is used.
type ShiftOptions struct {
	MarketPath string
	Type       string
	Parallel   *float64
	Buckets    []string
	Points     []string
}

// PlotOptions configure the plot command.
type PlotOptions struct {
	MarketPath string
	PNGPath    string
}

// market is a loaded snapshot with everything the commands build from it.
type market struct {
	snapshot *marketdata.Snapshot
	factory  *cds.Factory
	yield    *yieldcurve.ISDACurve
	buckets  []*cds.Analytic
}

func (a *App) loadMarket(path string) (*market, error) {
	if path == "" {
		return nil, errors.New("--market is required")
	}
	snap, err := marketdata.Load(path)
	if err != nil {
		return nil, err
	}
	f, err := snap.Factory()
	if err != nil {
		return nil, err
	}
	yc, err := snap.DiscountCurve()
	if err != nil {
		return nil, err
	}
	trade, err := snap.Trade()
	if err != nil {
		return nil, err
	}
	tenors, err := snap.Tenors()
	if err != nil {
		return nil, err
	}
	buckets, err := f.MakeIMMCDS(trade, tenors)
	if err != nil {
		return nil, err
	}
	a.Logger.Debug().
		Str("market", path).
		Str("trade_date", snap.TradeDate).
		Str("yield_curve", yc.Name()).
		Int("quotes", len(buckets)).
		Msg("loaded market snapshot")
	return &market{snapshot: snap, factory: f, yield: yc, buckets: buckets}, nil
}

func (a *App) newCalibrator() (*credit.Calibrator, error) {
	rf, err := a.Config.RootFinder()
	if err != nil {
		return nil, err
	}
	return credit.NewCalibrator(
		credit.WithRootFinder(rf),
		credit.WithConfig(a.Config.CalibrationConfig()),
		credit.WithLogger(a.Logger),
	), nil
}

func (a *App) calibrate(m *market) (*credit.CreditCurve, error) {
	cal, err := a.newCalibrator()
	if err != nil {
		return nil, err
	}
	cc, err := cal.CalibrateQuotes(m.buckets, m.snapshot.CDSQuotes(), m.yield)
	if err != nil {
		return nil, err
	}
	a.Logger.Info().Int("knots", cc.NumKnots()).Str("trade_date", m.snapshot.TradeDate).Msg("calibrated credit curve")
	return cc, nil
}

func formatFloat(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
