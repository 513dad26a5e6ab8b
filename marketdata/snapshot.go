// Package marketdata loads the market snapshot used by the command-line tools: a
// trade date, CDS conventions, an ISDA yield curve, credit quotes and a target trade.
package marketdata

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/creditcurve/calendar"
	"github.com/meenmo/creditcurve/cds"
	"github.com/meenmo/creditcurve/credit"
	"github.com/meenmo/creditcurve/utils"
	"github.com/meenmo/creditcurve/yieldcurve"
)

// ErrInvalidSnapshot is returned for snapshots that fail validation.
var ErrInvalidSnapshot = errors.New("invalid market snapshot")

const bp = 1e-4

// Snapshot mirrors the YAML file layout. Spreads and coupons are in basis points,
// upfronts per unit notional.
type Snapshot struct {
	TradeDate   string         `yaml:"trade_date"`
	Calendar    CalendarSpec   `yaml:"calendar"`
	Conventions Conventions    `yaml:"conventions"`
	YieldCurve  YieldCurveSpec `yaml:"yield_curve"`
	Quotes      []Quote        `yaml:"quotes"`
	Target      TargetSpec     `yaml:"target"`
}

type CalendarSpec struct {
	ID       string   `yaml:"id"`
	Holidays []string `yaml:"holidays"`
}

// Conventions override the standard contract defaults. Empty fields keep them.
type Conventions struct {
	Recovery        *float64 `yaml:"recovery"`
	Frequency       string   `yaml:"frequency"`
	Stub            string   `yaml:"stub"`
	BusinessDay     string   `yaml:"business_day"`
	AccrualDayCount string   `yaml:"accrual_day_count"`
}

type YieldCurveSpec struct {
	Name   string    `yaml:"name"`
	Offset float64   `yaml:"offset"`
	Times  []float64 `yaml:"times"`
	Rates  []float64 `yaml:"rates"`
}

// Quote is a par spread, or a running coupon plus upfront when Upfront is set.
type Quote struct {
	Tenor    string   `yaml:"tenor"`
	SpreadBP float64  `yaml:"spread_bp"`
	CouponBP float64  `yaml:"coupon_bp"`
	Upfront  *float64 `yaml:"upfront"`
}

type TargetSpec struct {
	Maturity string  `yaml:"maturity"`
	CouponBP float64 `yaml:"coupon_bp"`
	Notional float64 `yaml:"notional"`
}

// Load reads and validates a snapshot file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML snapshot.
func Parse(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the fields every command depends on.
func (s *Snapshot) Validate() error {
	if _, err := s.Trade(); err != nil {
		return err
	}
	if len(s.YieldCurve.Times) == 0 || len(s.YieldCurve.Times) != len(s.YieldCurve.Rates) {
		return fmt.Errorf("%w: yield_curve needs matching, non-empty times and rates", ErrInvalidSnapshot)
	}
	if len(s.Quotes) == 0 {
		return fmt.Errorf("%w: no quotes", ErrInvalidSnapshot)
	}
	for i, q := range s.Quotes {
		if _, err := cds.ParseTenor(q.Tenor); err != nil {
			return fmt.Errorf("%w: quote %d: %w", ErrInvalidSnapshot, i, err)
		}
	}
	for _, h := range s.Calendar.Holidays {
		if _, err := utils.ParseDate(h); err != nil {
			return fmt.Errorf("%w: holiday: %w", ErrInvalidSnapshot, err)
		}
	}
	if r := s.Conventions.Recovery; r != nil && (*r < 0 || *r >= 1) {
		return fmt.Errorf("%w: recovery %g outside [0,1)", ErrInvalidSnapshot, *r)
	}
	return nil
}

// Trade parses the trade date.
func (s *Snapshot) Trade() (time.Time, error) {
	d, err := utils.ParseDate(s.TradeDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: trade_date: %w", ErrInvalidSnapshot, err)
	}
	return d, nil
}

// CalendarID registers the snapshot's holidays and returns its calendar.
func (s *Snapshot) CalendarID() (calendar.CalendarID, error) {
	id := calendar.WeekendsOnly
	if name := strings.TrimSpace(s.Calendar.ID); name != "" {
		id = calendar.CalendarID(strings.ToUpper(name))
	}
	if len(s.Calendar.Holidays) == 0 {
		return id, nil
	}
	dates := make([]time.Time, len(s.Calendar.Holidays))
	for i, h := range s.Calendar.Holidays {
		d, err := utils.ParseDate(h)
		if err != nil {
			return "", fmt.Errorf("%w: holiday: %w", ErrInvalidSnapshot, err)
		}
		dates[i] = d
	}
	calendar.RegisterHolidays(id, dates)
	return id, nil
}

// Factory builds a contract factory from the snapshot conventions.
func (s *Snapshot) Factory() (*cds.Factory, error) {
	cal, err := s.CalendarID()
	if err != nil {
		return nil, err
	}
	opts := []cds.FactoryOption{cds.WithCalendar(cal)}

	c := s.Conventions
	if c.Recovery != nil {
		opts = append(opts, cds.WithRecoveryRate(*c.Recovery))
	}
	if c.Frequency != "" {
		freq, err := cds.ParseFrequency(c.Frequency)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		opts = append(opts, cds.WithFrequency(freq))
	}
	if c.Stub != "" {
		stub, err := cds.ParseStubType(c.Stub)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		opts = append(opts, cds.WithStubType(stub))
	}
	if c.BusinessDay != "" {
		conv, err := calendar.ParseBusinessDayConvention(c.BusinessDay)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		opts = append(opts, cds.WithBusinessDayConvention(conv))
	}
	if c.AccrualDayCount != "" {
		dc, ok := utils.ParseDayCount(strings.ToUpper(c.AccrualDayCount))
		if !ok {
			return nil, fmt.Errorf("%w: unknown day count %q", ErrInvalidSnapshot, c.AccrualDayCount)
		}
		opts = append(opts, cds.WithAccrualDayCount(dc))
	}
	return cds.NewFactory(opts...), nil
}

// DiscountCurve builds the ISDA yield curve.
func (s *Snapshot) DiscountCurve() (*yieldcurve.ISDACurve, error) {
	y := s.YieldCurve
	name := y.Name
	if name == "" {
		name = "discount"
	}
	return yieldcurve.NewISDACurve(name, y.Times, y.Rates, y.Offset)
}

// Tenors returns the quote tenors in file order.
func (s *Snapshot) Tenors() ([]cds.Tenor, error) {
	labels := make([]string, len(s.Quotes))
	for i, q := range s.Quotes {
		labels[i] = q.Tenor
	}
	return cds.ParseTenors(labels)
}

// Spreads returns the par spreads as decimals.
func (s *Snapshot) Spreads() []float64 {
	out := make([]float64, len(s.Quotes))
	for i, q := range s.Quotes {
		out[i] = q.SpreadBP * bp
	}
	return out
}

// CDSQuotes converts every quote, using PointsUpfront where an upfront is given.
func (s *Snapshot) CDSQuotes() []cds.Quote {
	out := make([]cds.Quote, len(s.Quotes))
	for i, q := range s.Quotes {
		if q.Upfront != nil {
			out[i] = cds.PointsUpfront{Coupon: q.CouponBP * bp, Upfront: *q.Upfront}
			continue
		}
		out[i] = cds.ParSpread{Spread: q.SpreadBP * bp}
	}
	return out
}

// HasUpfront reports whether any quote is points upfront.
func (s *Snapshot) HasUpfront() bool {
	for _, q := range s.Quotes {
		if q.Upfront != nil {
			return true
		}
	}
	return false
}

// TargetTrade builds the target contract with f.
func (s *Snapshot) TargetTrade(f *cds.Factory) (credit.Target, error) {
	trade, err := s.Trade()
	if err != nil {
		return credit.Target{}, err
	}
	maturity, err := utils.ParseDate(s.Target.Maturity)
	if err != nil {
		return credit.Target{}, fmt.Errorf("%w: target maturity: %w", ErrInvalidSnapshot, err)
	}
	a, err := f.MakeIMMCDSToMaturity(trade, maturity, "target")
	if err != nil {
		return credit.Target{}, fmt.Errorf("%w: target: %w", ErrInvalidSnapshot, err)
	}
	return credit.Target{Analytic: a, Coupon: s.Target.CouponBP * bp, Notional: s.Target.Notional}, nil
}
