package cds

import (
	"fmt"
	"time"

	"github.com/meenmo/creditcurve/calendar"
	"github.com/meenmo/creditcurve/utils"
)

// Factory builds CDSs that share conventions. The zero value is not usable; call
// NewFactory.
type Factory struct {
	recovery        float64
	frequency       Frequency
	stub            StubType
	convention      calendar.BusinessDayConvention
	calendar        calendar.CalendarID
	accrualDayCount utils.DayCount
	curveDayCount   utils.DayCount
	payAccOnDefault bool
	protectStart    bool
	stepinDays      int
	cashSettleDays  int
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

func WithRecoveryRate(r float64) FactoryOption { return func(f *Factory) { f.recovery = r } }

func WithFrequency(freq Frequency) FactoryOption { return func(f *Factory) { f.frequency = freq } }

func WithStubType(s StubType) FactoryOption { return func(f *Factory) { f.stub = s } }

func WithBusinessDayConvention(c calendar.BusinessDayConvention) FactoryOption {
	return func(f *Factory) { f.convention = c }
}

func WithCalendar(cal calendar.CalendarID) FactoryOption {
	return func(f *Factory) { f.calendar = cal }
}

func WithAccrualDayCount(dc utils.DayCount) FactoryOption {
	return func(f *Factory) { f.accrualDayCount = dc }
}

func WithPayAccOnDefault(pay bool) FactoryOption { return func(f *Factory) { f.payAccOnDefault = pay } }

func WithProtectStart(protect bool) FactoryOption {
	return func(f *Factory) { f.protectStart = protect }
}

// WithStepinDays sets step-in as calendar days after the trade date.
func WithStepinDays(n int) FactoryOption { return func(f *Factory) { f.stepinDays = n } }

// WithCashSettleDays sets cash settlement as business days after the trade date.
func WithCashSettleDays(n int) FactoryOption { return func(f *Factory) { f.cashSettleDays = n } }

// NewFactory returns a factory for standard contracts: 40% recovery, quarterly ACT/360
// premium with a short front stub, Following adjustment, accrual paid on default,
// protection from the start of the day, step-in T+1 and cash settle T+3.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		recovery:        0.4,
		frequency:       Quarterly,
		stub:            FrontShort,
		convention:      calendar.Following,
		calendar:        calendar.WeekendsOnly,
		accrualDayCount: utils.Act360,
		curveDayCount:   utils.Act365F,
		payAccOnDefault: true,
		protectStart:    true,
		stepinDays:      1,
		cashSettleDays:  3,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RecoveryRate is the recovery assumed for every contract built here.
func (f *Factory) RecoveryRate() float64 { return f.recovery }

// MakeCDS builds a contract with explicit accrual start and maturity.
func (f *Factory) MakeCDS(tradeDate, accStart, maturity time.Time, label string) (*Analytic, error) {
	return NewAnalytic(Params{
		TradeDate:       tradeDate,
		StepinDate:      tradeDate.AddDate(0, 0, f.stepinDays),
		CashSettleDate:  calendar.AddBusinessDays(f.calendar, tradeDate, f.cashSettleDays),
		AccStartDate:    accStart,
		EndDate:         maturity,
		Frequency:       f.frequency,
		Stub:            f.stub,
		BusinessDay:     f.convention,
		Calendar:        f.calendar,
		AccrualDayCount: f.accrualDayCount,
		CurveDayCount:   f.curveDayCount,
		RecoveryRate:    f.recovery,
		PayAccOnDefault: f.payAccOnDefault,
		ProtectStart:    f.protectStart,
		Label:           label,
	})
}

// IMMAccrualStart is the adjusted IMM date on or before the trade date.
func (f *Factory) IMMAccrualStart(tradeDate time.Time) time.Time {
	return calendar.AdjustWith(f.calendar, f.convention, calendar.PrevIMMDate(tradeDate))
}

// IMMMaturity is the next IMM date after the trade date rolled forward by tenor.
func IMMMaturity(tradeDate time.Time, tenor Tenor) time.Time {
	return tenor.AddTo(calendar.NextIMMDate(tradeDate))
}

// MakeIMMCDS builds one standard contract per tenor, labelled with the tenor.
func (f *Factory) MakeIMMCDS(tradeDate time.Time, tenors []Tenor) ([]*Analytic, error) {
	if len(tenors) == 0 {
		return nil, fmt.Errorf("cds.MakeIMMCDS: %w: no tenors", ErrInvalidTenor)
	}
	accStart := f.IMMAccrualStart(tradeDate)
	out := make([]*Analytic, len(tenors))
	for i, tenor := range tenors {
		a, err := f.MakeCDS(tradeDate, accStart, IMMMaturity(tradeDate, tenor), tenor.String())
		if err != nil {
			return nil, fmt.Errorf("cds.MakeIMMCDS: %s: %w", tenor, err)
		}
		out[i] = a
	}
	return out, nil
}

// MakeIMMCDSToMaturity builds a standard contract with an explicit maturity, as used
// for a target trade that is not on a quoted tenor.
func (f *Factory) MakeIMMCDSToMaturity(tradeDate, maturity time.Time, label string) (*Analytic, error) {
	return f.MakeCDS(tradeDate, f.IMMAccrualStart(tradeDate), maturity, label)
}
