// Package cds describes credit default swaps in the form the ISDA standard model
// prices them: calendar dates are resolved once into curve-time quantities.
package cds

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/meenmo/creditcurve/calendar"
	"github.com/meenmo/creditcurve/utils"
)

var (
	// ErrInvalidAnalytic is returned when contract terms are inconsistent.
	ErrInvalidAnalytic = errors.New("invalid CDS analytic")
	// ErrInvalidTenor is returned for malformed tenor labels.
	ErrInvalidTenor = errors.New("invalid tenor")
)

// Params are the contract terms of a single CDS.
type Params struct {
	TradeDate      time.Time
	StepinDate     time.Time // protection and accrual are owed from here, usually T+1
	CashSettleDate time.Time // valuation date of the upfront, usually T+3 business days
	AccStartDate   time.Time
	EndDate        time.Time // unadjusted maturity

	Frequency       Frequency
	Stub            StubType
	BusinessDay     calendar.BusinessDayConvention
	Calendar        calendar.CalendarID
	AccrualDayCount utils.DayCount // premium leg, ACT/360 when empty
	CurveDayCount   utils.DayCount // curve time, ACT/365F when empty

	RecoveryRate    float64
	PayAccOnDefault bool
	// ProtectStart protects from the start of the day, so every effective date moves
	// back one day and the final accrual runs to maturity inclusive.
	ProtectStart bool

	Label string
}

// CouponPeriod is a premium leg period with its dates converted to curve time.
type CouponPeriod struct {
	Period
	PaymentTime float64
	EffStart    float64
	EffEnd      float64
	YearFrac    float64
}

// Analytic is an immutable CDS expressed in curve time measured from the trade date.
type Analytic struct {
	label     string
	tradeDate time.Time
	maturity  time.Time

	periods         []CouponPeriod
	protectionStart float64
	protectionEnd   float64
	stepinTime      float64
	cashSettleTime  float64
	accrued         float64
	accruedDays     int
	recovery        float64
	payAccOnDefault bool
}

// NewAnalytic validates p and resolves its schedule.
func NewAnalytic(p Params) (*Analytic, error) {
	if p.TradeDate.IsZero() || p.StepinDate.IsZero() || p.CashSettleDate.IsZero() || p.AccStartDate.IsZero() || p.EndDate.IsZero() {
		return nil, fmt.Errorf("cds.NewAnalytic: %w: all dates are required", ErrInvalidAnalytic)
	}
	if p.StepinDate.Before(p.TradeDate) || p.CashSettleDate.Before(p.TradeDate) {
		return nil, fmt.Errorf("cds.NewAnalytic: %w: step-in and cash settle must not precede the trade date", ErrInvalidAnalytic)
	}
	if !p.EndDate.After(p.StepinDate) {
		return nil, fmt.Errorf("cds.NewAnalytic: %w: maturity %s is not after step-in %s",
			ErrInvalidAnalytic, p.EndDate.Format(utils.DateLayout), p.StepinDate.Format(utils.DateLayout))
	}
	if math.IsNaN(p.RecoveryRate) || p.RecoveryRate < 0 || p.RecoveryRate >= 1 {
		return nil, fmt.Errorf("cds.NewAnalytic: %w: recovery rate %g outside [0, 1)", ErrInvalidAnalytic, p.RecoveryRate)
	}
	accDC := p.AccrualDayCount
	if accDC == "" {
		accDC = utils.Act360
	}
	curveDC := p.CurveDayCount
	if curveDC == "" {
		curveDC = utils.Act365F
	}

	schedule, err := GenerateSchedule(p.AccStartDate, p.EndDate, p.Frequency, p.Stub, p.Calendar, p.BusinessDay)
	if err != nil {
		return nil, fmt.Errorf("cds.NewAnalytic: %w", err)
	}
	// periods that ended before step-in carry no cash flows
	first := 0
	for first < len(schedule)-1 && !schedule[first].AccrualEnd.After(p.StepinDate) {
		first++
	}
	schedule = schedule[first:]

	toTime := func(d time.Time) float64 {
		return utils.YearFraction(p.TradeDate, d, curveDC)
	}
	offset := 0
	if p.ProtectStart {
		offset = 1
	}

	a := &Analytic{
		label:           p.Label,
		tradeDate:       p.TradeDate,
		maturity:        p.EndDate,
		periods:         make([]CouponPeriod, len(schedule)),
		protectionEnd:   toTime(p.EndDate),
		stepinTime:      toTime(p.StepinDate),
		cashSettleTime:  toTime(p.CashSettleDate),
		recovery:        p.RecoveryRate,
		payAccOnDefault: p.PayAccOnDefault,
	}

	for i, per := range schedule {
		accEnd := per.AccrualEnd
		if i == len(schedule)-1 && p.ProtectStart {
			accEnd = accEnd.AddDate(0, 0, 1)
		}
		a.periods[i] = CouponPeriod{
			Period:      per,
			PaymentTime: toTime(per.PaymentDate),
			EffStart:    toTime(per.AccrualStart.AddDate(0, 0, -offset)),
			EffEnd:      toTime(accEnd.AddDate(0, 0, -offset)),
			YearFrac:    utils.YearFraction(per.AccrualStart, accEnd, accDC),
		}
	}

	protStart := p.AccStartDate
	if p.StepinDate.After(protStart) {
		protStart = p.StepinDate
	}
	a.protectionStart = toTime(protStart.AddDate(0, 0, -offset))

	if accStart := schedule[0].AccrualStart; p.StepinDate.After(accStart) {
		a.accrued = utils.YearFraction(accStart, p.StepinDate, accDC)
		a.accruedDays = int(math.Round(utils.Days(accStart, p.StepinDate)))
	}
	return a, nil
}

func (a *Analytic) Label() string { return a.label }

func (a *Analytic) TradeDate() time.Time { return a.tradeDate }

// Maturity is the unadjusted end date.
func (a *Analytic) Maturity() time.Time { return a.maturity }

// Periods returns a copy of the remaining coupon periods.
func (a *Analytic) Periods() []CouponPeriod {
	out := make([]CouponPeriod, len(a.periods))
	copy(out, a.periods)
	return out
}

func (a *Analytic) NumPeriods() int { return len(a.periods) }

// Period returns coupon period i without copying the schedule.
func (a *Analytic) Period(i int) CouponPeriod { return a.periods[i] }

func (a *Analytic) ProtectionStart() float64 { return a.protectionStart }

// ProtectionEnd is the maturity in curve time; calibrated credit curves put their
// knots here.
func (a *Analytic) ProtectionEnd() float64 { return a.protectionEnd }

func (a *Analytic) StepinTime() float64 { return a.stepinTime }

func (a *Analytic) CashSettleTime() float64 { return a.cashSettleTime }

// Accrued is the accrual year fraction from the period start to step-in, per unit coupon.
func (a *Analytic) Accrued() float64 { return a.accrued }

func (a *Analytic) AccruedDays() int { return a.accruedDays }

func (a *Analytic) RecoveryRate() float64 { return a.recovery }

// LGD is the loss given default, 1 - recovery.
func (a *Analytic) LGD() float64 { return 1 - a.recovery }

func (a *Analytic) PayAccOnDefault() bool { return a.payAccOnDefault }

// WithRecoveryRate returns a copy with a different recovery rate.
func (a *Analytic) WithRecoveryRate(r float64) (*Analytic, error) {
	if math.IsNaN(r) || r < 0 || r >= 1 {
		return nil, fmt.Errorf("cds.WithRecoveryRate: %w: recovery rate %g outside [0, 1)", ErrInvalidAnalytic, r)
	}
	out := *a
	out.periods = a.Periods()
	out.recovery = r
	return &out, nil
}
