package cds

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/creditcurve/calendar"
	"github.com/meenmo/creditcurve/utils"
)

// StubType places the irregular period of a schedule.
type StubType string

const (
	FrontShort StubType = "FRONTSHORT"
	FrontLong  StubType = "FRONTLONG"
	BackShort  StubType = "BACKSHORT"
	BackLong   StubType = "BACKLONG"
)

// ParseStubType accepts "FRONTSHORT", "front_short" and similar spellings.
func ParseStubType(s string) (StubType, error) {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToUpper(strings.TrimSpace(s)))
	switch StubType(norm) {
	case FrontShort, FrontLong, BackShort, BackLong:
		return StubType(norm), nil
	default:
		return "", fmt.Errorf("ParseStubType: %w: unknown stub type %q", ErrInvalidAnalytic, s)
	}
}

func (s StubType) front() bool { return s == FrontShort || s == FrontLong }

func (s StubType) long() bool { return s == FrontLong || s == BackLong }

// Period is one accrual period of a premium leg.
//
// AccrualStart and AccrualEnd are adjusted, except that the last period ends on the
// unadjusted maturity. PaymentDate is the adjusted accrual end.
type Period struct {
	AccrualStart time.Time
	AccrualEnd   time.Time
	PaymentDate  time.Time
}

// GenerateSchedule builds the accrual periods from start to maturity.
func GenerateSchedule(start, maturity time.Time, freq Frequency, stub StubType, cal calendar.CalendarID, conv calendar.BusinessDayConvention) ([]Period, error) {
	if !maturity.After(start) {
		return nil, fmt.Errorf("GenerateSchedule: %w: maturity %s is not after start %s",
			ErrInvalidAnalytic, maturity.Format(utils.DateLayout), start.Format(utils.DateLayout))
	}
	if freq <= 0 {
		return nil, fmt.Errorf("GenerateSchedule: %w: coupon frequency must be positive", ErrInvalidAnalytic)
	}
	switch stub {
	case FrontShort, FrontLong, BackShort, BackLong:
	default:
		return nil, fmt.Errorf("GenerateSchedule: %w: unknown stub type %q", ErrInvalidAnalytic, stub)
	}

	dates := unadjustedDates(start, maturity, int(freq), stub)

	periods := make([]Period, len(dates)-1)
	for i := range periods {
		accStart := calendar.AdjustWith(cal, conv, dates[i])
		accEnd := calendar.AdjustWith(cal, conv, dates[i+1])
		pay := accEnd
		if i == len(periods)-1 {
			accEnd = dates[i+1]
		}
		periods[i] = Period{AccrualStart: accStart, AccrualEnd: accEnd, PaymentDate: pay}
	}
	return periods, nil
}

// unadjustedDates returns start, the roll dates and maturity in order. Roll dates run
// backward from maturity for front stubs and forward from start for back stubs; a long
// stub absorbs the neighbouring regular period.
func unadjustedDates(start, maturity time.Time, months int, stub StubType) []time.Time {
	var rolls []time.Time
	stubbed := false
	if stub.front() {
		k := 1
		for {
			d := utils.AddMonth(maturity, -k*months)
			if !d.After(start) {
				stubbed = !d.Equal(start)
				break
			}
			rolls = append(rolls, d)
			k++
		}
		for i, j := 0, len(rolls)-1; i < j; i, j = i+1, j-1 {
			rolls[i], rolls[j] = rolls[j], rolls[i]
		}
		if stubbed && stub.long() && len(rolls) > 0 {
			rolls = rolls[1:]
		}
	} else {
		k := 1
		for {
			d := utils.AddMonth(start, k*months)
			if !d.Before(maturity) {
				stubbed = !d.Equal(maturity)
				break
			}
			rolls = append(rolls, d)
			k++
		}
		if stubbed && stub.long() && len(rolls) > 0 {
			rolls = rolls[:len(rolls)-1]
		}
	}

	dates := make([]time.Time, 0, len(rolls)+2)
	dates = append(dates, start)
	dates = append(dates, rolls...)
	return append(dates, maturity)
}
