package cds

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/creditcurve/utils"
)

// Tenor is a term such as "6M" or "5Y".
type Tenor struct {
	N    int
	Unit byte // D, W, M or Y
}

// ParseTenor converts tenor strings like "1W", "3M", "10Y" into a Tenor.
func ParseTenor(s string) (Tenor, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Tenor{}, fmt.Errorf("ParseTenor: %w: %q", ErrInvalidTenor, s)
	}
	unit := s[len(s)-1]
	switch unit {
	case 'D', 'W', 'M', 'Y':
	default:
		return Tenor{}, fmt.Errorf("ParseTenor: %w: unknown unit in %q", ErrInvalidTenor, s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return Tenor{}, fmt.Errorf("ParseTenor: %w: %q", ErrInvalidTenor, s)
	}
	return Tenor{N: n, Unit: unit}, nil
}

// MustParseTenor is ParseTenor for literals; it panics on bad input.
func MustParseTenor(s string) Tenor {
	t, err := ParseTenor(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTenors parses each label in order.
func ParseTenors(labels []string) ([]Tenor, error) {
	out := make([]Tenor, len(labels))
	for i, l := range labels {
		t, err := ParseTenor(l)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func (t Tenor) String() string {
	return strconv.Itoa(t.N) + string(t.Unit)
}

// Months returns the tenor in months, or 0 for day and week tenors.
func (t Tenor) Months() int {
	switch t.Unit {
	case 'M':
		return t.N
	case 'Y':
		return 12 * t.N
	default:
		return 0
	}
}

// Years is the approximate length in years, used for sorting and display.
func (t Tenor) Years() float64 {
	switch t.Unit {
	case 'D':
		return float64(t.N) / 365.0
	case 'W':
		return float64(t.N) * 7.0 / 365.0
	case 'M':
		return float64(t.N) / 12.0
	default:
		return float64(t.N)
	}
}

// AddTo moves d forward by the tenor. Month and year tenors keep the day of month
// where possible, like EDATE.
func (t Tenor) AddTo(d time.Time) time.Time {
	switch t.Unit {
	case 'D':
		return d.AddDate(0, 0, t.N)
	case 'W':
		return d.AddDate(0, 0, 7*t.N)
	default:
		return utils.AddMonth(d, t.Months())
	}
}

// Frequency is a coupon frequency expressed in months per period.
type Frequency int

const (
	Monthly    Frequency = 1
	Quarterly  Frequency = 3
	SemiAnnual Frequency = 6
	Annual     Frequency = 12
)

// ParseFrequency accepts names ("QUARTERLY"), codes ("Q") and tenors ("3M").
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M", "MONTHLY", "1M":
		return Monthly, nil
	case "Q", "QUARTERLY", "3M":
		return Quarterly, nil
	case "S", "SEMIANNUAL", "SEMI-ANNUAL", "6M":
		return SemiAnnual, nil
	case "A", "ANNUAL", "12M", "1Y":
		return Annual, nil
	default:
		return 0, fmt.Errorf("ParseFrequency: %w: unknown coupon frequency %q", ErrInvalidAnalytic, s)
	}
}

func (f Frequency) String() string {
	switch f {
	case Monthly:
		return "MONTHLY"
	case Quarterly:
		return "QUARTERLY"
	case SemiAnnual:
		return "SEMIANNUAL"
	case Annual:
		return "ANNUAL"
	default:
		return fmt.Sprintf("%dM", int(f))
	}
}
