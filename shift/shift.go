// Package shift builds perturbed copies of curves for finite-difference risk.
//
// Every function returns a new curve; the input curve is never modified.
package shift

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/meenmo/creditcurve/curve"
)

// ErrShift is returned for malformed shift requests.
var ErrShift = errors.New("invalid curve shift")

// Type says whether amounts are added to the curve or scale it.
type Type string

const (
	// Absolute adds the amount: 0.0001 moves the curve up one basis point.
	Absolute Type = "ABSOLUTE"
	// Relative multiplies by (1 + amount): 0.01 moves the curve up 1% of its value.
	Relative Type = "RELATIVE"
)

// ParseType accepts "absolute"/"abs" and "relative"/"rel" in any case.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ABSOLUTE", "ABS":
		return Absolute, nil
	case "RELATIVE", "REL":
		return Relative, nil
	default:
		return "", fmt.Errorf("%w: unknown shift type %q", ErrShift, s)
	}
}

func (st Type) validate() error {
	if st != Absolute && st != Relative {
		return fmt.Errorf("%w: unknown shift type %q", ErrShift, st)
	}
	return nil
}

// neutral is the spread value that leaves the curve unchanged.
func (st Type) neutral() float64 {
	if st == Relative {
		return 1
	}
	return 0
}

// level converts a shift amount into the spread value applied to the curve.
func (st Type) level(amount float64) float64 {
	if st == Relative {
		return 1 + amount
	}
	return amount
}

func (st Type) op() curve.SpreadOp {
	if st == Relative {
		return curve.SpreadMultiply
	}
	return curve.SpreadAdd
}

// Spec is one of Parallel, Bucketed or Points.
type Spec interface {
	isSpec()
}

// Parallel moves the whole curve by Amount.
type Parallel struct {
	Amount float64
}

// Bucket is the half-open time interval [Start, End) in years.
type Bucket struct {
	Start float64
	End   float64
}

// Bucketed applies Amounts[i] as a step over Buckets[i]. Buckets must be sorted and
// must not overlap; the curve is unchanged outside them.
type Bucketed struct {
	Buckets []Bucket
	Amounts []float64
}

// Points applies Amounts[i] at Times[i] only.
type Points struct {
	Times   []float64
	Amounts []float64
}

func (Parallel) isSpec() {}
func (Bucketed) isSpec() {}
func (Points) isSpec()   {}

// Apply dispatches spec to the matching shift function.
func Apply(c curve.Curve, spec Spec, st Type) (curve.Curve, error) {
	switch s := spec.(type) {
	case Parallel:
		return ParallelShift(c, s.Amount, st)
	case Bucketed:
		return BucketedShift(c, s.Buckets, s.Amounts, st)
	case Points:
		return PointShift(c, s.Times, s.Amounts, st)
	case nil:
		return nil, fmt.Errorf("shift.Apply: %w: nil spec", ErrShift)
	default:
		return nil, fmt.Errorf("shift.Apply: %w: unsupported spec %T", ErrShift, spec)
	}
}

// ParallelShift returns c plus amount (Absolute) or c times (1+amount) (Relative).
func ParallelShift(c curve.Curve, amount float64, st Type) (curve.Curve, error) {
	if err := checkInputs(c, st); err != nil {
		return nil, fmt.Errorf("shift.ParallelShift: %w", err)
	}
	if !finite(amount) {
		return nil, fmt.Errorf("shift.ParallelShift: %w: amount is not finite", ErrShift)
	}
	out, err := curve.NewSpread(st.op(), c, curve.NewConstant(st.level(amount)))
	if err != nil {
		return nil, fmt.Errorf("shift.ParallelShift: %w", err)
	}
	return out, nil
}

// BucketedShift applies amounts as a step function over buckets.
func BucketedShift(c curve.Curve, buckets []Bucket, amounts []float64, st Type) (curve.Curve, error) {
	if err := checkInputs(c, st); err != nil {
		return nil, fmt.Errorf("shift.BucketedShift: %w", err)
	}
	spread, err := stepSpread(buckets, amounts, st)
	if err != nil {
		return nil, fmt.Errorf("shift.BucketedShift: %w", err)
	}
	out, err := curve.NewSpread(st.op(), c, spread)
	if err != nil {
		return nil, fmt.Errorf("shift.BucketedShift: %w", err)
	}
	return out, nil
}

// stepSpread builds the step curve for bucketed shifts. Gaps between buckets, and the
// regions before the first and after the last bucket, hold the neutral value.
func stepSpread(buckets []Bucket, amounts []float64, st Type) (curve.Curve, error) {
	if len(buckets) == 0 {
		return nil, fmt.Errorf("%w: no buckets", ErrShift)
	}
	if len(buckets) != len(amounts) {
		return nil, fmt.Errorf("%w: must have one shift per bucket (%d buckets, %d shifts)", ErrShift, len(buckets), len(amounts))
	}
	for i, b := range buckets {
		if !finite(b.Start) || !finite(b.End) || !finite(amounts[i]) {
			return nil, fmt.Errorf("%w: bucket %d is not finite", ErrShift, i)
		}
		if b.End <= b.Start {
			return nil, fmt.Errorf("%w: bucket %d is empty [%g, %g)", ErrShift, i, b.Start, b.End)
		}
		if i > 0 && b.Start < buckets[i-1].End {
			return nil, fmt.Errorf("%w: bucket %d overlaps or precedes bucket %d", ErrShift, i, i-1)
		}
	}

	neutral := st.neutral()
	anchor := 0.0
	if buckets[0].Start <= 0 {
		anchor = buckets[0].Start - 1
	}

	times := make([]float64, 0, 2*len(buckets)+1)
	values := make([]float64, 0, 2*len(buckets)+1)
	times = append(times, anchor)
	values = append(values, neutral)
	for i, b := range buckets {
		times = append(times, b.Start)
		values = append(values, st.level(amounts[i]))
		if i+1 < len(buckets) && buckets[i+1].Start == b.End {
			continue
		}
		times = append(times, b.End)
		values = append(values, neutral)
	}
	return curve.New(times, values, curve.StepFlat)
}

func checkInputs(c curve.Curve, st Type) error {
	if c == nil {
		return fmt.Errorf("%w: nil curve", ErrShift)
	}
	return st.validate()
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
