package curve

import (
	"fmt"
	"math"
)

// InterpolationMethod selects how values between knots are computed.
type InterpolationMethod string

const (
	Linear    InterpolationMethod = "LINEAR"
	LogLinear InterpolationMethod = "LOG_LINEAR"
	// Step holds the value of the knot at or to the left of t.
	Step InterpolationMethod = "STEP"
	// ISDA interpolates t*y linearly, which keeps forward rates piecewise constant.
	ISDA InterpolationMethod = "ISDA"
)

// ExtrapolationMethod selects how values outside the knot range are computed.
type ExtrapolationMethod string

const (
	Flat                ExtrapolationMethod = "FLAT"
	LinearExtrapolation ExtrapolationMethod = "LINEAR"
	ISDAExtrapolation   ExtrapolationMethod = "ISDA"
)

type interpolateFunc func(xs, ys []float64, lo int, x float64) float64

type extrapolateFunc func(xs, ys []float64, x float64) float64

// Interpolator combines one interpolation method with an extrapolation method for each side.
type Interpolator struct {
	method InterpolationMethod
	below  ExtrapolationMethod
	above  ExtrapolationMethod

	interpolate      interpolateFunc
	extrapolateBelow extrapolateFunc
	extrapolateAbove extrapolateFunc
}

var (
	// ISDAFlat is the ISDA convention: ISDA interpolation, flat on both sides.
	ISDAFlat = MustCombine(ISDA, Flat, Flat)
	// LinearFlat interpolates linearly and holds the boundary values.
	LinearFlat = MustCombine(Linear, Flat, Flat)
	// StepFlat builds step functions such as bucketed shift spreads.
	StepFlat = MustCombine(Step, Flat, Flat)
	// LogLinearFlat interpolates log values, typically discount factors.
	LogLinearFlat = MustCombine(LogLinear, Flat, Flat)
)

// Combine builds an Interpolator from its three policies.
func Combine(method InterpolationMethod, below, above ExtrapolationMethod) (Interpolator, error) {
	ip := Interpolator{method: method, below: below, above: above}

	switch method {
	case Linear:
		ip.interpolate = linearInterpolate
	case LogLinear:
		ip.interpolate = logLinearInterpolate
	case Step:
		ip.interpolate = stepInterpolate
	case ISDA:
		ip.interpolate = isdaInterpolate
	default:
		return Interpolator{}, fmt.Errorf("curve.Combine: unknown interpolation method %q", method)
	}

	var err error
	if ip.extrapolateBelow, err = extrapolator(below, true); err != nil {
		return Interpolator{}, fmt.Errorf("curve.Combine: %w", err)
	}
	if ip.extrapolateAbove, err = extrapolator(above, false); err != nil {
		return Interpolator{}, fmt.Errorf("curve.Combine: %w", err)
	}
	return ip, nil
}

// MustCombine is Combine for package-level values; it panics on an unknown method.
func MustCombine(method InterpolationMethod, below, above ExtrapolationMethod) Interpolator {
	ip, err := Combine(method, below, above)
	if err != nil {
		panic(err)
	}
	return ip
}

func (ip Interpolator) Method() InterpolationMethod { return ip.method }

func (ip Interpolator) Below() ExtrapolationMethod { return ip.below }

func (ip Interpolator) Above() ExtrapolationMethod { return ip.above }

// IsZero reports whether ip is the unusable zero value.
func (ip Interpolator) IsZero() bool {
	return ip.interpolate == nil || ip.extrapolateBelow == nil || ip.extrapolateAbove == nil
}

func (ip Interpolator) String() string {
	return fmt.Sprintf("%s(%s,%s)", ip.method, ip.below, ip.above)
}

func (ip Interpolator) validate(values []float64) error {
	if ip.method != LogLinear {
		return nil
	}
	for i, v := range values {
		if v <= 0 {
			return fmt.Errorf("%w: log-linear interpolation needs positive values, value %d is %g", ErrInvalidCurve, i, v)
		}
	}
	return nil
}

func extrapolator(m ExtrapolationMethod, below bool) (extrapolateFunc, error) {
	switch m {
	case Flat:
		if below {
			return func(_, ys []float64, _ float64) float64 { return ys[0] }, nil
		}
		return func(_, ys []float64, _ float64) float64 { return ys[len(ys)-1] }, nil
	case LinearExtrapolation:
		return func(xs, ys []float64, x float64) float64 {
			return linearInterpolate(xs, ys, bracketOrBoundary(xs, x), x)
		}, nil
	case ISDAExtrapolation:
		return func(xs, ys []float64, x float64) float64 {
			return isdaInterpolate(xs, ys, bracketOrBoundary(xs, x), x)
		}, nil
	default:
		return nil, fmt.Errorf("unknown extrapolation method %q", m)
	}
}

func linearInterpolate(xs, ys []float64, lo int, x float64) float64 {
	x0, x1 := xs[lo], xs[lo+1]
	y0, y1 := ys[lo], ys[lo+1]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

func logLinearInterpolate(xs, ys []float64, lo int, x float64) float64 {
	x0, x1 := xs[lo], xs[lo+1]
	l0, l1 := math.Log(ys[lo]), math.Log(ys[lo+1])
	return math.Exp(l0 + (l1-l0)*(x-x0)/(x1-x0))
}

func stepInterpolate(_, ys []float64, lo int, _ float64) float64 {
	return ys[lo]
}

func isdaInterpolate(xs, ys []float64, lo int, x float64) float64 {
	if x == 0 {
		return linearInterpolate(xs, ys, lo, x)
	}
	x0, x1 := xs[lo], xs[lo+1]
	rt0, rt1 := x0*ys[lo], x1*ys[lo+1]
	rt := rt0 + (rt1-rt0)*(x-x0)/(x1-x0)
	return rt / x
}
