package yieldcurve_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/creditcurve/curve"
	"github.com/meenmo/creditcurve/shift"
	"github.com/meenmo/creditcurve/yieldcurve"
)

var (
	ycTimes = []float64{0.0833, 0.25, 0.5, 1, 2, 3, 5, 7, 10, 30}
	ycRates = []float64{0.0031, 0.0036, 0.0049, 0.0068, 0.0062, 0.0081, 0.0127, 0.0168, 0.0214, 0.0282}
)

func TestISDACurve_DiscountFactorNormalisation(t *testing.T) {
	t.Parallel()

	for _, offset := range []float64{0, 2.0 / 365, -1.0 / 365, 0.25} {
		yc, err := yieldcurve.NewISDACurve("USD", ycTimes, ycRates, offset)
		require.NoError(t, err)
		assert.Equal(t, 1.0, yc.DiscountFactor(0), "offset=%g", offset)
	}

	yc, err := yieldcurve.NewISDACurve("USD", ycTimes, ycRates, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, yc.DiscountFactor(yc.Offset()))

	// Normalised at t=0 rather than at the offset: DF(offset) = exp(-offset*r(0)).
	offset := 0.25
	yc, err = yieldcurve.NewISDACurve("USD", ycTimes, ycRates, offset)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-offset*yc.InterestRate(0)), yc.DiscountFactor(offset), 1e-15)
	assert.Less(t, yc.DiscountFactor(offset), 1.0)
}

func TestISDACurve_DiscountFactor(t *testing.T) {
	t.Parallel()

	offset := 3.0 / 365
	yc, err := yieldcurve.NewISDACurve("USD", ycTimes, ycRates, offset)
	require.NoError(t, err)

	for _, x := range []float64{0.1, 0.5, 1, 4.2, 10, 35} {
		r := yc.InterestRate(x)
		want := math.Exp((offset-x)*r) / math.Exp(offset*yc.InterestRate(0))
		assert.Equal(t, want, yc.DiscountFactor(x))
		assert.Equal(t, yc.Curve().Value(x-offset), r)
	}

	// monotone on a positive-rate curve
	prev := 1.0
	for x := 0.1; x < 30; x += 0.1 {
		df := yc.DiscountFactor(x)
		require.Less(t, df, prev, "t=%g", x)
		prev = df
	}
}

func TestISDACurve_TimePoints(t *testing.T) {
	t.Parallel()

	yc, err := yieldcurve.NewISDACurve("USD", ycTimes, ycRates, 0.5)
	require.NoError(t, err)

	tp := yc.TimePoints()
	require.Len(t, tp, len(ycTimes))
	for i := range ycTimes {
		assert.Equal(t, ycTimes[i]+0.5, tp[i])
	}
	tp[0] = -1
	assert.Equal(t, ycTimes[0]+0.5, yc.TimePoints()[0])
}

func TestISDACurve_SingleKnot(t *testing.T) {
	t.Parallel()

	yc, err := yieldcurve.NewISDACurve("flat", []float64{1}, []float64{0.03}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.03, yc.InterestRate(7))
	assert.InDelta(t, math.Exp(-0.06), yc.DiscountFactor(2), 1e-15)
	assert.Equal(t, []float64{1}, yc.TimePoints())
}

func TestISDACurve_Invalid(t *testing.T) {
	t.Parallel()

	_, err := yieldcurve.NewISDACurve("bad", nil, nil, 0)
	require.ErrorIs(t, err, curve.ErrInvalidCurve)
	_, err = yieldcurve.NewISDACurve("bad", []float64{2, 1}, []float64{0.01, 0.02}, 0)
	require.ErrorIs(t, err, curve.ErrInvalidCurve)
	_, err = yieldcurve.NewISDACurve("bad", []float64{1}, []float64{0.01}, math.Inf(1))
	require.ErrorIs(t, err, curve.ErrInvalidCurve)
}

func TestISDACurve_Shifts(t *testing.T) {
	t.Parallel()

	offset := 0.25
	yc, err := yieldcurve.NewISDACurve("USD", ycTimes, ycRates, offset)
	require.NoError(t, err)

	par, err := yc.WithParallelShift(0.0001, shift.Absolute)
	require.NoError(t, err)
	assert.Equal(t, "USDWithParallelShift", par.Name())
	assert.Equal(t, yc.TimePoints(), par.TimePoints())
	assert.InDelta(t, yc.InterestRate(3)+0.0001, par.InterestRate(3), 1e-15)

	// point times are in valuation-date time: 2.25 is the 2y knot
	pt, err := yc.WithPointShifts([]float64{2 + offset}, []float64{0.1}, shift.Relative)
	require.NoError(t, err)
	assert.Equal(t, "USDWithPointShifts", pt.Name())
	assert.InDelta(t, ycRates[4]*1.1, pt.InterestRate(2+offset), 1e-15)
	assert.Equal(t, yc.InterestRate(5+offset), pt.InterestRate(5+offset))

	ins, err := yc.WithPointShifts([]float64{4 + offset}, []float64{0.001}, shift.Absolute)
	require.NoError(t, err)
	assert.Len(t, ins.TimePoints(), len(ycTimes)+1)

	bk, err := yc.WithBucketedShifts([]shift.Bucket{{Start: 1 + offset, End: 5 + offset}}, []float64{0.001}, shift.Absolute)
	require.NoError(t, err)
	assert.Equal(t, "USDWithBucketedShifts", bk.Name())
	assert.InDelta(t, yc.InterestRate(3)+0.001, bk.InterestRate(3), 1e-15)
	assert.Equal(t, yc.InterestRate(6), bk.InterestRate(6))

	// the original is untouched
	assert.Equal(t, "USD", yc.Name())
	assert.Equal(t, ycRates[4], yc.InterestRate(2+offset))
}

func TestYieldCurve(t *testing.T) {
	t.Parallel()

	yc, err := yieldcurve.FromRates("EUR", ycTimes, ycRates)
	require.NoError(t, err)
	assert.Equal(t, 1.0, yc.DiscountFactor(0))
	assert.InDelta(t, math.Exp(-5*ycRates[6]), yc.DiscountFactor(5), 1e-15)
	assert.Equal(t, ycTimes, yc.TimePoints())

	shifted, err := yc.WithParallelShift(0.01, shift.Relative)
	require.NoError(t, err)
	assert.Equal(t, "EURWithParallelShift", shifted.Name())
	assert.InDelta(t, ycRates[6]*1.01, shifted.InterestRate(5), 1e-15)
	assert.Equal(t, ycTimes, shifted.TimePoints())

	var _ yieldcurve.DiscountCurve = yc
	var _ yieldcurve.DiscountCurve = (*yieldcurve.ISDACurve)(nil)

	_, err = yieldcurve.New("nil", nil)
	require.ErrorIs(t, err, curve.ErrInvalidCurve)
}
