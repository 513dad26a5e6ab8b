package curve_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/meenmo/creditcurve/curve"
)

func TestNew_KnotsReproducedExactly(t *testing.T) {
	t.Parallel()

	times := []float64{0.25, 0.5, 1, 2, 3, 5, 7, 10}
	values := []float64{0.011, 0.0123, 0.0137, 0.0161, 0.0179, 0.0203, 0.0219, 0.0231}

	for _, ip := range []curve.Interpolator{curve.ISDAFlat, curve.LinearFlat, curve.StepFlat, curve.LogLinearFlat} {
		c, err := curve.New(times, values, ip)
		require.NoError(t, err, ip.String())
		for i, x := range times {
			if got := c.Value(x); got != values[i] {
				t.Fatalf("%s: Value(%g) = %.17g, want %.17g", ip, x, got, values[i])
			}
		}
	}
}

func TestNew_SingleKnotIsConstant(t *testing.T) {
	t.Parallel()

	c, err := curve.New([]float64{1.0}, []float64{0.05}, curve.ISDAFlat)
	require.NoError(t, err)

	_, ok := c.(*curve.ConstantCurve)
	require.True(t, ok, "single knot should build a ConstantCurve, got %T", c)
	assert.Equal(t, 0.05, c.Value(0.5))
	assert.Equal(t, 0.05, c.Value(5.0))
	assert.Equal(t, 0.05, c.Value(-3.0))
}

func TestNew_TwoKnotsFlatExtrapolation(t *testing.T) {
	t.Parallel()

	c, err := curve.New([]float64{1, 2}, []float64{0.01, 0.02}, curve.LinearFlat)
	require.NoError(t, err)

	assert.Equal(t, 0.01, c.Value(0.5))
	assert.Equal(t, 0.02, c.Value(3.0))
	assert.InDelta(t, 0.015, c.Value(1.5), 1e-15)
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		times, values []float64
		ip            curve.Interpolator
	}{
		"empty":           {nil, nil, curve.LinearFlat},
		"length":          {[]float64{1, 2}, []float64{1}, curve.LinearFlat},
		"unsorted":        {[]float64{1, 3, 2}, []float64{1, 2, 3}, curve.LinearFlat},
		"duplicate":       {[]float64{1, 1}, []float64{1, 2}, curve.LinearFlat},
		"nan":             {[]float64{1, 2}, []float64{math.NaN(), 2}, curve.LinearFlat},
		"loglinear<=0":    {[]float64{1, 2}, []float64{1, 0}, curve.LogLinearFlat},
		"no interpolator": {[]float64{1, 2}, []float64{1, 2}, curve.Interpolator{}},
	}
	for name, tc := range cases {
		_, err := curve.New(tc.times, tc.values, tc.ip)
		if !errors.Is(err, curve.ErrInvalidCurve) {
			t.Fatalf("%s: expected ErrInvalidCurve, got %v", name, err)
		}
	}
}

func TestNew_CopiesInputs(t *testing.T) {
	t.Parallel()

	times := []float64{1, 2}
	values := []float64{0.01, 0.02}
	c, err := curve.NewInterpolated(times, values, curve.LinearFlat)
	require.NoError(t, err)

	times[1] = 10
	values[1] = 1
	assert.Equal(t, 0.02, c.Value(2))

	out := c.Values()
	out[0] = 42
	assert.Equal(t, 0.01, c.Value(1))
}

func TestISDAInterpolation(t *testing.T) {
	t.Parallel()

	c, err := curve.New([]float64{1, 2}, []float64{0.01, 0.02}, curve.ISDAFlat)
	require.NoError(t, err)

	// rt is linear: rt(1.5) = 0.01 + 0.5*(0.04-0.01) = 0.025
	assert.InDelta(t, 0.025/1.5, c.Value(1.5), 1e-15)

	ext := curve.MustCombine(curve.ISDA, curve.Flat, curve.ISDAExtrapolation)
	c2, err := curve.New([]float64{1, 2}, []float64{0.01, 0.02}, ext)
	require.NoError(t, err)
	// rt(3) = 0.04 + 0.03 = 0.07
	assert.InDelta(t, 0.07/3, c2.Value(3), 1e-15)
	assert.Equal(t, 0.01, c2.Value(0.5))
}

func TestStepAndLogLinear(t *testing.T) {
	t.Parallel()

	step, err := curve.New([]float64{0, 1, 2}, []float64{1, 2, 3}, curve.StepFlat)
	require.NoError(t, err)
	assert.Equal(t, 1.0, step.Value(0.99))
	assert.Equal(t, 2.0, step.Value(1.5))
	assert.Equal(t, 3.0, step.Value(7))

	ll, err := curve.New([]float64{0, 1}, []float64{1, math.Exp(-0.05)}, curve.LogLinearFlat)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.025), ll.Value(0.5), 1e-15)

	lin := curve.MustCombine(curve.Linear, curve.LinearExtrapolation, curve.LinearExtrapolation)
	lc, err := curve.New([]float64{1, 2}, []float64{1, 2}, lin)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, lc.Value(0), 1e-15)
	assert.InDelta(t, 4.0, lc.Value(4), 1e-15)
}

func TestCombine_Unknown(t *testing.T) {
	t.Parallel()

	_, err := curve.Combine("CUBIC", curve.Flat, curve.Flat)
	require.Error(t, err)
	_, err = curve.Combine(curve.Linear, "MIRROR", curve.Flat)
	require.Error(t, err)
}

func TestSpreadCurve(t *testing.T) {
	t.Parallel()

	base, err := curve.New([]float64{1, 2}, []float64{0.01, 0.02}, curve.LinearFlat)
	require.NoError(t, err)

	add, err := curve.NewSpread(curve.SpreadAdd, base, curve.NewConstant(0.001))
	require.NoError(t, err)
	assert.InDelta(t, 0.016, add.Value(1.5), 1e-15)

	mul, err := curve.NewSpread(curve.SpreadMultiply, base, curve.NewConstant(2))
	require.NoError(t, err)
	assert.InDelta(t, 0.03, mul.Value(1.5), 1e-15)
	assert.Same(t, base, mul.Base())

	_, err = curve.NewSpread(curve.SpreadAdd, base)
	require.ErrorIs(t, err, curve.ErrInvalidCurve)
}

func TestIndexOf(t *testing.T) {
	t.Parallel()

	c, err := curve.NewInterpolated([]float64{1, 2, 3}, []float64{1, 2, 3}, curve.LinearFlat)
	require.NoError(t, err)
	assert.Equal(t, 1, c.IndexOf(2))
	assert.Equal(t, -1, c.IndexOf(2.5))
	assert.Equal(t, 3, c.Size())
	assert.True(t, math.IsNaN(c.Value(math.NaN())))
}

func TestConcurrentReads(t *testing.T) {
	t.Parallel()

	c, err := curve.New([]float64{0.5, 1, 3, 5, 10}, []float64{0.01, 0.012, 0.018, 0.021, 0.025}, curve.ISDAFlat)
	require.NoError(t, err)

	grid := make([]float64, 200)
	for i := range grid {
		grid[i] = float64(i) * 0.06
	}
	want := curve.Sample(c, grid)

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			got := curve.Sample(c, grid)
			for i := range got {
				if got[i] != want[i] {
					return errors.New("concurrent evaluation diverged")
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
