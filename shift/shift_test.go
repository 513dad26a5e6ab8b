package shift_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/creditcurve/curve"
	"github.com/meenmo/creditcurve/shift"
)

var (
	knotTimes  = []float64{0.5, 1, 2, 3, 5, 7, 10}
	knotValues = []float64{0.012, 0.0135, 0.0158, 0.0174, 0.0197, 0.0211, 0.0224}
)

func sampleGrid() []float64 {
	grid := make([]float64, 0, 130)
	for x := -0.5; x <= 12.5; x += 0.1 {
		grid = append(grid, x)
	}
	return append(grid, knotTimes...)
}

func baseCurve(t *testing.T) *curve.InterpolatedCurve {
	t.Helper()
	c, err := curve.NewInterpolated(knotTimes, knotValues, curve.ISDAFlat)
	require.NoError(t, err)
	return c
}

func TestParallelShift_ZeroIsIdentity(t *testing.T) {
	t.Parallel()

	base := baseCurve(t)
	for _, st := range []shift.Type{shift.Absolute, shift.Relative} {
		out, err := shift.ParallelShift(base, 0, st)
		require.NoError(t, err)
		for _, x := range sampleGrid() {
			if got, want := out.Value(x), base.Value(x); got != want {
				t.Fatalf("%s: Value(%g) = %.17g, want %.17g", st, x, got, want)
			}
		}
	}
}

func TestParallelShift_Amounts(t *testing.T) {
	t.Parallel()

	base := baseCurve(t)

	abs, err := shift.ParallelShift(base, 0.0001, shift.Absolute)
	require.NoError(t, err)
	rel, err := shift.ParallelShift(base, 0.1, shift.Relative)
	require.NoError(t, err)

	for _, x := range sampleGrid() {
		assert.InDelta(t, base.Value(x)+0.0001, abs.Value(x), 1e-15)
		assert.InDelta(t, base.Value(x)*1.1, rel.Value(x), 1e-15)
	}

	// input is untouched
	assert.Equal(t, knotValues, base.Values())
}

func TestBucketedShift_StepSemantics(t *testing.T) {
	t.Parallel()

	base := baseCurve(t)
	buckets := []shift.Bucket{{Start: 1, End: 3}, {Start: 3, End: 5}, {Start: 7, End: 10}}
	amounts := []float64{0.001, 0.002, 0.003}

	out, err := shift.BucketedShift(base, buckets, amounts, shift.Absolute)
	require.NoError(t, err)

	cases := []struct {
		t, want float64
	}{
		{0.5, 0},
		{0.99, 0},
		{1, 0.001},
		{2.5, 0.001},
		{3, 0.002},
		{4.99, 0.002},
		{5, 0},
		{6, 0},
		{7, 0.003},
		{9.5, 0.003},
		{10, 0},
		{15, 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, out.Value(tc.t)-base.Value(tc.t), 1e-15, "t=%g", tc.t)
	}
}

func TestBucketedShift_Relative(t *testing.T) {
	t.Parallel()

	base := baseCurve(t)
	out, err := shift.BucketedShift(base, []shift.Bucket{{Start: 0, End: 2}}, []float64{0.5}, shift.Relative)
	require.NoError(t, err)

	assert.InDelta(t, base.Value(1)*1.5, out.Value(1), 1e-15)
	assert.InDelta(t, base.Value(0)*1.5, out.Value(0), 1e-15)
	assert.Equal(t, base.Value(-0.5), out.Value(-0.5))
	assert.Equal(t, base.Value(2), out.Value(2))
}

func TestBucketedShift_Additive(t *testing.T) {
	t.Parallel()

	base := baseCurve(t)
	first := []shift.Bucket{{Start: 0, End: 1}, {Start: 3, End: 5}}
	second := []shift.Bucket{{Start: 1, End: 2}, {Start: 7, End: 10}}
	union := []shift.Bucket{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 3, End: 5}, {Start: 7, End: 10}}

	for _, st := range []shift.Type{shift.Absolute, shift.Relative} {
		step1, err := shift.BucketedShift(base, first, []float64{0.01, 0.03}, st)
		require.NoError(t, err)
		seq, err := shift.BucketedShift(step1, second, []float64{0.02, 0.04}, st)
		require.NoError(t, err)

		once, err := shift.BucketedShift(base, union, []float64{0.01, 0.02, 0.03, 0.04}, st)
		require.NoError(t, err)

		for _, x := range sampleGrid() {
			if got, want := seq.Value(x), once.Value(x); got != want {
				t.Fatalf("%s: sequential Value(%g) = %.17g, union %.17g", st, x, got, want)
			}
		}
	}
}

func TestBucketedShift_Invalid(t *testing.T) {
	t.Parallel()

	base := baseCurve(t)
	cases := map[string]struct {
		buckets []shift.Bucket
		amounts []float64
	}{
		"count":       {[]shift.Bucket{{Start: 0, End: 1}}, []float64{0.1, 0.2}},
		"none":        {nil, nil},
		"empty":       {[]shift.Bucket{{Start: 1, End: 1}}, []float64{0.1}},
		"overlapping": {[]shift.Bucket{{Start: 0, End: 2}, {Start: 1, End: 3}}, []float64{0.1, 0.2}},
		"unsorted":    {[]shift.Bucket{{Start: 2, End: 3}, {Start: 0, End: 1}}, []float64{0.1, 0.2}},
	}
	for name, tc := range cases {
		_, err := shift.BucketedShift(base, tc.buckets, tc.amounts, shift.Absolute)
		if !errors.Is(err, shift.ErrShift) {
			t.Fatalf("%s: expected ErrShift, got %v", name, err)
		}
	}
}

func TestPointShift_ExistingKnot(t *testing.T) {
	t.Parallel()

	base := baseCurve(t)

	rel, err := shift.PointShift(base, []float64{3}, []float64{0.1}, shift.Relative)
	require.NoError(t, err)
	abs, err := shift.PointShift(base, []float64{3}, []float64{0.0005}, shift.Absolute)
	require.NoError(t, err)

	relKnots := rel.(*curve.InterpolatedCurve)
	absKnots := abs.(*curve.InterpolatedCurve)
	require.Equal(t, knotTimes, relKnots.Times())
	require.Equal(t, knotTimes, absKnots.Times())

	for i, x := range knotTimes {
		if x == 3 {
			assert.Equal(t, knotValues[i]*1.1, rel.Value(x))
			assert.Equal(t, knotValues[i]+0.0005, abs.Value(x))
			continue
		}
		assert.Equal(t, knotValues[i], rel.Value(x))
		assert.Equal(t, knotValues[i], abs.Value(x))
	}
}

func TestPointShift_InsertsKnot(t *testing.T) {
	t.Parallel()

	base := baseCurve(t)
	orig := base.Value(4)

	out, err := shift.PointShift(base, []float64{4, 0.25}, []float64{0.2, 0.1}, shift.Relative)
	require.NoError(t, err)

	ic := out.(*curve.InterpolatedCurve)
	assert.Equal(t, []float64{0.25, 0.5, 1, 2, 3, 4, 5, 7, 10}, ic.Times())
	assert.Equal(t, orig*1.2, out.Value(4))
	assert.Equal(t, base.Value(0.25)*1.1, out.Value(0.25))
	assert.Equal(t, knotValues[4], out.Value(5))
}

func TestPointShift_RepeatedTimeCompounds(t *testing.T) {
	t.Parallel()

	base := baseCurve(t)
	out, err := shift.PointShift(base, []float64{4, 4}, []float64{0.001, 0.002}, shift.Absolute)
	require.NoError(t, err)
	assert.InDelta(t, base.Value(4)+0.003, out.Value(4), 1e-15)
	assert.Equal(t, len(knotTimes)+1, out.(*curve.InterpolatedCurve).Size())
}

func TestPointShift_EmptyListCopies(t *testing.T) {
	t.Parallel()

	base := baseCurve(t)
	out, err := shift.PointShift(base, nil, nil, shift.Relative)
	require.NoError(t, err)

	ic, ok := out.(*curve.InterpolatedCurve)
	require.True(t, ok)
	assert.NotSame(t, base, ic)
	assert.Equal(t, base.Times(), ic.Times())
	assert.Equal(t, base.Values(), ic.Values())
	assert.Equal(t, base.Interpolator().String(), ic.Interpolator().String())
	for _, x := range sampleGrid() {
		assert.Equal(t, base.Value(x), out.Value(x))
	}
}

func TestPointShift_Unsupported(t *testing.T) {
	t.Parallel()

	constant := curve.NewConstant(0.02)
	spread, err := shift.ParallelShift(baseCurve(t), 0.001, shift.Absolute)
	require.NoError(t, err)

	for _, c := range []curve.Curve{constant, spread} {
		_, err := shift.PointShift(c, []float64{1}, []float64{0.1}, shift.Relative)
		require.ErrorIs(t, err, shift.ErrShift)
		require.ErrorIs(t, err, curve.ErrUnsupportedCurveType)
	}

	_, err = shift.PointShift(spread, []float64{1}, []float64{0.1}, shift.Absolute)
	require.ErrorIs(t, err, curve.ErrUnsupportedCurveType)

	_, err = shift.PointShift(constant, []float64{1}, []float64{0.1}, shift.Absolute)
	require.ErrorIs(t, err, curve.ErrUnsupportedCurveType)
}

func TestPointShift_CountMismatch(t *testing.T) {
	t.Parallel()

	_, err := shift.PointShift(baseCurve(t), []float64{1, 2}, []float64{0.1}, shift.Absolute)
	require.ErrorIs(t, err, shift.ErrShift)
}

func TestApply_Dispatch(t *testing.T) {
	t.Parallel()

	base := baseCurve(t)

	out, err := shift.Apply(base, shift.Parallel{Amount: 0.001}, shift.Absolute)
	require.NoError(t, err)
	assert.InDelta(t, base.Value(2)+0.001, out.Value(2), 1e-15)

	out, err = shift.Apply(base, shift.Points{Times: []float64{2}, Amounts: []float64{0.001}}, shift.Absolute)
	require.NoError(t, err)
	assert.Equal(t, knotValues[2]+0.001, out.Value(2))

	out, err = shift.Apply(base, shift.Bucketed{Buckets: []shift.Bucket{{Start: 1, End: 3}}, Amounts: []float64{0.001}}, shift.Absolute)
	require.NoError(t, err)
	assert.InDelta(t, base.Value(2)+0.001, out.Value(2), 1e-15)

	_, err = shift.Apply(base, nil, shift.Absolute)
	require.ErrorIs(t, err, shift.ErrShift)

	_, err = shift.Apply(base, shift.Parallel{Amount: 0.001}, shift.Type("SIDEWAYS"))
	require.ErrorIs(t, err, shift.ErrShift)
}

func TestParseType(t *testing.T) {
	t.Parallel()

	st, err := shift.ParseType("abs")
	require.NoError(t, err)
	assert.Equal(t, shift.Absolute, st)

	st, err = shift.ParseType(" Relative ")
	require.NoError(t, err)
	assert.Equal(t, shift.Relative, st)

	_, err = shift.ParseType("log")
	require.ErrorIs(t, err, shift.ErrShift)
}
