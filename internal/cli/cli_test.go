package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/creditcurve/internal/app"
	"github.com/meenmo/creditcurve/internal/cli"
)

var snapshotPath = filepath.Join("..", "..", "marketdata", "testdata", "snapshot.yaml")

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version: dev")
	assert.Contains(t, out, "commit: unknown")
}

func TestCalibrate_Table(t *testing.T) {
	out, _, err := run(t, "calibrate", "--market", snapshotPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "Tenor"))
	assert.True(t, strings.HasPrefix(lines[1], "6M"))
	assert.True(t, strings.HasPrefix(lines[6], "10Y"))
	assert.Contains(t, lines[4], "2018-06-20")
}

func TestCalibrate_JSON(t *testing.T) {
	out, stderr, err := run(t, "calibrate", "--market", snapshotPath, "--json", "--log-level", "debug")
	require.NoError(t, err)

	var points []app.CurvePoint
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	require.Len(t, points, 6)
	for i, p := range points {
		assert.Greater(t, p.HazardRate, 0.0, p.Tenor)
		assert.Less(t, p.Survival, 1.0, p.Tenor)
		if i > 0 {
			assert.Greater(t, p.Time, points[i-1].Time)
			assert.Less(t, p.Survival, points[i-1].Survival)
		}
	}
	assert.Equal(t, "5Y", points[3].Tenor)

	assert.Contains(t, stderr, "calibrated bucket")
	assert.Contains(t, stderr, "loaded market snapshot")
}

func TestHedge(t *testing.T) {
	out, _, err := run(t, "hedge", "--market", snapshotPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Tenor")
	for _, label := range []string{"6M", "1Y", "3Y", "5Y", "7Y", "10Y", "Total", "Target PV", "IR01"} {
		assert.Contains(t, out, label)
	}
	// the target matures between the 3Y and 5Y buckets, so longer buckets carry nothing
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && (fields[0] == "7Y" || fields[0] == "10Y") {
			assert.Contains(t, []string{"0.00", "-0.00"}, fields[1], line)
		}
	}
}

func TestDiscount(t *testing.T) {
	out, _, err := run(t, "discount", "--market", snapshotPath, "--times", "0,1,5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Zero (USD)")
	assert.Equal(t, []string{"0.000000", "0.003100", "1.000000"}, strings.Fields(lines[1]))
	assert.Equal(t, "0.012700", strings.Fields(lines[3])[1])
}

func TestDiscount_DefaultTimes(t *testing.T) {
	out, _, err := run(t, "discount", "--market", snapshotPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 8)
}

func TestDiscount_EnvTimes(t *testing.T) {
	t.Setenv("CDSCURVE_OUTPUT_DISCOUNT_TIMES", "1,5")

	out, _, err := run(t, "discount", "--market", snapshotPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1.000000", strings.Fields(lines[1])[0])
	assert.Equal(t, []string{"5.000000", "0.012700"}, strings.Fields(lines[2])[:2])
}

func TestShift(t *testing.T) {
	out, _, err := run(t, "shift", "--market", snapshotPath, "--parallel", "0.01")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines[0], "USDWithParallelShift")
	require.Len(t, lines, 11)
	assert.Equal(t, []string{"1.000000", "0.006800", "0.016800"}, strings.Fields(lines[4]))

	out, _, err = run(t, "shift", "--market", snapshotPath, "--type", "relative", "--point", "2.5:0.5")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines[0], "USDWithPointShifts")
	require.Len(t, lines, 12)

	out, _, err = run(t, "shift", "--market", snapshotPath, "--bucket", "1:5:0.001", "--bucket", "5:10:0.002")
	require.NoError(t, err)
	assert.Contains(t, out, "USDWithBucketedShifts")
}

func TestShift_Invalid(t *testing.T) {
	_, _, err := run(t, "shift", "--market", snapshotPath)
	require.Error(t, err)

	_, _, err = run(t, "shift", "--market", snapshotPath, "--parallel", "0.01", "--point", "1:0.01")
	require.Error(t, err)

	_, _, err = run(t, "shift", "--market", snapshotPath, "--bucket", "1:5")
	require.Error(t, err)

	_, _, err = run(t, "shift", "--market", snapshotPath, "--type", "sideways", "--parallel", "0.01")
	require.Error(t, err)
}

func TestPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "curve.png")
	_, _, err := run(t, "plot", "--market", snapshotPath, "--png", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestErrors(t *testing.T) {
	_, _, err := run(t, "calibrate")
	require.Error(t, err)

	_, _, err = run(t, "calibrate", "--market", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	cfg := filepath.Join(t.TempDir(), "cdscurve.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("solver: {method: secant}\n"), 0o600))
	_, _, err = run(t, "--config", cfg, "calibrate", "--market", snapshotPath)
	require.Error(t, err)

	_, _, err = run(t, "plot", "--market", snapshotPath)
	require.Error(t, err)
}
