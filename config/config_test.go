package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/creditcurve/config"
	"github.com/meenmo/creditcurve/credit"
	"github.com/meenmo/creditcurve/solver"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cdscurve.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "cdscurve", cfg.App.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "brent", cfg.Solver.Method)
	assert.Equal(t, solver.DefaultConfig, cfg.Solver.Config)
	assert.Equal(t, credit.DefaultCalibrationConfig, cfg.CalibrationConfig())
	assert.InDelta(t, credit.DefaultHedgeBump, cfg.Hedge.Bump, 0)
	assert.Equal(t, []float64{0.5, 1, 2, 3, 5, 7, 10}, cfg.Output.DiscountTimes)
	assert.Equal(t, int32(2), cfg.Output.NotionalPlaces)

	rf, err := cfg.RootFinder()
	require.NoError(t, err)
	assert.IsType(t, solver.Brent{}, rf)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: console
solver:
  method: newton
  max_iterations: 40
calibration:
  pv_tolerance: 1e-9
hedge:
  bump: 1e-5
output:
  discount_times: [1, 5]
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 40, cfg.Solver.MaxIterations)
	assert.InDelta(t, solver.DefaultConfig.AbsoluteTolerance, cfg.Solver.AbsoluteTolerance, 0)
	assert.InDelta(t, 1e-9, cfg.CalibrationConfig().PVTolerance, 0)
	assert.InDelta(t, 1e-5, cfg.Hedge.Bump, 0)
	assert.Equal(t, []float64{1, 5}, cfg.Output.DiscountTimes)

	rf, err := cfg.RootFinder()
	require.NoError(t, err)
	assert.IsType(t, solver.Newton{}, rf)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CDSCURVE_SOLVER_METHOD", "bisection")
	t.Setenv("CDSCURVE_HEDGE_BUMP", "2e-6")
	t.Setenv("CDSCURVE_OUTPUT_DISCOUNT_TIMES", "1,2,5")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "bisection", cfg.Solver.Method)
	assert.InDelta(t, 2e-6, cfg.Hedge.Bump, 0)
	assert.Equal(t, []float64{1, 2, 5}, cfg.Output.DiscountTimes)

	rf, err := cfg.RootFinder()
	require.NoError(t, err)
	assert.IsType(t, solver.Bisection{}, rf)
}

func TestLoad_EnvDiscountTimes(t *testing.T) {
	cases := map[string][]float64{
		"3":          {3},
		"0.5,1,2.25": {0.5, 1, 2.25},
	}
	for env, want := range cases {
		t.Run(env, func(t *testing.T) {
			t.Setenv("CDSCURVE_OUTPUT_DISCOUNT_TIMES", env)
			cfg, err := config.Load("")
			require.NoError(t, err)
			assert.Equal(t, want, cfg.Output.DiscountTimes)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"method":       "solver: {method: secant}",
		"tolerance":    "solver: {absolute_tolerance: 0}",
		"growth":       "solver: {bracket_growth: 1}",
		"damping":      "solver: {damping_factor: 2}",
		"pv tolerance": "calibration: {pv_tolerance: -1}",
		"bump":         "hedge: {bump: 0}",
		"decimals":     "output: {decimals: -1}",
		"chart":        "output: {chart_width: 0}",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
