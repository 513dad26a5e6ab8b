// Package config loads command-line tool settings from file, environment and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/meenmo/creditcurve/credit"
	"github.com/meenmo/creditcurve/logging"
	"github.com/meenmo/creditcurve/solver"
)

// Config materialises application configuration.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Logging     logging.Config    `mapstructure:"logging"`
	Solver      SolverConfig      `mapstructure:"solver"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Hedge       HedgeConfig       `mapstructure:"hedge"`
	Output      OutputConfig      `mapstructure:"output"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name string `mapstructure:"name"`
}

// SolverConfig picks the root finder used by the calibrator.
type SolverConfig struct {
	Method        string `mapstructure:"method"`
	solver.Config `mapstructure:",squash"`
}

// CalibrationConfig bounds the bootstrap residual.
type CalibrationConfig struct {
	PVTolerance float64 `mapstructure:"pv_tolerance"`
}

// HedgeConfig tunes the hedge ratio calculation.
type HedgeConfig struct {
	Bump     float64 `mapstructure:"bump"`
	IR01Bump float64 `mapstructure:"ir01_bump"`
}

// OutputConfig sets CLI rendering behaviour.
type OutputConfig struct {
	Decimals       int32     `mapstructure:"decimals"`
	NotionalPlaces int32     `mapstructure:"notional_places"`
	DiscountTimes  []float64 `mapstructure:"discount_times"`
	ChartWidth     int       `mapstructure:"chart_width"`
	ChartHeight    int       `mapstructure:"chart_height"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CDSCURVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cdscurve")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "cdscurve")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	d := solver.DefaultConfig
	v.SetDefault("solver.method", "brent")
	v.SetDefault("solver.absolute_tolerance", d.AbsoluteTolerance)
	v.SetDefault("solver.function_tolerance", d.FunctionTolerance)
	v.SetDefault("solver.max_iterations", d.MaxIterations)
	v.SetDefault("solver.bracket_max_iterations", d.BracketMaxIterations)
	v.SetDefault("solver.bracket_growth", d.BracketGrowth)
	v.SetDefault("solver.damping_factor", d.DampingFactor)
	v.SetDefault("solver.derivative_threshold", d.DerivativeThreshold)
	v.SetDefault("solver.derivative_step", d.DerivativeStep)

	v.SetDefault("calibration.pv_tolerance", credit.DefaultCalibrationConfig.PVTolerance)

	v.SetDefault("hedge.bump", credit.DefaultHedgeBump)
	v.SetDefault("hedge.ir01_bump", 1e-4)

	v.SetDefault("output.decimals", 6)
	v.SetDefault("output.notional_places", 2)
	v.SetDefault("output.discount_times", []float64{0.5, 1, 2, 3, 5, 7, 10})
	v.SetDefault("output.chart_width", 1280)
	v.SetDefault("output.chart_height", 720)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.WeaklyTypedInput = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToWeakSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if _, err := c.RootFinder(); err != nil {
		return err
	}
	s := c.Solver.Config
	if !(s.AbsoluteTolerance > 0) {
		return fmt.Errorf("solver.absolute_tolerance must be greater than zero")
	}
	if s.FunctionTolerance < 0 {
		return fmt.Errorf("solver.function_tolerance cannot be negative")
	}
	if s.MaxIterations <= 0 || s.BracketMaxIterations <= 0 {
		return fmt.Errorf("solver.max_iterations and solver.bracket_max_iterations must be greater than zero")
	}
	if !(s.BracketGrowth > 1) {
		return fmt.Errorf("solver.bracket_growth must be greater than one")
	}
	if !(s.DampingFactor > 0 && s.DampingFactor <= 1) {
		return fmt.Errorf("solver.damping_factor must be in (0, 1]")
	}
	if !(c.Calibration.PVTolerance > 0) {
		return fmt.Errorf("calibration.pv_tolerance must be greater than zero")
	}
	if !(c.Hedge.Bump > 0) || !(c.Hedge.IR01Bump > 0) {
		return fmt.Errorf("hedge.bump and hedge.ir01_bump must be greater than zero")
	}
	if c.Output.Decimals < 0 || c.Output.NotionalPlaces < 0 {
		return fmt.Errorf("output.decimals and output.notional_places cannot be negative")
	}
	if c.Output.ChartWidth <= 0 || c.Output.ChartHeight <= 0 {
		return fmt.Errorf("output.chart_width and output.chart_height must be greater than zero")
	}
	return nil
}

// RootFinder returns the configured solver.
func (c *Config) RootFinder() (solver.RootFinder, error) {
	switch strings.ToLower(strings.TrimSpace(c.Solver.Method)) {
	case "", "brent":
		return solver.NewBrent(c.Solver.Config), nil
	case "bisection":
		return solver.NewBisection(c.Solver.Config), nil
	case "newton":
		return solver.NewNewton(c.Solver.Config, nil), nil
	default:
		return nil, fmt.Errorf("solver.method %q is not one of brent, bisection, newton", c.Solver.Method)
	}
}

// CalibrationConfig maps the calibration and solver sections onto the calibrator's config.
func (c *Config) CalibrationConfig() credit.CalibrationConfig {
	return credit.CalibrationConfig{
		PVTolerance: c.Calibration.PVTolerance,
		Solver:      c.Solver.Config,
	}
}
