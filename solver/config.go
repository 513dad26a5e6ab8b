package solver

// Config holds root finder tolerances and iteration bounds.
type Config struct {
	// AbsoluteTolerance is the bracket width, in x, at which iteration stops.
	AbsoluteTolerance float64 `mapstructure:"absolute_tolerance"`

	// FunctionTolerance stops iteration once |f(x)| falls to this level.
	// Zero disables the check.
	FunctionTolerance float64 `mapstructure:"function_tolerance"`

	// MaxIterations bounds the number of function evaluations after the bracket is set.
	MaxIterations int `mapstructure:"max_iterations"`

	// BracketMaxIterations bounds the number of expansions in BracketRoot.
	BracketMaxIterations int `mapstructure:"bracket_max_iterations"`

	// BracketGrowth is the factor by which the bracket is widened on each expansion.
	BracketGrowth float64 `mapstructure:"bracket_growth"`

	// DampingFactor limits a Newton step to DampingFactor * (hi - lo).
	DampingFactor float64 `mapstructure:"damping_factor"`

	// DerivativeThreshold is the minimum derivative magnitude for a Newton step.
	// Below this, a bisection step is taken instead.
	DerivativeThreshold float64 `mapstructure:"derivative_threshold"`

	// DerivativeStep is the central-difference step used when no derivative is supplied.
	DerivativeStep float64 `mapstructure:"derivative_step"`
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	AbsoluteTolerance:    1e-15,
	FunctionTolerance:    1e-15,
	MaxIterations:        100,
	BracketMaxIterations: 50,
	BracketGrowth:        1.6,
	DampingFactor:        0.5,
	DerivativeThreshold:  1e-15,
	DerivativeStep:       1e-8,
}

// orDefault replaces a zero Config with DefaultConfig.
func (c Config) orDefault() Config {
	if c == (Config{}) {
		return DefaultConfig
	}
	return c
}
