package sigclu

import (
	"github.com/dd0wney/cluso-netclop/pkg/validation"
)

// Trim boundaries select how many of the smallest replicate mismatches are
// summed into the penalty.
const (
	// TrimBelowQuantile sums the n_pen-1 smallest mismatches
	TrimBelowQuantile = "npen-1"
	// TrimAtQuantile sums the n_pen smallest mismatches
	TrimAtQuantile = "npen"
)

// Cooling schedules
const (
	// CoolingGeometric sets T = TempInit * CoolRate^i after sweep i
	CoolingGeometric = "geometric"
	// CoolingExponential sets T = TempInit * exp(-(i+1) * CoolRate) after sweep i
	CoolingExponential = "exponential"
)

// Config holds the significance clustering parameters
type Config struct {
	SignificanceLevel  float64 `mapstructure:"significance_level" yaml:"significance_level" json:"significance_level" validate:"gt=0,lt=1"`
	PenWeight          float64 `mapstructure:"pen_weight" yaml:"pen_weight" json:"pen_weight" validate:"gt=0"`
	TempInit           float64 `mapstructure:"temp_init" yaml:"temp_init" json:"temp_init" validate:"gt=0"`
	CoolRate           float64 `mapstructure:"cool_rate" yaml:"cool_rate" json:"cool_rate" validate:"gt=0,lt=1"`
	DecayRate          float64 `mapstructure:"decay_rate" yaml:"decay_rate" json:"decay_rate" validate:"gt=0,lt=1"`
	MaxInnerIterations int     `mapstructure:"max_inner_iterations" yaml:"max_inner_iterations" json:"max_inner_iterations" validate:"min=1"`
	OuterIterations    int     `mapstructure:"outer_iterations" yaml:"outer_iterations" json:"outer_iterations" validate:"min=1"`
	MinCoreSize        int     `mapstructure:"min_core_size" yaml:"min_core_size" json:"min_core_size" validate:"min=1"`
	Seed               int64   `mapstructure:"seed" yaml:"seed" json:"seed" validate:"min=1"`
	Trim               string  `mapstructure:"trim" yaml:"trim" json:"trim" validate:"omitempty,oneof=npen-1 npen"`
	Cooling            string  `mapstructure:"cooling" yaml:"cooling" json:"cooling" validate:"omitempty,oneof=geometric exponential"`
}

var _ validation.Validatable = Config{}

// DefaultConfig returns the default clustering parameters
func DefaultConfig() Config {
	return Config{
		SignificanceLevel:  0.95,
		PenWeight:          1.0,
		TempInit:           10.0,
		CoolRate:           0.9,
		DecayRate:          0.95,
		MaxInnerIterations: 1000,
		OuterIterations:    5,
		MinCoreSize:        3,
		Seed:               42,
		Trim:               TrimBelowQuantile,
		Cooling:            CoolingGeometric,
	}
}

// Validate reports every out-of-range parameter, wrapped in ErrConfiguration
func (c Config) Validate() error {
	err := validation.NewConfigValidator("Config").
		OpenUnitInterval("SignificanceLevel", c.SignificanceLevel).
		PositiveFloat("PenWeight", c.PenWeight).
		PositiveFloat("TempInit", c.TempInit).
		OpenUnitInterval("CoolRate", c.CoolRate).
		OpenUnitInterval("DecayRate", c.DecayRate).
		MinInt("MaxInnerIterations", c.MaxInnerIterations, 1).
		MinInt("OuterIterations", c.OuterIterations, 1).
		MinInt("MinCoreSize", c.MinCoreSize, 1).
		MinInt64("Seed", c.Seed, 1).
		When(c.Trim != "", func(cv *validation.ConfigValidator) {
			cv.OneOf("Trim", c.Trim, []string{TrimBelowQuantile, TrimAtQuantile})
		}).
		When(c.Cooling != "", func(cv *validation.ConfigValidator) {
			cv.OneOf("Cooling", c.Cooling, []string{CoolingGeometric, CoolingExponential})
		}).
		Validate()
	if err != nil {
		return wrapError("Validate", -1, ErrConfiguration, err)
	}
	return nil
}

func (c Config) trim() string {
	if c.Trim == "" {
		return TrimBelowQuantile
	}
	return c.Trim
}

func (c Config) cooling() string {
	if c.Cooling == "" {
		return CoolingGeometric
	}
	return c.Cooling
}
