// Package config loads netclop settings from defaults, an optional YAML
// file and NETCLOP_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/dd0wney/cluso-netclop/pkg/sigclu"
	"github.com/dd0wney/cluso-netclop/pkg/validation"
)

// Reference schemes
const (
	SchemeStandard  = "standard"
	SchemeRecursive = "recursive"
)

// EnvPrefix prefixes every environment override, e.g. NETCLOP_SIGCLU_SEED
const EnvPrefix = "NETCLOP"

// Settings is the application configuration
type Settings struct {
	SigClu     sigclu.Config `mapstructure:"sigclu" yaml:"sigclu"`
	Scheme     string        `mapstructure:"scheme" yaml:"scheme" validate:"oneof=standard recursive"`
	// Workers is capped at sigclu.MaxWorkers; 0 selects one worker per CPU
	Workers    int           `mapstructure:"workers" yaml:"workers" validate:"min=0,max=1024"`
	LogLevel   string        `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	Database   string        `mapstructure:"database" yaml:"database"`
	Output     string        `mapstructure:"output" yaml:"output"`
	Report     string        `mapstructure:"report" yaml:"report"`
	MetricsOut string        `mapstructure:"metrics_out" yaml:"metrics_out"`
}

func setDefaults(v *viper.Viper) {
	d := sigclu.DefaultConfig()
	v.SetDefault("sigclu.significance_level", d.SignificanceLevel)
	v.SetDefault("sigclu.pen_weight", d.PenWeight)
	v.SetDefault("sigclu.temp_init", d.TempInit)
	v.SetDefault("sigclu.cool_rate", d.CoolRate)
	v.SetDefault("sigclu.decay_rate", d.DecayRate)
	v.SetDefault("sigclu.max_inner_iterations", d.MaxInnerIterations)
	v.SetDefault("sigclu.outer_iterations", d.OuterIterations)
	v.SetDefault("sigclu.min_core_size", d.MinCoreSize)
	v.SetDefault("sigclu.seed", d.Seed)
	v.SetDefault("sigclu.trim", d.Trim)
	v.SetDefault("sigclu.cooling", d.Cooling)

	v.SetDefault("scheme", SchemeStandard)
	v.SetDefault("workers", 0) // 0 = one per CPU
	v.SetDefault("log_level", "info")
	v.SetDefault("database", "")
	v.SetDefault("output", "")
	v.SetDefault("report", "")
	v.SetDefault("metrics_out", "")
}

// Load reads settings from path (optional) on top of the defaults, applies
// environment overrides and validates the result
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks application and clustering settings
func (s *Settings) Validate() error {
	if err := validation.ValidateStruct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return validation.NewConfigValidator("Settings").
		Custom("SigClu", s.SigClu.Validate).
		Validate()
}

var _ validation.Validatable = (*Settings)(nil)
