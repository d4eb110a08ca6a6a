// Package config loads the YAML configuration of the lcfreq command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-lightcurve/analysis/pipeline"
	"github.com/cwbudde/algo-lightcurve/internal/logging"
)

var validate = validator.New()

// Config is the root of the configuration file.
type Config struct {
	Analysis Analysis       `yaml:"analysis"`
	Log      logging.Config `yaml:"log"`
}

// Analysis holds the pipeline settings.
type Analysis struct {
	// Period is a known orbital period in time units of the input. Zero
	// searches for the period.
	Period                float64 `yaml:"period" validate:"gte=0"`
	DoublePeriodThreshold float64 `yaml:"double_period_threshold" default:"1.5" validate:"gt=1"`
	HarmonicTolerance     float64 `yaml:"harmonic_tolerance" validate:"gte=0"`
	MinHarmonics          int     `yaml:"min_harmonics" default:"2" validate:"gte=1,lte=100"`
	// WeightedErrors keeps the per-point flux errors. By default all errors
	// are replaced by their maximum.
	WeightedErrors bool    `yaml:"weighted_errors"`
	NoiseWindow    float64 `yaml:"noise_window" default:"1" validate:"gt=0"`
}

// Default returns a configuration with every default applied.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	return &c, nil
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks all field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// Pipeline converts the analysis settings into a pipeline configuration.
func (a Analysis) Pipeline(logger zerolog.Logger) pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.Period = a.Period
	cfg.DoublePeriodThreshold = a.DoublePeriodThreshold
	cfg.HarmonicTolerance = a.HarmonicTolerance
	cfg.MinHarmonics = a.MinHarmonics
	cfg.UniformErrors = !a.WeightedErrors
	cfg.NoiseWindow = a.NoiseWindow
	cfg.Logger = logger
	return cfg
}
