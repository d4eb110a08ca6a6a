package prewhiten

import (
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-lightcurve/analysis/harmonic"
)

// Mode selects the single-frequency extractor used inside the prewhitening
// loop.
type Mode int

const (
	// FreeSearch searches the whole frequency range.
	FreeSearch Mode = iota
	// HarmonicAware excludes frequencies close to harmonics of the orbital
	// period.
	HarmonicAware
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case FreeSearch:
		return "free"
	case HarmonicAware:
		return "harmonic-aware"
	default:
		return "unknown"
	}
}

type config struct {
	logger    zerolog.Logger
	harmonTol float64
}

// Option configures a prewhitening operation.
type Option func(*config)

func defaultConfig() config {
	return config{
		logger:    zerolog.Nop(),
		harmonTol: harmonic.TightTolerance,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithLogger sets the logger for progress and boundary warnings. The default
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithHarmonicTolerance overrides the tolerance used to recognise harmonics
// that are already locked to the orbital period. Non-positive values keep the
// default harmonic.TightTolerance.
func WithHarmonicTolerance(tol float64) Option {
	return func(cfg *config) {
		if tol > 0 {
			cfg.harmonTol = tol
		}
	}
}
