package config

import (
	"os"
	"runtime"
	"strconv"

	"parqsum/domain/summary"
	"parqsum/internal/errors"
)

// Config represents the complete application configuration. Environment
// variables supply defaults; CLI flags override them.
type Config struct {
	// CategoricalThreshold is the maximum cardinality for a column of
	// unrecognized type to still get a frequency table. Zero sends every
	// such column to count-only reporting.
	CategoricalThreshold uint

	// Parallelism bounds the worker count when summarizing columns
	// concurrently. 1 keeps the serial path.
	Parallelism int

	// LowMemory limits buffering and internal parallelism during load.
	LowMemory bool
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		CategoricalThreshold: summary.DefaultCategoricalThreshold,
		Parallelism:          1,
	}

	if v := os.Getenv("PARQSUM_CATEGORICAL_THRESHOLD"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid PARQSUM_CATEGORICAL_THRESHOLD %q", v)
		}
		cfg.CategoricalThreshold = uint(n)
	}

	if v := os.Getenv("PARQSUM_PARALLELISM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid PARQSUM_PARALLELISM %q", v)
		}
		cfg.Parallelism = n
	}

	if v := os.Getenv("PARQSUM_LOW_MEMORY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid PARQSUM_LOW_MEMORY %q", v)
		}
		cfg.LowMemory = b
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Parallelism < 1 {
		return errors.ConfigInvalid("parallelism must be at least 1")
	}
	if c.Parallelism > runtime.NumCPU()*4 {
		c.Parallelism = runtime.NumCPU() * 4
	}
	return nil
}
