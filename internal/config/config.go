// Package config provides the analysis configuration schema and YAML loader
// for the recording trimmer. A config file overrides the built-in tier
// parameters wholesale; individual CLI flags override on top of it.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	trimmer "github.com/deyak360/recording-trimmer"
)

// Tier holds one duration tier's detection parameters.
type Tier struct {
	ThresholdDB float64 `yaml:"threshold_db"`
	WindowSec   int     `yaml:"window_sec"`
	ConfirmSec  []int   `yaml:"confirm_sec"`

	// SkipMinutes applies to the short and medium tiers only.
	SkipMinutes int `yaml:"skip_minutes,omitempty"`

	// AnalysisMinutes applies to the long tier only.
	AnalysisMinutes int `yaml:"analysis_minutes,omitempty"`
}

// Config is the root analysis configuration.
type Config struct {
	SamplesPerSec    int  `yaml:"samples_per_sec"`
	ShortMaxMinutes  int  `yaml:"short_max_minutes"`
	MediumMaxMinutes int  `yaml:"medium_max_minutes"`
	Short            Tier `yaml:"short"`
	Medium           Tier `yaml:"medium"`
	Long             Tier `yaml:"long"`
}

// Default returns the built-in configuration, mirroring
// trimmer.DefaultOptions.
func Default() *Config {
	opts := trimmer.DefaultOptions()

	return &Config{
		SamplesPerSec:    opts.SamplesPerSec,
		ShortMaxMinutes:  opts.ShortMaxMinutes,
		MediumMaxMinutes: opts.MediumMaxMinutes,
		Short:            fromTierParams(opts.Short),
		Medium:           fromTierParams(opts.Medium),
		Long:             fromTierParams(opts.Long),
	}
}

func fromTierParams(p trimmer.TierParams) Tier {
	return Tier{
		ThresholdDB:     p.ThresholdDB,
		WindowSec:       p.WindowSec,
		ConfirmSec:      p.ConfirmOffsetsSec,
		SkipMinutes:     p.SkipMinutes,
		AnalysisMinutes: p.AnalysisMinutes,
	}
}

// Load reads the YAML configuration file at path and returns a validated
// Config.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // config path is user-provided by design
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Absent fields keep their defaults, so partial configs are fine.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values. It returns a
// joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.SamplesPerSec < 1 {
		errs = append(errs, fmt.Errorf("samples_per_sec must be >= 1 (got %d)", cfg.SamplesPerSec))
	}

	for name, tier := range map[string]Tier{"short": cfg.Short, "medium": cfg.Medium, "long": cfg.Long} {
		if tier.ThresholdDB <= 0 {
			errs = append(errs, fmt.Errorf("%s: threshold_db must be positive (got %g)", name, tier.ThresholdDB))
		}

		if tier.WindowSec < 1 {
			errs = append(errs, fmt.Errorf("%s: window_sec must be >= 1 (got %d)", name, tier.WindowSec))
		}

		if err := validateConfirm(tier.ConfirmSec); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}

		if tier.SkipMinutes < 0 {
			errs = append(errs, fmt.Errorf("%s: skip_minutes must be >= 0 (got %d)", name, tier.SkipMinutes))
		}
	}

	if cfg.Long.AnalysisMinutes < 1 {
		errs = append(errs, fmt.Errorf("long: analysis_minutes must be >= 1 (got %d)", cfg.Long.AnalysisMinutes))
	}

	// Tier boundaries must leave each scan something meaningful to work on.
	if minShort := min(cfg.Short.SkipMinutes*3, 10); cfg.ShortMaxMinutes < minShort {
		errs = append(errs, fmt.Errorf(
			"short_max_minutes must be >= min(short skip_minutes*3, 10) = %d (got %d)",
			minShort, cfg.ShortMaxMinutes))
	}

	if minMedium := min(cfg.Medium.SkipMinutes*3, 10); cfg.MediumMaxMinutes < minMedium {
		errs = append(errs, fmt.Errorf(
			"medium_max_minutes must be >= min(medium skip_minutes*3, 10) = %d (got %d)",
			minMedium, cfg.MediumMaxMinutes))
	}

	if cfg.ShortMaxMinutes >= cfg.MediumMaxMinutes {
		errs = append(errs, fmt.Errorf(
			"short_max_minutes (%d) must be strictly less than medium_max_minutes (%d)",
			cfg.ShortMaxMinutes, cfg.MediumMaxMinutes))
	}

	if cfg.MediumMaxMinutes <= cfg.Long.AnalysisMinutes+10 {
		errs = append(errs, fmt.Errorf(
			"medium_max_minutes (%d) must be > long analysis_minutes+10 (%d)",
			cfg.MediumMaxMinutes, cfg.Long.AnalysisMinutes+10))
	}

	return errors.Join(errs...)
}

func validateConfirm(offsets []int) error {
	if len(offsets) == 0 {
		return errors.New("confirm_sec must not be empty")
	}

	prev := 0
	for _, o := range offsets {
		if o < 1 {
			return fmt.Errorf("confirm_sec values must be >= 1 (got %d)", o)
		}

		if o <= prev {
			return fmt.Errorf("confirm_sec must be strictly increasing (got %v)", offsets)
		}

		prev = o
	}

	return nil
}

// Options converts the configuration into scan options.
func (c *Config) Options() trimmer.Options {
	return trimmer.Options{
		SamplesPerSec:    c.SamplesPerSec,
		ShortMaxMinutes:  c.ShortMaxMinutes,
		MediumMaxMinutes: c.MediumMaxMinutes,
		Short:            c.Short.params(),
		Medium:           c.Medium.params(),
		Long:             c.Long.params(),
	}
}

func (t Tier) params() trimmer.TierParams {
	return trimmer.TierParams{
		ThresholdDB:       t.ThresholdDB,
		WindowSec:         t.WindowSec,
		ConfirmOffsetsSec: t.ConfirmSec,
		SkipMinutes:       t.SkipMinutes,
		AnalysisMinutes:   t.AnalysisMinutes,
	}
}
