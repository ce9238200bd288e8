package neat

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Fixed design-level constants (spec §4.2). DefaultConfig copies them into
// the matching Config fields. SameSpecies and BreedChild read the delta and
// crossover values from Config, so an ini file can change those; PointMutate
// reads PerturbChance and the Driver reads TimeoutConstant directly, so the
// perturb_chance and timeout_constant keys are loaded but change nothing.
const (
	DeltaDisjoint   = 2.0
	DeltaWeights    = 0.4
	DeltaThreshold  = 1.0
	CrossoverChance = 0.75
	PerturbChance   = 0.90
	TimeoutConstant = 20
)

// Config holds every tunable knob of the evolutionary run. Unlike the
// teacher's multi-section NeatConfig/GenomeConfig/..., neatroids has a
// single flat parameter space (it ports one fixed C++ tuning table rather
// than neat-python's many pluggable subsystems), so one [NEAT] section
// maps onto one struct.
type Config struct {
	PopSize         int     `ini:"pop_size"`
	StaleSpecies    int     `ini:"stale_species"`
	TimeoutConstant int     `ini:"timeout_constant"`

	DeltaDisjoint   float32 `ini:"delta_disjoint"`
	DeltaWeights    float32 `ini:"delta_weights"`
	DeltaThreshold  float32 `ini:"delta_threshold"`
	CrossoverChance float32 `ini:"crossover_chance"`
	PerturbChance   float32 `ini:"perturb_chance"`
	StepSize        float32 `ini:"step_size"`

	// Initial per-genome mutation rates.
	Connections float32 `ini:"rate_connections"`
	Link        float32 `ini:"rate_link"`
	Bias        float32 `ini:"rate_bias"`
	Node        float32 `ini:"rate_node"`
	Enable      float32 `ini:"rate_enable"`
	Disable     float32 `ini:"rate_disable"`

	BoxRadius int `ini:"box_radius"`
	BoardW    int `ini:"board_w_cells"`
	BoardH    int `ini:"board_h_cells"`

	Seed int64 `ini:"rng_seed"`
}

// DefaultConfig returns the tuning table exactly as fixed in spec §4.2 and
// the original AI.cpp static consts, unmodified by any ini file.
func DefaultConfig() *Config {
	return &Config{
		PopSize:         300,
		StaleSpecies:    15,
		TimeoutConstant: TimeoutConstant,

		DeltaDisjoint:   DeltaDisjoint,
		DeltaWeights:    DeltaWeights,
		DeltaThreshold:  DeltaThreshold,
		CrossoverChance: CrossoverChance,
		PerturbChance:   PerturbChance,
		StepSize:        0.1,

		Connections: 0.25,
		Link:        2.0,
		Bias:        0.4,
		Node:        0.5,
		Enable:      0.2,
		Disable:     0.4,

		BoxRadius: 100,
		BoardW:    8,
		BoardH:    8,

		Seed: 42,
	}
}

// LoadConfig loads an ini file over DefaultConfig's values. Any key absent
// from the file keeps the spec default rather than zeroing out, matching
// the teacher's "missing keys fall back to defaults" convention.
func LoadConfig(filePath string) (*Config, error) {
	src, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %q: %w", filePath, err)
	}

	cfg := DefaultConfig()
	section := src.Section("NEAT")
	if err := section.MapTo(cfg); err != nil {
		return nil, fmt.Errorf("failed to map [NEAT] section: %w", err)
	}

	if cfg.PopSize <= 0 {
		return nil, fmt.Errorf("config error: pop_size must be positive")
	}
	if cfg.StaleSpecies <= 0 {
		return nil, fmt.Errorf("config error: stale_species must be positive")
	}
	if cfg.DeltaThreshold <= 0 {
		return nil, fmt.Errorf("config error: delta_threshold must be positive")
	}
	if cfg.CrossoverChance < 0 || cfg.CrossoverChance > 1 {
		return nil, fmt.Errorf("config error: crossover_chance must be between 0 and 1")
	}
	if cfg.PerturbChance < 0 || cfg.PerturbChance > 1 {
		return nil, fmt.Errorf("config error: perturb_chance must be between 0 and 1")
	}
	if cfg.BoxRadius <= 0 {
		return nil, fmt.Errorf("config error: box_radius must be positive")
	}
	if cfg.BoardW <= 0 || cfg.BoardH <= 0 {
		return nil, fmt.Errorf("config error: board_w_cells and board_h_cells must be positive")
	}

	return cfg, nil
}
