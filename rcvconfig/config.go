// Package rcvconfig holds the tunable constants spec.md identifies as
// design parameters rather than hard invariants (§9's fractional
// tie-break tolerance; §4.2's round-cap safety multiplier; §8's
// conservation epsilon), loaded from YAML the way jhkimqd-chaos-utils
// loads its chaos-scenario configuration.
package rcvconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds rcvcore's tunable constants.
type Config struct {
	// Epsilon is the relative tolerance for the fractional engine's
	// end-of-tabulation conservation check (spec.md §8 Q3: default 1e-6
	// times N; Epsilon here is the 1e-6 coefficient).
	Epsilon float64 `yaml:"epsilon"`

	// FractionalTieTolerance is the |a-b| tolerance below which two
	// candidates' vote totals are treated as tied for the fractional
	// engine's "lowest votes" elimination rule (spec.md §9).
	FractionalTieTolerance float64 `yaml:"fractional_tie_tolerance"`

	// RoundCapMultiplier bounds the maximum number of rounds at
	// RoundCapMultiplier * len(candidates) (spec.md §4.2's safety
	// limit).
	RoundCapMultiplier int `yaml:"round_cap_multiplier"`
}

// Default returns spec.md's literal default tunables.
func Default() Config {
	return Config{
		Epsilon:                1e-6,
		FractionalTieTolerance: 1e-4,
		RoundCapMultiplier:     2,
	}
}

// Load decodes a YAML file at path into a Config, starting from
// Default() so an omitted field keeps its spec default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
