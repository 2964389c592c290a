package population

import (
	"errors"
	"fmt"
)

// ErrConfig wraps every configuration problem reported by New.
var ErrConfig = errors.New("invalid population config")

// Parsimony modes.
const (
	// ParsimonyConstant applies ParsimonyConfig.Coefficient unchanged.
	ParsimonyConstant = "constant"
	// ParsimonyCovariance derives the coefficient each generation from the
	// covariance of tree size and fitness (covariant parsimony pressure).
	ParsimonyCovariance = "covariance"
)

// ParsimonyConfig controls the size penalty in weighted fitness.
type ParsimonyConfig struct {
	Mode        string  `toml:"mode" json:"mode"`
	Coefficient float64 `toml:"coefficient" json:"coefficient"`
}

// Config holds the parameters of one population.
type Config struct {
	Size                     int             `toml:"size" json:"size"`
	MutationRate             float64         `toml:"mutation_rate" json:"mutation_rate"`
	NonterminalCrossoverRate float64         `toml:"nonterminal_crossover_rate" json:"nonterminal_crossover_rate"`
	TournamentSize           int             `toml:"tournament_size" json:"tournament_size"`
	DepthMin                 int             `toml:"depth_min" json:"depth_min"`
	DepthMax                 int             `toml:"depth_max" json:"depth_max"`
	ConstMin                 float64         `toml:"const_min" json:"const_min"`
	ConstMax                 float64         `toml:"const_max" json:"const_max"`
	ElitismCount             int             `toml:"elitism" json:"elitism"`
	Parsimony                ParsimonyConfig `toml:"parsimony" json:"parsimony"`
	SelectOnWeighted         bool            `toml:"select_on_weighted" json:"select_on_weighted"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Size:                     100,
		MutationRate:             0.05,
		NonterminalCrossoverRate: 0.9, // the 90/10 rule
		TournamentSize:           3,
		DepthMin:                 1,
		DepthMax:                 3,
		ConstMin:                 -10,
		ConstMax:                 10,
		ElitismCount:             2,
		Parsimony: ParsimonyConfig{
			Mode:        ParsimonyCovariance,
			Coefficient: 0,
		},
		SelectOnWeighted: true,
	}
}

// normalize validates cfg and returns the copy New works from: even size,
// ordered depth and constant ranges, even elitism no larger than the size.
func (cfg Config) normalize() (Config, error) {
	switch {
	case cfg.Size <= 0:
		return cfg, fmt.Errorf("%w: population size must be positive, got %d", ErrConfig, cfg.Size)
	case cfg.MutationRate < 0 || cfg.MutationRate > 1:
		return cfg, fmt.Errorf("%w: mutation rate %v outside [0, 1]", ErrConfig, cfg.MutationRate)
	case cfg.NonterminalCrossoverRate < 0 || cfg.NonterminalCrossoverRate > 1:
		return cfg, fmt.Errorf("%w: nonterminal crossover rate %v outside [0, 1]", ErrConfig, cfg.NonterminalCrossoverRate)
	case cfg.TournamentSize < 1:
		return cfg, fmt.Errorf("%w: tournament size must be at least 1, got %d", ErrConfig, cfg.TournamentSize)
	case cfg.DepthMin < 0 || cfg.DepthMax < 0:
		return cfg, fmt.Errorf("%w: depth range [%d, %d] must be non-negative", ErrConfig, cfg.DepthMin, cfg.DepthMax)
	case cfg.ElitismCount < 0:
		return cfg, fmt.Errorf("%w: elitism count must be non-negative, got %d", ErrConfig, cfg.ElitismCount)
	}

	switch cfg.Parsimony.Mode {
	case "":
		cfg.Parsimony.Mode = ParsimonyConstant
	case ParsimonyConstant, ParsimonyCovariance:
	default:
		return cfg, fmt.Errorf("%w: unknown parsimony mode %q", ErrConfig, cfg.Parsimony.Mode)
	}

	if cfg.Size%2 != 0 {
		cfg.Size++
	}
	if cfg.DepthMin > cfg.DepthMax {
		cfg.DepthMin, cfg.DepthMax = cfg.DepthMax, cfg.DepthMin
	}
	if cfg.ConstMin > cfg.ConstMax {
		cfg.ConstMin, cfg.ConstMax = cfg.ConstMax, cfg.ConstMin
	}
	if cfg.ElitismCount%2 != 0 {
		cfg.ElitismCount++
	}
	if cfg.ElitismCount > cfg.Size {
		cfg.ElitismCount = cfg.Size
	}
	return cfg, nil
}
