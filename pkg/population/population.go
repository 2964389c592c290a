package population

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/dataset"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/individual"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/pool"
)

// Population is a fixed-size, ordered set of individuals evolving against
// one shared dataset. It is not safe for concurrent use.
type Population struct {
	cfg         Config
	data        *dataset.Dataset
	pool        *pool.Pool
	rng         *rand.Rand
	individuals []*individual.Individual
	stats       Stats
	generation  int
}

// New validates cfg, builds the initial population with ramped half-and-half
// and scores it.
func New(cfg Config, data *dataset.Dataset, rng *rand.Rand) (*Population, error) {
	if data == nil || len(data.Samples) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrConfig, dataset.ErrEmpty)
	}
	if data.VarCount < 1 {
		return nil, fmt.Errorf("%w: %w: dataset has %d inputs", ErrConfig, dataset.ErrArity, data.VarCount)
	}
	for i, s := range data.Samples {
		if len(s.X) != data.VarCount {
			return nil, fmt.Errorf("%w: %w: sample %d has %d inputs, want %d",
				ErrConfig, dataset.ErrArity, i, len(s.X), data.VarCount)
		}
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrConfig)
	}
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	p, err := pool.New(data.VarCount, cfg.ConstMin, cfg.ConstMax)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	pop := &Population{
		cfg:  cfg,
		data: data,
		pool: p,
		rng:  rng,
	}
	pop.individuals = pop.rampedHalfAndHalf()
	if err := pop.CalculateFitness(); err != nil {
		return nil, err
	}
	return pop, nil
}

// rampedHalfAndHalf spreads the population across every depth in
// [DepthMin, DepthMax], alternating grow (even index) and full (odd index).
func (p *Population) rampedHalfAndHalf() []*individual.Individual {
	gradations := p.cfg.DepthMax - p.cfg.DepthMin + 1
	inds := make([]*individual.Individual, p.cfg.Size)
	for i := range inds {
		mode := pool.Grow
		if i%2 == 1 {
			mode = pool.Full
		}
		inds[i] = individual.Generate(p.rng, p.pool, p.cfg.DepthMin+i%gradations, mode)
	}
	return inds
}

// Config returns the normalized configuration.
func (p *Population) Config() Config { return p.cfg }

// Len returns the population size.
func (p *Population) Len() int { return len(p.individuals) }

// Generation returns how many times Evolve has completed.
func (p *Population) Generation() int { return p.generation }

// Individuals returns the current generation. Callers must not modify it.
func (p *Population) Individuals() []*individual.Individual { return p.individuals }

// Stats returns the statistics of the current generation.
func (p *Population) Stats() Stats { return p.stats }

// Best returns the individual with the lowest raw fitness.
func (p *Population) Best() *individual.Individual {
	return p.individuals[p.stats.BestIndex]
}

// BestWeighted returns the individual with the lowest weighted fitness.
func (p *Population) BestWeighted() *individual.Individual {
	return p.individuals[p.stats.BestWeightedIndex]
}

// String lists every individual on its own line, optionally prefixed with
// its raw and weighted fitness.
func (p *Population) String(includeFitness bool) string {
	var b strings.Builder
	for i, ind := range p.individuals {
		if includeFitness {
			fmt.Fprintf(&b, "%4d  %12.6f  %12.6f  %s\n", i, ind.Fitness(), ind.Weighted(), ind)
		} else {
			fmt.Fprintf(&b, "%s\n", ind)
		}
	}
	return b.String()
}
