package population

import (
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/individual"
)

// Crossover performs subtree crossover and returns one offspring: a copy of
// parent1 with the subtree at its crossover point replaced by a subtree of
// parent2. Each parent independently targets an operator node with
// probability NonterminalCrossoverRate. Neither parent is modified.
func (p *Population) Crossover(parent1, parent2 *individual.Individual) (*individual.Individual, error) {
	c1 := parent1.Clone()
	c2 := parent2.Clone()

	at, err := c1.CrossoverPoint(p.rng, p.rng.Float64() < p.cfg.NonterminalCrossoverRate)
	if err != nil {
		return nil, err
	}
	from, err := c2.CrossoverPoint(p.rng, p.rng.Float64() < p.cfg.NonterminalCrossoverRate)
	if err != nil {
		return nil, err
	}

	// c2 is discarded, so its subtree can move without another copy.
	c1.Splice(at, from.Node)
	return c1, nil
}
