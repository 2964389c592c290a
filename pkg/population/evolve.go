package population

import (
	"fmt"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/individual"
)

// Evolve replaces the population with the next generation. Slots
// [0, ElitismCount) receive unmodified copies of the elites; every other slot
// is filled by tournament selection of two parents, crossover and mutation.
// The new generation is scored before it replaces the old one, so on error
// the population is left unchanged.
func (p *Population) Evolve() error {
	n := len(p.individuals)
	next := make([]*individual.Individual, 0, n)

	for _, idx := range p.Elites() {
		next = append(next, p.individuals[idx].Clone())
	}

	for len(next) < n {
		p1 := p.individuals[p.Select()]
		p2 := p.individuals[p.Select()]

		child, err := p.Crossover(p1, p2)
		if err != nil {
			return fmt.Errorf("generation %d: crossover: %w", p.generation+1, err)
		}
		child.Mutate(p.rng, p.pool, p.cfg.MutationRate)
		next = append(next, child)
	}

	stats, err := p.score(next)
	if err != nil {
		return fmt.Errorf("generation %d: %w", p.generation+1, err)
	}

	p.individuals = next
	p.stats = stats
	p.generation++
	return nil
}
