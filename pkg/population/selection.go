package population

import (
	"cmp"

	"golang.org/x/exp/slices"
)

// Select runs one tournament: TournamentSize uniform draws with replacement,
// returning the index with the lowest fitness. Weighted fitness is compared
// when SelectOnWeighted is set.
func (p *Population) Select() int {
	n := len(p.individuals)
	bestIdx := p.rng.Intn(n)
	bestFit := p.selectionKey(bestIdx)

	for i := 1; i < p.cfg.TournamentSize; i++ {
		idx := p.rng.Intn(n)
		if f := p.selectionKey(idx); f < bestFit {
			bestIdx = idx
			bestFit = f
		}
	}
	return bestIdx
}

func (p *Population) selectionKey(i int) float64 {
	if p.cfg.SelectOnWeighted {
		return p.individuals[i].Weighted()
	}
	return p.individuals[i].Fitness()
}

// Elites returns the indices of the ElitismCount individuals with the lowest
// raw fitness, best first. Ties keep population order. Ranking is always by
// raw fitness, even when selection is weighted.
func (p *Population) Elites() []int {
	indices := make([]int, len(p.individuals))
	for i := range indices {
		indices[i] = i
	}
	slices.SortStableFunc(indices, func(a, b int) int {
		return cmp.Compare(p.individuals[a].Fitness(), p.individuals[b].Fitness())
	})
	return indices[:p.cfg.ElitismCount]
}
