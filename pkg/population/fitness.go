package population

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/individual"
)

// Stats summarizes one scored generation.
type Stats struct {
	BestFitness       float64 `json:"best_fitness"`
	WorstFitness      float64 `json:"worst_fitness"`
	AvgFitness        float64 `json:"avg_fitness"`
	BestWeighted      float64 `json:"best_weighted"`
	WorstWeighted     float64 `json:"worst_weighted"`
	AvgWeighted       float64 `json:"avg_weighted"`
	SmallestSize      int     `json:"smallest_size"`
	LargestSize       int     `json:"largest_size"`
	AvgSize           float64 `json:"avg_size"`
	TotalNodes        int     `json:"total_nodes"`
	Parsimony         float64 `json:"parsimony"`
	BestIndex         int     `json:"best_index"`
	BestWeightedIndex int     `json:"best_weighted_index"`
}

// CalculateFitness rescores the current generation: raw fitness for every
// individual first, then the parsimony coefficient (a population statistic),
// then weighted fitness, then the summary statistics.
func (p *Population) CalculateFitness() error {
	stats, err := p.score(p.individuals)
	if err != nil {
		return err
	}
	p.stats = stats
	return nil
}

func (p *Population) score(inds []*individual.Individual) (Stats, error) {
	for i, ind := range inds {
		if _, err := ind.EvaluateFitness(p.data.Samples); err != nil {
			return Stats{}, fmt.Errorf("individual %d: %w", i, err)
		}
	}
	c := p.parsimonyCoefficient(inds)
	for _, ind := range inds {
		ind.ApplyParsimony(c)
	}
	stats := summarize(inds)
	stats.Parsimony = c
	return stats, nil
}

// ParsimonyCoefficient returns the coefficient the current generation's
// weighted fitness was computed with.
func (p *Population) ParsimonyCoefficient() float64 {
	return p.stats.Parsimony
}

// parsimonyCoefficient implements covariant parsimony pressure for a
// minimized fitness: c = -Cov(size, fitness) / Var(size), taken over the
// individuals with finite fitness. It falls back to 0 when sizes do not vary
// or the estimate is not finite.
func (p *Population) parsimonyCoefficient(inds []*individual.Individual) float64 {
	if p.cfg.Parsimony.Mode != ParsimonyCovariance {
		return p.cfg.Parsimony.Coefficient
	}

	sizes := make([]float64, 0, len(inds))
	fits := make([]float64, 0, len(inds))
	for _, ind := range inds {
		if math.IsInf(ind.Fitness(), 0) {
			continue
		}
		sizes = append(sizes, float64(ind.Size()))
		fits = append(fits, ind.Fitness())
	}
	if len(sizes) < 2 {
		return 0
	}
	variance := stat.Variance(sizes, nil)
	if variance == 0 {
		return 0
	}
	c := -stat.Covariance(sizes, fits, nil) / variance
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	return c
}

func summarize(inds []*individual.Individual) Stats {
	s := Stats{
		BestFitness:   math.Inf(1),
		WorstFitness:  math.Inf(-1),
		BestWeighted:  math.Inf(1),
		WorstWeighted: math.Inf(-1),
		SmallestSize:  math.MaxInt,
	}
	fits := make([]float64, len(inds))
	weighted := make([]float64, len(inds))
	sizes := make([]float64, len(inds))

	for i, ind := range inds {
		f, w, size := ind.Fitness(), ind.Weighted(), ind.Size()
		fits[i], weighted[i], sizes[i] = f, w, float64(size)

		if f < s.BestFitness || i == 0 {
			s.BestFitness, s.BestIndex = f, i
		}
		if f > s.WorstFitness {
			s.WorstFitness = f
		}
		if w < s.BestWeighted || i == 0 {
			s.BestWeighted, s.BestWeightedIndex = w, i
		}
		if w > s.WorstWeighted {
			s.WorstWeighted = w
		}
		if size < s.SmallestSize {
			s.SmallestSize = size
		}
		if size > s.LargestSize {
			s.LargestSize = size
		}
		s.TotalNodes += size
	}

	s.AvgFitness = stat.Mean(fits, nil)
	s.AvgWeighted = stat.Mean(weighted, nil)
	s.AvgSize = stat.Mean(sizes, nil)
	return s
}
