package individual

import (
	"errors"
	"fmt"
	"math"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/dataset"
)

var (
	// ErrNoSamples is returned when fitness is requested over an empty set.
	ErrNoSamples = errors.New("no samples to evaluate against")
	// ErrVariableIndex is returned when a tree reads an input the sample lacks.
	ErrVariableIndex = errors.New("variable index out of range")
)

// EvaluateFitness computes and caches the root-mean-square error of the tree
// over samples. Lower is better. Overflowing or undefined results are stored
// as +Inf so ranking stays total. The weighted fitness is reset to the raw
// value until ApplyParsimony runs.
func (ind *Individual) EvaluateFitness(samples []dataset.Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}

	var sum float64
	for i, s := range samples {
		got, ok := ind.root.Eval(s.X)
		if !ok {
			return 0, fmt.Errorf("%w: sample %d has %d inputs, tree %s", ErrVariableIndex, i, len(s.X), ind.root)
		}
		d := s.Y - got
		sum += d * d
	}

	fitness := math.Sqrt(sum / float64(len(samples)))
	if math.IsNaN(fitness) || math.IsInf(fitness, 0) {
		fitness = math.Inf(1)
	}
	ind.fitness = fitness
	ind.weighted = fitness
	return fitness, nil
}

// ApplyParsimony sets the weighted fitness to fitness + coefficient * size.
func (ind *Individual) ApplyParsimony(coefficient float64) float64 {
	w := ind.fitness + coefficient*float64(ind.Size())
	if math.IsNaN(w) {
		w = math.Inf(1)
	}
	ind.weighted = w
	return w
}
