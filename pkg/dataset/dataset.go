package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned for a dataset with no samples.
	ErrEmpty = errors.New("dataset has no samples")
	// ErrArity is returned when samples disagree on their input count.
	ErrArity = errors.New("samples have inconsistent input counts")
)

// Sample is one training case: inputs X and the target Y.
type Sample struct {
	X []float64
	Y float64
}

// Dataset is the read-only training set shared by a whole run.
type Dataset struct {
	Header   []string
	Samples  []Sample
	VarCount int
}

// New validates samples and derives VarCount from the first one.
func New(samples []Sample) (*Dataset, error) {
	if len(samples) == 0 {
		return nil, ErrEmpty
	}
	varCount := len(samples[0].X)
	if varCount == 0 {
		return nil, fmt.Errorf("%w: sample 0 has no inputs", ErrArity)
	}
	for i, s := range samples {
		if len(s.X) != varCount {
			return nil, fmt.Errorf("%w: sample %d has %d inputs, want %d", ErrArity, i, len(s.X), varCount)
		}
	}
	return &Dataset{Samples: samples, VarCount: varCount}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Samples) }
