package store

import (
	"context"
	"time"
)

// RunRecord describes one evolutionary run.
type RunRecord struct {
	ID             string
	StartedAt      time.Time
	Seed           int64
	Config         []byte // JSON-encoded engine config
	Generations    int
	BestExpression string
	BestFitness    float64
}

// GenerationRecord holds the statistics of one scored generation.
type GenerationRecord struct {
	RunID         string
	Generation    int
	BestFitness   float64
	WorstFitness  float64
	AvgFitness    float64
	BestWeighted  float64
	WorstWeighted float64
	AvgWeighted   float64
	SmallestSize  int
	LargestSize   int
	AvgSize       float64
	TotalNodes    int
	Parsimony     float64
	Best          string
}

// Store records run history. It never holds populations, only their
// statistics.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	SaveGeneration(ctx context.Context, gen GenerationRecord) error
	Generations(ctx context.Context, runID string) ([]GenerationRecord, error)
}
