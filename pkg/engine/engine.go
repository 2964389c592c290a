package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/dataset"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/expr"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/individual"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/logx"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/population"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/store"
)

// Engine runs the evolutionary search.
type Engine struct {
	cfg   Config
	data  *dataset.Dataset
	seed  int64
	rng   *rand.Rand
	runID string
	store store.Store
	log   *logx.Logger
}

// New creates a new engine from the given config. The store backend is
// opened here and initialized by Run; call Close when done.
func New(cfg Config, data *dataset.Dataset) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if data == nil || data.Len() == 0 {
		return nil, dataset.ErrEmpty
	}
	st, err := store.NewStore(cfg.Store, cfg.StorePath)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	l := logx.Stderr()
	l.Verbose = cfg.Verbose

	return &Engine{
		cfg:   cfg,
		data:  data,
		seed:  seed,
		rng:   rand.New(rand.NewSource(seed)),
		runID: uuid.NewString(),
		store: st,
		log:   l,
	}, nil
}

// SetLogger replaces the stderr logger.
func (e *Engine) SetLogger(l *logx.Logger) { e.log = l }

// RunID identifies this run in the store.
func (e *Engine) RunID() string { return e.runID }

// Seed returns the seed actually used, which differs from Config.Seed when
// that was 0.
func (e *Engine) Seed() int64 { return e.seed }

// Close releases the store.
func (e *Engine) Close() error { return store.CloseIfSupported(e.store) }

// Run evolves the population for cfg.Generations generations and returns the
// final report. Generation 0 is the initial population.
func (e *Engine) Run(ctx context.Context) (FinalReport, error) {
	if err := e.store.Init(ctx); err != nil {
		return FinalReport{}, fmt.Errorf("init %s store: %w", e.cfg.Store, err)
	}

	pcfg := e.cfg.Population
	e.log.Runf("run %s: %d samples, %d vars, population %d, %d generations, parsimony %s, seed %d",
		e.runID, e.data.Len(), e.data.VarCount, pcfg.Size, e.cfg.Generations, pcfg.Parsimony.Mode, e.seed)

	pop, err := population.New(pcfg, e.data, e.rng)
	if err != nil {
		return FinalReport{}, err
	}

	run := store.RunRecord{
		ID:        e.runID,
		StartedAt: time.Now().UTC(),
		Seed:      e.seed,
	}
	if run.Config, err = json.Marshal(e.cfg); err != nil {
		return FinalReport{}, err
	}
	if err := e.store.SaveRun(ctx, run); err != nil {
		return FinalReport{}, fmt.Errorf("save run: %w", err)
	}

	var (
		best        *individual.Individual
		bestFoundAt int
		genReports  []GenerationReport
	)
	for {
		gen := pop.Generation()
		stats := pop.Stats()
		improved := best == nil || stats.BestFitness < best.Fitness()
		if improved {
			best = pop.Best().Clone()
			bestFoundAt = gen
		}

		report := newGenerationReport(gen, stats, pop.Best())
		if err := e.store.SaveGeneration(ctx, report.record(e.runID)); err != nil {
			return FinalReport{}, fmt.Errorf("save generation %d: %w", gen, err)
		}
		if e.cfg.Verbose {
			genReports = append(genReports, report)
		}
		e.logGeneration(report, improved, best)

		if gen >= e.cfg.Generations {
			break
		}
		if err := ctx.Err(); err != nil {
			e.log.Warnf("stopped after generation %d: %v", gen, err)
			break
		}
		if err := pop.Evolve(); err != nil {
			return FinalReport{}, err
		}
	}

	run.Generations = pop.Generation()
	run.BestExpression = best.String()
	run.BestFitness = best.Fitness()
	if err := e.store.SaveRun(ctx, run); err != nil {
		return FinalReport{}, fmt.Errorf("save run: %w", err)
	}

	simple := expr.Simplify(best.Root())
	return FinalReport{
		RunID:          e.runID,
		Seed:           e.seed,
		Config:         e.cfg,
		Generations:    pop.Generation(),
		BestExpression: best.String(),
		BestLaTeX:      best.LaTeX(),
		Simplified:     simple.String(),
		SimplifiedTeX:  simple.LaTeX(),
		BestFitness:    Float(best.Fitness()),
		BestSize:       best.Size(),
		BestDepth:      best.Depth(),
		BestFoundAtGen: bestFoundAt,
		History:        genReports,
	}, nil
}

func (e *Engine) logGeneration(r GenerationReport, improved bool, best *individual.Individual) {
	switch {
	case e.cfg.Verbose:
		e.log.Debugf("%s", r.text())
	case improved:
		e.log.Bestf("[gen %d] NEW BEST fitness %.6f | size %d | %s",
			r.Generation, best.Fitness(), best.Size(), best)
	case e.cfg.ReportEvery > 0 && r.Generation%e.cfg.ReportEvery == 0:
		e.log.Genf("%s", r.text())
	}
}

// History reads this run's per-generation reports back from the store.
func (e *Engine) History(ctx context.Context) ([]GenerationReport, error) {
	recs, err := e.store.Generations(ctx, e.runID)
	if err != nil {
		return nil, err
	}
	out := make([]GenerationReport, len(recs))
	for i, rec := range recs {
		out[i] = reportFromRecord(rec)
	}
	return out, nil
}
