//go:build sqlite

package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run RunRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, seed, config, generations, best_expression, best_fitness)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			generations = excluded.generations,
			best_expression = excluded.best_expression,
			best_fitness = excluded.best_fitness
	`, run.ID, run.StartedAt.UnixNano(), run.Seed, run.Config, run.Generations, run.BestExpression, run.BestFitness)
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (RunRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return RunRecord{}, false, err
	}

	var (
		run     RunRecord
		started int64
	)
	err = db.QueryRowContext(ctx, `
		SELECT id, started_at, seed, config, generations, best_expression, best_fitness
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &started, &run.Seed, &run.Config, &run.Generations, &run.BestExpression, &run.BestFitness)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, false, nil
		}
		return RunRecord{}, false, err
	}
	run.StartedAt = time.Unix(0, started).UTC()
	return run, true, nil
}

func (s *SQLiteStore) SaveGeneration(ctx context.Context, gen GenerationRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO generations (
			run_id, generation, best_fitness, worst_fitness, avg_fitness,
			best_weighted, worst_weighted, avg_weighted,
			smallest_size, largest_size, avg_size, total_nodes, parsimony, best
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			best_fitness = excluded.best_fitness,
			worst_fitness = excluded.worst_fitness,
			avg_fitness = excluded.avg_fitness,
			best_weighted = excluded.best_weighted,
			worst_weighted = excluded.worst_weighted,
			avg_weighted = excluded.avg_weighted,
			smallest_size = excluded.smallest_size,
			largest_size = excluded.largest_size,
			avg_size = excluded.avg_size,
			total_nodes = excluded.total_nodes,
			parsimony = excluded.parsimony,
			best = excluded.best
	`, gen.RunID, gen.Generation, gen.BestFitness, gen.WorstFitness, gen.AvgFitness,
		gen.BestWeighted, gen.WorstWeighted, gen.AvgWeighted,
		gen.SmallestSize, gen.LargestSize, gen.AvgSize, gen.TotalNodes, gen.Parsimony, gen.Best)
	return err
}

func (s *SQLiteStore) Generations(ctx context.Context, runID string) ([]GenerationRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT run_id, generation, best_fitness, worst_fitness, avg_fitness,
			best_weighted, worst_weighted, avg_weighted,
			smallest_size, largest_size, avg_size, total_nodes, parsimony, best
		FROM generations
		WHERE run_id = ?
		ORDER BY generation ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GenerationRecord
	for rows.Next() {
		var g GenerationRecord
		if err := rows.Scan(&g.RunID, &g.Generation, &g.BestFitness, &g.WorstFitness, &g.AvgFitness,
			&g.BestWeighted, &g.WorstWeighted, &g.AvgWeighted,
			&g.SmallestSize, &g.LargestSize, &g.AvgSize, &g.TotalNodes, &g.Parsimony, &g.Best); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("sqlite store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			config BLOB,
			generations INTEGER NOT NULL,
			best_expression TEXT NOT NULL,
			best_fitness REAL
		)`,
		`CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			best_fitness REAL,
			worst_fitness REAL,
			avg_fitness REAL,
			best_weighted REAL,
			worst_weighted REAL,
			avg_weighted REAL,
			smallest_size INTEGER NOT NULL,
			largest_size INTEGER NOT NULL,
			avg_size REAL,
			total_nodes INTEGER NOT NULL,
			parsimony REAL,
			best TEXT NOT NULL,
			PRIMARY KEY (run_id, generation)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
