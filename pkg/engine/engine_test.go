package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/dataset"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/logx"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/population"
)

func linearData(t *testing.T) *dataset.Dataset {
	t.Helper()
	var samples []dataset.Sample
	for x := -5.0; x <= 5; x++ {
		samples = append(samples, dataset.Sample{X: []float64{x}, Y: 2 * x})
	}
	ds, err := dataset.New(samples)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Population.Size = 20
	cfg.Generations = 8
	cfg.Seed = 42
	return cfg
}

func newQuietEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg, linearData(t))
	if err != nil {
		t.Fatal(err)
	}
	e.SetLogger(logx.Discard())
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestEngine_SmallRun(t *testing.T) {
	cfg := smallConfig()
	e := newQuietEngine(t, cfg)

	report, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if report.BestExpression == "" {
		t.Error("Expected a best expression")
	}
	if report.Generations != cfg.Generations {
		t.Errorf("Expected %d generations, got %d", cfg.Generations, report.Generations)
	}
	if report.RunID != e.RunID() || report.Seed != 42 {
		t.Errorf("Unexpected run identity: %s seed %d", report.RunID, report.Seed)
	}
	if report.BestFoundAtGen > report.Generations {
		t.Errorf("BestFoundAtGen %d > Generations %d", report.BestFoundAtGen, report.Generations)
	}
	if len(report.History) != 0 {
		t.Errorf("History should only be kept in verbose mode, got %d entries", len(report.History))
	}

	history, err := e.History(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != cfg.Generations+1 {
		t.Fatalf("Expected %d stored generations, got %d", cfg.Generations+1, len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].BestFitness > history[i-1].BestFitness {
			t.Errorf("Best fitness rose from %v to %v at generation %d",
				history[i-1].BestFitness, history[i].BestFitness, i)
		}
	}
	if report.BestFitness != history[len(history)-1].BestFitness {
		t.Errorf("Final best %v differs from last generation best %v",
			report.BestFitness, history[len(history)-1].BestFitness)
	}

	t.Logf("Best after %d generations: fitness=%.6f, %s",
		report.Generations, float64(report.BestFitness), report.BestExpression)
}

func TestEngine_Deterministic(t *testing.T) {
	r1, err := newQuietEngine(t, smallConfig()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	r2, err := newQuietEngine(t, smallConfig()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if r1.BestExpression != r2.BestExpression || r1.BestFitness != r2.BestFitness {
		t.Errorf("Same seed gave different results: %s vs %s", r1.BestExpression, r2.BestExpression)
	}
	if r1.RunID == r2.RunID {
		t.Error("Expected distinct run IDs")
	}
}

func TestEngine_VerboseKeepsHistory(t *testing.T) {
	cfg := smallConfig()
	cfg.Generations = 3
	cfg.Verbose = true
	e := newQuietEngine(t, cfg)

	report, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(report.History) != 4 {
		t.Fatalf("Expected 4 generation reports, got %d", len(report.History))
	}
	for i, r := range report.History {
		if r.Generation != i {
			t.Errorf("History[%d] has generation %d", i, r.Generation)
		}
	}
}

func TestEngine_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newQuietEngine(t, smallConfig()).Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if report.Generations != 0 {
		t.Errorf("Expected the run to stop at generation 0, got %d", report.Generations)
	}
}

func TestEngine_LogsProgress(t *testing.T) {
	var buf bytes.Buffer
	e := newQuietEngine(t, smallConfig())
	e.SetLogger(logx.New(&buf))

	if _, err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "[RUN ]") || !strings.Contains(out, "NEW BEST") {
		t.Errorf("Missing run or best lines in log:\n%s", out)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	ds := linearData(t)

	cfg := smallConfig()
	cfg.Generations = -1
	if _, err := New(cfg, ds); err == nil {
		t.Error("Expected error for negative generations")
	}

	cfg = smallConfig()
	cfg.Format = "xml"
	if _, err := New(cfg, ds); err == nil {
		t.Error("Expected error for unknown format")
	}

	cfg = smallConfig()
	cfg.Store = "bogus"
	if _, err := New(cfg, ds); err == nil {
		t.Error("Expected error for unknown store")
	}

	if _, err := New(smallConfig(), nil); err == nil {
		t.Error("Expected error for missing dataset")
	}
}

func TestEngine_InvalidPopulationConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Population.TournamentSize = 0
	_, err := newQuietEngine(t, cfg).Run(context.Background())
	if err == nil {
		t.Fatal("Expected population config error")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	content := `
generations = 7
format = "json"

[population]
size = 30
elitism = 4

[population.parsimony]
mode = "constant"
coefficient = 0.01
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generations != 7 || cfg.Format != "json" {
		t.Errorf("Top-level keys not applied: %+v", cfg)
	}
	if cfg.Population.Size != 30 || cfg.Population.ElitismCount != 4 {
		t.Errorf("Population keys not applied: %+v", cfg.Population)
	}
	if cfg.Population.Parsimony.Mode != population.ParsimonyConstant || cfg.Population.Parsimony.Coefficient != 0.01 {
		t.Errorf("Parsimony keys not applied: %+v", cfg.Population.Parsimony)
	}
	if cfg.Population.TournamentSize != 3 || cfg.Population.MutationRate != 0.05 {
		t.Errorf("Defaults lost for keys absent from the file: %+v", cfg.Population)
	}
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("populaton_size = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestWriteJSONFinal_NonFinite(t *testing.T) {
	r := FinalReport{
		RunID:          "r",
		Config:         DefaultConfig(),
		BestExpression: "X_0",
		BestFitness:    Float(math.Inf(1)),
	}
	var buf bytes.Buffer
	if err := WriteJSONFinal(&buf, r); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded["best_fitness"] != "+Inf" {
		t.Errorf("Expected \"+Inf\", got %v", decoded["best_fitness"])
	}

	var back FinalReport
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(float64(back.BestFitness), 1) {
		t.Errorf("Expected +Inf after decoding, got %v", back.BestFitness)
	}
}

func TestWriteTextFinal(t *testing.T) {
	var buf bytes.Buffer
	WriteTextFinal(&buf, FinalReport{RunID: "abc", BestExpression: "(X_0 + X_0)", BestFitness: 0.5})
	out := buf.String()
	for _, want := range []string{"abc", "(X_0 + X_0)", "0.500000"} {
		if !strings.Contains(out, want) {
			t.Errorf("Missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteStatsTable(t *testing.T) {
	reports := []GenerationReport{
		{Generation: 0, BestFitness: 3, AvgFitness: Float(math.Inf(1)), BestExpression: "X_0"},
		{Generation: 1, BestFitness: 1, AvgFitness: 2, BestExpression: "(X_0 + X_0)"},
	}
	var buf bytes.Buffer
	if err := WriteStatsTable(&buf, reports); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "gen") || !strings.Contains(lines[1], "+Inf") {
		t.Errorf("Unexpected table:\n%s", buf.String())
	}
}

func TestWritePlot(t *testing.T) {
	e := newQuietEngine(t, smallConfig())
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	history, err := e.History(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	history[0].AvgFitness = Float(math.Inf(1))

	path := filepath.Join(t.TempDir(), "fitness.png")
	if err := WritePlot(path, "y = 2x", history); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("Plot file is empty")
	}

	if err := WritePlot(path, "empty", nil); err == nil {
		t.Error("Expected error for empty history")
	}
}
