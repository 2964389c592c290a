package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/dataset"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/engine"
)

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg engine.Config) error {
	if cfg.DataPath == "" {
		return fmt.Errorf("no dataset given; use -data <file.csv>")
	}
	ds, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return err
	}

	e, err := engine.New(cfg, ds)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := e.Run(ctx)
	if err != nil {
		return err
	}

	switch cfg.Format {
	case "json":
		if err := engine.WriteJSONFinal(os.Stdout, report); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	default:
		engine.WriteTextFinal(os.Stdout, report)
	}

	if cfg.OutDir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	history, err := e.History(ctx)
	if err != nil {
		return err
	}

	statsPath := filepath.Join(cfg.OutDir, "stats.txt")
	if err := writeFile(statsPath, func(w io.Writer) error { return engine.WriteStatsTable(w, history) }); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", statsPath)

	if cfg.Plot {
		plotPath := filepath.Join(cfg.OutDir, "fitness.png")
		title := fmt.Sprintf("%s (run %s)", filepath.Base(cfg.DataPath), report.RunID[:8])
		if err := engine.WritePlot(plotPath, title, history); err != nil {
			return fmt.Errorf("writing plot: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", plotPath)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parseFlags builds the run config: defaults, then the -config TOML file if
// one is named, then every flag given explicitly on the command line.
func parseFlags(args []string, errOut io.Writer) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	var configPath string
	fs := newFlagSet(&cfg, &configPath)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if configPath == "" {
		return cfg, nil
	}

	fileCfg, err := engine.LoadConfig(configPath)
	if err != nil {
		return cfg, err
	}
	overlay := newFlagSet(&fileCfg, &configPath)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if err := overlay.Set(f.Name, f.Value.String()); err != nil && setErr == nil {
			setErr = err
		}
	})
	return fileCfg, setErr
}

func newFlagSet(cfg *engine.Config, configPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet("symreg", flag.ContinueOnError)
	pop := &cfg.Population

	fs.StringVar(&cfg.DataPath, "data", cfg.DataPath, "CSV dataset (header row; last column is the target)")
	fs.StringVar(configPath, "config", *configPath, "TOML config file; explicit flags override it")
	fs.IntVar(&pop.Size, "population", pop.Size, "population size")
	fs.IntVar(&cfg.Generations, "generations", cfg.Generations, "number of generations")
	fs.Float64Var(&pop.MutationRate, "mutation", pop.MutationRate, "per-node mutation rate")
	fs.Float64Var(&pop.NonterminalCrossoverRate, "crossover", pop.NonterminalCrossoverRate, "chance a crossover point is an operator node")
	fs.IntVar(&pop.TournamentSize, "tournament", pop.TournamentSize, "tournament size")
	fs.IntVar(&pop.DepthMin, "depthmin", pop.DepthMin, "minimum initial tree depth")
	fs.IntVar(&pop.DepthMax, "depthmax", pop.DepthMax, "maximum initial tree depth")
	fs.Float64Var(&pop.ConstMin, "constmin", pop.ConstMin, "lower bound for random constants")
	fs.Float64Var(&pop.ConstMax, "constmax", pop.ConstMax, "upper bound for random constants")
	fs.IntVar(&pop.ElitismCount, "elitism", pop.ElitismCount, "elites copied unchanged each generation (rounded up to even)")
	fs.StringVar(&pop.Parsimony.Mode, "parsimony", pop.Parsimony.Mode, "parsimony mode (constant, covariance)")
	fs.Float64Var(&pop.Parsimony.Coefficient, "parsimony-coef", pop.Parsimony.Coefficient, "size penalty per node in constant mode")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log every generation")
	fs.StringVar(&cfg.OutDir, "outdir", cfg.OutDir, "directory for the stats table and plot")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "run history backend (memory, sqlite)")
	fs.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "sqlite database path")
	fs.BoolVar(&cfg.Plot, "plot", cfg.Plot, "write fitness.png to -outdir")
	return fs
}
