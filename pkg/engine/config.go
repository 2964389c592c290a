package engine

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/population"
)

// Config holds all parameters for an evolutionary run.
type Config struct {
	Population  population.Config `toml:"population" json:"population"`
	DataPath    string            `toml:"data" json:"data"`
	Generations int               `toml:"generations" json:"generations"`
	Seed        int64             `toml:"seed" json:"seed"`
	Format      string            `toml:"format" json:"format"` // "text" or "json"
	Verbose     bool              `toml:"verbose" json:"verbose"`
	ReportEvery int               `toml:"report_every" json:"report_every"`
	OutDir      string            `toml:"outdir" json:"outdir"`
	Store       string            `toml:"store" json:"store"` // "memory" or "sqlite"
	StorePath   string            `toml:"store_path" json:"store_path"`
	Plot        bool              `toml:"plot" json:"plot"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Population:  population.DefaultConfig(),
		Generations: 50,
		Seed:        0, // 0 = random
		Format:      "text",
		ReportEvery: 20,
		Store:       "memory",
		StorePath:   "runs.db",
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig, so the file only
// needs the keys it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	md, err := toml.NewDecoder(f).Decode(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Generations < 0 {
		return fmt.Errorf("generations must be >= 0, got %d", c.Generations)
	}
	switch c.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown output format: %s (available: text, json)", c.Format)
	}
	return nil
}
