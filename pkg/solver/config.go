package solver

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// A number chosen such that all practical types are less than this depth,
// but we don't want to stack overflow.
const defaultTypeDepthLimit = 20

// Step budget for a single top-level subset query.
const defaultSubsetGas = 25

// ConfigFileName is the per-project configuration file, looked up in the
// project root.
const ConfigFileName = "adder.toml"

// Config tunes the solver's resource budgets and debugging output.
type Config struct {
	// TypeDepthLimit bounds expansion and forcing depth; deeper subtrees
	// degrade to Any.
	TypeDepthLimit int `toml:"type_depth_limit,omitempty"`

	// SubsetGas bounds the call depth of one top-level subset query;
	// exhaustion degrades to "not a subset".
	SubsetGas int `toml:"subset_gas,omitempty"`

	// TraceSolve enables slog debug output for every variable binding.
	TraceSolve bool `toml:"trace_solve,omitempty"`
}

// DefaultConfig returns the stock budgets.
func DefaultConfig() Config {
	return Config{
		TypeDepthLimit: defaultTypeDepthLimit,
		SubsetGas:      defaultSubsetGas,
	}
}

// LoadConfig reads adder.toml from dir if present, then applies ADDER_*
// environment overrides on top. A missing file is not an error.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "failed to parse %s", path)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ADDER_TYPE_DEPTH_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TypeDepthLimit = n
		}
	}
	if v := os.Getenv("ADDER_SUBSET_GAS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SubsetGas = n
		}
	}
	if v := os.Getenv("ADDER_TRACE_SOLVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.TraceSolve = b
		}
	}
}
