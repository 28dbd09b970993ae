// Package config resolves vitals configuration from a YAML file,
// environment variables, and CLI flags, with each value tracking where it
// came from (CLI wins over env, env wins over config, config over defaults).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hurttlocker/vitals/internal/normalize"
	"gopkg.in/yaml.v3"
)

type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

type ResolveOptions struct {
	ConfigPath   string
	CLIDBPath    string
	CLIMaxWeight string
	CLIMaxHeight string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	DBPath       ResolvedValue `json:"db_path"`
	MaxWeightLbs ResolvedValue `json:"max_weight_lbs"`
	MaxHeightIn  ResolvedValue `json:"max_height_in"`
}

type fileConfig struct {
	DBPath string `yaml:"db_path"`
	Limits struct {
		MaxWeightLbs float64 `yaml:"max_weight_lbs"`
		MaxHeightIn  float64 `yaml:"max_height_in"`
	} `yaml:"limits"`
}

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.vitals/vitals.db"

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vitals", "config.yaml")
}

func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{
		ConfigPath:   path,
		DBPath:       ResolvedValue{Value: DefaultDBPath, Source: SourceDefault, From: "built-in default"},
		MaxWeightLbs: defaultFloat(normalize.DefaultMaxWeightLbs),
		MaxHeightIn:  defaultFloat(normalize.DefaultMaxHeightIn),
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return out, err
	}

	if cfg != nil {
		apply(&out.DBPath, cfg.DBPath, SourceConfig, path)
		if cfg.Limits.MaxWeightLbs > 0 {
			apply(&out.MaxWeightLbs, formatFloat(cfg.Limits.MaxWeightLbs), SourceConfig, path)
		}
		if cfg.Limits.MaxHeightIn > 0 {
			apply(&out.MaxHeightIn, formatFloat(cfg.Limits.MaxHeightIn), SourceConfig, path)
		}
	}

	applyEnv(&out.DBPath, "VITALS_DB")
	applyEnv(&out.DBPath, "VITALS_DB_PATH")
	applyEnv(&out.MaxWeightLbs, "VITALS_MAX_WEIGHT_LBS")
	applyEnv(&out.MaxHeightIn, "VITALS_MAX_HEIGHT_IN")

	apply(&out.DBPath, opts.CLIDBPath, SourceCLI, "--db")
	apply(&out.MaxWeightLbs, opts.CLIMaxWeight, SourceCLI, "--max-weight")
	apply(&out.MaxHeightIn, opts.CLIMaxHeight, SourceCLI, "--max-height")

	if out.DBPath.Value != "" {
		out.DBPath.Value = expandUserPath(out.DBPath.Value)
	}

	return out, nil
}

// Limits converts the resolved ceiling strings into normalize.Limits.
// A malformed value reports which source supplied it.
func (r ResolvedConfig) Limits() (normalize.Limits, error) {
	w, err := strconv.ParseFloat(r.MaxWeightLbs.Value, 64)
	if err != nil {
		return normalize.Limits{}, fmt.Errorf("max weight from %s: %w", r.MaxWeightLbs.From, err)
	}
	h, err := strconv.ParseFloat(r.MaxHeightIn.Value, 64)
	if err != nil {
		return normalize.Limits{}, fmt.Errorf("max height from %s: %w", r.MaxHeightIn.From, err)
	}
	return normalize.Limits{MaxWeightLbs: w, MaxHeightIn: h}, nil
}

func defaultFloat(v float64) ResolvedValue {
	return ResolvedValue{Value: formatFloat(v), Source: SourceDefault, From: "built-in default"}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
