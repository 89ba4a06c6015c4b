// Package config loads search settings from YAML with sane defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// MoveTime is the search budget per move.
	MoveTime time.Duration `yaml:"move_time"`
	// Exploration is the UCT exploration constant c.
	Exploration float64 `yaml:"exploration"`
	// PriorWeight is the evaluator-prior weight d (heuristic search only).
	PriorWeight float64 `yaml:"prior_weight"`
	// RolloutBatch is the number of playouts per expansion.
	RolloutBatch int `yaml:"rollout_batch"`
	// Workers is the playout worker pool size.
	Workers int `yaml:"workers"`
	// Sessions is the number of parallel pondering sessions.
	Sessions int `yaml:"sessions"`
	// EvaluatorURL points at a remote evaluator service; empty selects
	// rollout search.
	EvaluatorURL string `yaml:"evaluator_url"`
	// ResultsDir is where experiment CSVs are written.
	ResultsDir string `yaml:"results_dir"`
}

func Default() Config {
	return Config{
		MoveTime:     time.Second,
		Exploration:  1.41421356237,
		PriorWeight:  1.0,
		RolloutBatch: 4,
		Workers:      4,
		Sessions:     4,
		ResultsDir:   "results",
	}
}

// fileConfig is the on-disk shape. Durations are YAML strings like "500ms";
// pointers distinguish unset keys from explicit zeroes.
type fileConfig struct {
	MoveTime     string   `yaml:"move_time"`
	Exploration  *float64 `yaml:"exploration"`
	PriorWeight  *float64 `yaml:"prior_weight"`
	RolloutBatch *int     `yaml:"rollout_batch"`
	Workers      *int     `yaml:"workers"`
	Sessions     *int     `yaml:"sessions"`
	EvaluatorURL *string  `yaml:"evaluator_url"`
	ResultsDir   *string  `yaml:"results_dir"`
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if file.MoveTime != "" {
		moveTime, err := time.ParseDuration(file.MoveTime)
		if err != nil {
			return cfg, fmt.Errorf("invalid move_time: %w", err)
		}
		cfg.MoveTime = moveTime
	}
	if file.Exploration != nil {
		cfg.Exploration = *file.Exploration
	}
	if file.PriorWeight != nil {
		cfg.PriorWeight = *file.PriorWeight
	}
	if file.RolloutBatch != nil {
		cfg.RolloutBatch = *file.RolloutBatch
	}
	if file.Workers != nil {
		cfg.Workers = *file.Workers
	}
	if file.Sessions != nil {
		cfg.Sessions = *file.Sessions
	}
	if file.EvaluatorURL != nil {
		cfg.EvaluatorURL = *file.EvaluatorURL
	}
	if file.ResultsDir != nil {
		cfg.ResultsDir = *file.ResultsDir
	}
	return cfg, nil
}
