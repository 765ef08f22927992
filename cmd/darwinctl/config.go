package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"darwin/pkg/darwin"
)

// runFileConfig mirrors darwin.RunRequest with serialization tags so run
// parameters can be kept in a checked-in config file. The time budget is
// given as a duration string ("30s", "2m").
type runFileConfig struct {
	Problem      string   `json:"problem" yaml:"problem"`
	Population   int      `json:"population" yaml:"population"`
	SurvivalRate *float64 `json:"survival_rate" yaml:"survival_rate"`
	Generations  int      `json:"generations" yaml:"generations"`
	Seed         int64    `json:"seed" yaml:"seed"`
	Workers      int      `json:"workers" yaml:"workers"`
	Selection    string   `json:"selection" yaml:"selection"`
	SampleSize   int      `json:"sample_size" yaml:"sample_size"`
	FitnessGoal  *float64 `json:"fitness_goal" yaml:"fitness_goal"`
	SteadyWindow int      `json:"steady_window" yaml:"steady_window"`
	TimeBudget   string   `json:"time_budget" yaml:"time_budget"`
	EvalBudget   int      `json:"evaluations_limit" yaml:"evaluations_limit"`
	FitnessCache int      `json:"fitness_cache" yaml:"fitness_cache"`
}

func loadRunRequestFromConfig(path string) (darwin.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return darwin.RunRequest{}, err
	}

	var cfg runFileConfig
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return darwin.RunRequest{}, fmt.Errorf("parse yaml config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return darwin.RunRequest{}, fmt.Errorf("parse json config: %w", err)
		}
	}

	req := darwin.RunRequest{
		Problem:       cfg.Problem,
		Population:    cfg.Population,
		SurvivalRate:  cfg.SurvivalRate,
		Generations:   cfg.Generations,
		Seed:          cfg.Seed,
		Workers:       cfg.Workers,
		Selection:     cfg.Selection,
		SampleSize:    cfg.SampleSize,
		TargetFitness: cfg.FitnessGoal,
		SteadyWindow:  cfg.SteadyWindow,
		EvalBudget:    cfg.EvalBudget,
		FitnessCache:  cfg.FitnessCache,
	}
	if cfg.TimeBudget != "" {
		budget, err := time.ParseDuration(cfg.TimeBudget)
		if err != nil {
			return darwin.RunRequest{}, fmt.Errorf("parse time budget: %w", err)
		}
		req.TimeBudget = budget
	}
	return req, nil
}

func loadOrDefaultRunRequest(configPath string) (darwin.RunRequest, error) {
	if configPath == "" {
		return darwin.RunRequest{}, nil
	}
	req, err := loadRunRequestFromConfig(configPath)
	if err != nil {
		return darwin.RunRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

// overrideFromFlags applies explicitly set command-line flags on top of a
// config-file request.
func overrideFromFlags(req *darwin.RunRequest, set map[string]bool, flagValue map[string]any) {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "problem":
			req.Problem = v.(string)
		case "pop":
			req.Population = v.(int)
		case "survival-rate":
			rate := v.(float64)
			req.SurvivalRate = &rate
		case "gens":
			req.Generations = v.(int)
		case "seed":
			req.Seed = v.(int64)
		case "workers":
			req.Workers = v.(int)
		case "selection":
			req.Selection = v.(string)
		case "sample-size":
			req.SampleSize = v.(int)
		case "steady-window":
			req.SteadyWindow = v.(int)
		case "time-budget":
			req.TimeBudget = v.(time.Duration)
		case "evaluations-limit":
			req.EvalBudget = v.(int)
		case "fitness-cache":
			req.FitnessCache = v.(int)
		}
	}
}
