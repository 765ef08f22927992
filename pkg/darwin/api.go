// Package darwin is the embedding surface of the evolution engine: it binds
// the problem registry to run persistence so callers can launch runs and
// query their history without touching the internal packages.
package darwin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"darwin/internal/model"
	"darwin/internal/observe"
	"darwin/internal/problem"
	"darwin/internal/storage"
)

const defaultDBPath = "darwin.db"

type Options struct {
	StoreKind string
	DBPath    string
	Logger    *zap.Logger
	Metrics   *observe.Metrics
}

type Client struct {
	store   storage.Store
	log     *zap.Logger
	metrics *observe.Metrics

	initialized bool
}

type RunRequest struct {
	Problem        string
	Population     int
	// SurvivalRate nil means the default; a pointer to 0 is honored as
	// "no survivors", mirroring TargetFitness.
	SurvivalRate *float64
	Generations    int
	Seed           int64
	Workers        int
	Selection      string
	SampleSize     int
	TargetFitness  *float64
	SteadyWindow   int
	TimeBudget     time.Duration
	EvalBudget     int
	FitnessCache   int
}

type RunSummary struct {
	RunID            string
	Problem          string
	Generations      int
	Evaluations      int
	FinalBestFitness float64
	BestSolution     string
	BestByGeneration []float64
	CacheHits        int64
	CacheMisses      int64
}

type RunsRequest struct {
	Limit int
}

type FitnessHistoryRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type DiagnosticsRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type ProblemItem struct {
	Name        string
	Description string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:   store,
		log:     log,
		metrics: opts.Metrics,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) ensureInit(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	if err := problem.RegisterDefaults(); err != nil && !errors.Is(err, problem.ErrProblemExists) {
		return err
	}
	c.initialized = true
	return nil
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Problem == "" {
		req.Problem = "onemax"
	}
	if err := c.ensureInit(ctx); err != nil {
		return RunSummary{}, err
	}

	p, err := problem.Resolve(req.Problem)
	if err != nil {
		return RunSummary{}, err
	}

	spec := problem.RunSpec{
		PopulationSize: req.Population,
		SurvivalRate:   req.SurvivalRate,
		Generations:    req.Generations,
		Seed:           req.Seed,
		Workers:        req.Workers,
		Selector:       req.Selection,
		SampleSize:     req.SampleSize,
		TargetFitness:  req.TargetFitness,
		SteadyWindow:   req.SteadyWindow,
		TimeBudget:     req.TimeBudget,
		EvalBudget:     req.EvalBudget,
		CacheSize:      req.FitnessCache,
		Logger:         c.log,
		Metrics:        c.metrics,
	}

	result, err := p.Run(ctx, spec)
	if err != nil {
		return RunSummary{}, err
	}

	survivalRate := problem.DefaultSurvivalRate
	if req.SurvivalRate != nil {
		survivalRate = *req.SurvivalRate
	}

	runID := uuid.NewString()
	now := time.Now().UTC()
	record := model.RunRecord{
		VersionedRecord: model.NewVersionedRecord(),
		RunID:           runID,
		Problem:         req.Problem,
		Seed:            req.Seed,
		PopulationSize:  req.Population,
		SurvivalRate:    survivalRate,
		Generations:     result.Generations,
		Evaluations:     result.Evaluations,
		BestFitness:     result.BestFitness,
		CreatedAtUTC:    now.Format(time.RFC3339Nano),
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveFitnessHistory(ctx, runID, result.History); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveDiagnostics(ctx, runID, result.Diagnostics); err != nil {
		return RunSummary{}, err
	}

	c.log.Info("run complete",
		zap.String("run_id", runID),
		zap.String("problem", req.Problem),
		zap.Int("generations", result.Generations),
		zap.Float64("best_fitness", result.BestFitness),
	)

	return RunSummary{
		RunID:            runID,
		Problem:          req.Problem,
		Generations:      result.Generations,
		Evaluations:      result.Evaluations,
		FinalBestFitness: result.BestFitness,
		BestSolution:     result.BestSolution,
		BestByGeneration: result.History,
		CacheHits:        result.CacheHits,
		CacheMisses:      result.CacheMisses,
	}, nil
}

func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]model.RunRecord, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}
	return c.store.ListRuns(ctx, req.Limit)
}

func (c *Client) FitnessHistory(ctx context.Context, req FitnessHistoryRequest) ([]float64, error) {
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}

	history, ok, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("fitness history not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(history) > req.Limit {
		history = history[:req.Limit]
	}
	return append([]float64(nil), history...), nil
}

func (c *Client) Diagnostics(ctx context.Context, req DiagnosticsRequest) ([]model.GenerationDiagnostics, error) {
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}

	diagnostics, ok, err := c.store.GetDiagnostics(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("diagnostics not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(diagnostics) > req.Limit {
		diagnostics = diagnostics[:req.Limit]
	}
	out := make([]model.GenerationDiagnostics, len(diagnostics))
	copy(out, diagnostics)
	return out, nil
}

func (c *Client) Problems(ctx context.Context) ([]ProblemItem, error) {
	if err := c.ensureInit(ctx); err != nil {
		return nil, err
	}
	problems := problem.List()
	out := make([]ProblemItem, 0, len(problems))
	for _, p := range problems {
		out = append(out, ProblemItem{Name: p.Name(), Description: p.Description()})
	}
	return out, nil
}

func (c *Client) resolveRunID(ctx context.Context, runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either run id or latest")
	}
	if err := c.ensureInit(ctx); err != nil {
		return "", err
	}
	if latest {
		runs, err := c.store.ListRuns(ctx, 1)
		if err != nil {
			return "", err
		}
		if len(runs) == 0 {
			return "", errors.New("no runs available")
		}
		return runs[0].RunID, nil
	}
	if runID == "" {
		return "", errors.New("run id or latest is required")
	}
	return runID, nil
}
