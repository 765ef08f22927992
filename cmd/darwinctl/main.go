package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"darwin/internal/storage"
	"darwin/pkg/darwin"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "fitness":
		return runFitness(ctx, args[1:])
	case "diagnostics":
		return runDiagnostics(ctx, args[1:])
	case "problems":
		return runProblems(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: darwinctl <run|runs|fitness|diagnostics|problems> [flags]", msg)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config path (json or yaml)")
	problemName := fs.String("problem", "onemax", "problem name")
	population := fs.Int("pop", 50, "population size")
	survivalRate := fs.Float64("survival-rate", 0.4, "fraction of each generation kept as survivors")
	generations := fs.Int("gens", 100, "generation count")
	seed := fs.Int64("seed", 1, "rng seed")
	workers := fs.Int("workers", 1, "fitness evaluation worker count")
	selectionName := fs.String("selection", "tournament", "selection strategy: tournament|roulette|roulette_sorted|random")
	sampleSize := fs.Int("sample-size", 2, "tournament sample size")
	fitnessGoal := fs.Float64("fitness-goal", 0, "early-stop fitness target (only applied when set)")
	steadyWindow := fs.Int("steady-window", 0, "early-stop after N generations without improvement (0 disables)")
	timeBudget := fs.Duration("time-budget", 0, "early-stop wall-clock budget (0 disables)")
	evalBudget := fs.Int("evaluations-limit", 0, "early-stop total evaluation limit (0 disables)")
	cacheSize := fs.Int("fitness-cache", 0, "fitness memoization cache size (0 disables)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "darwin.db", "sqlite database path")
	verbose := fs.Bool("verbose", false, "per-generation debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req, err := loadOrDefaultRunRequest(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		req = darwin.RunRequest{
			Problem:      *problemName,
			Population:   *population,
			SurvivalRate: survivalRate,
			Generations:  *generations,
			Seed:         *seed,
			Workers:      *workers,
			Selection:    *selectionName,
			SampleSize:   *sampleSize,
			SteadyWindow: *steadyWindow,
			TimeBudget:   *timeBudget,
			EvalBudget:   *evalBudget,
			FitnessCache: *cacheSize,
		}
	} else {
		overrideFromFlags(&req, setFlags, map[string]any{
			"problem":           *problemName,
			"pop":               *population,
			"survival-rate":     *survivalRate,
			"gens":              *generations,
			"seed":              *seed,
			"workers":           *workers,
			"selection":         *selectionName,
			"sample-size":       *sampleSize,
			"steady-window":     *steadyWindow,
			"time-budget":       *timeBudget,
			"evaluations-limit": *evalBudget,
			"fitness-cache":     *cacheSize,
		})
	}
	if setFlags["fitness-goal"] {
		goal := *fitnessGoal
		req.TargetFitness = &goal
	}

	log, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	client, err := darwin.New(darwin.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run completed run_id=%s problem=%s pop=%d gens=%d seed=%d\n",
		summary.RunID, summary.Problem, req.Population, summary.Generations, req.Seed)
	for i, best := range summary.BestByGeneration {
		fmt.Printf("generation=%d best_fitness=%.6f\n", i+1, best)
	}
	fmt.Printf("final_best_fitness=%.6f evaluations=%d\n", summary.FinalBestFitness, summary.Evaluations)
	fmt.Printf("best_solution=%s\n", summary.BestSolution)
	if req.FitnessCache > 0 {
		fmt.Printf("fitness_cache hits=%d misses=%d\n", summary.CacheHits, summary.CacheMisses)
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "darwin.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := darwin.New(darwin.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, darwin.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	for _, r := range runs {
		fmt.Printf("run_id=%s created_at=%s problem=%s seed=%d pop=%d gens=%d evals=%d best_fitness=%.6f\n",
			r.RunID,
			r.CreatedAtUTC,
			r.Problem,
			r.Seed,
			r.PopulationSize,
			r.Generations,
			r.Evaluations,
			r.BestFitness,
		)
	}
	return nil
}

func runFitness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fitness", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show fitness history for the most recent run")
	limit := fs.Int("limit", 50, "max generations to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit fitness history as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "darwin.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("fitness requires --run-id or --latest")
	}

	client, err := darwin.New(darwin.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.FitnessHistory(ctx, darwin.FitnessHistoryRequest{
		RunID:  *runID,
		Latest: *latest,
		Limit:  *limit,
	})
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("no fitness history")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}

	for i, best := range history {
		fmt.Printf("generation=%d best_fitness=%.6f\n", i+1, best)
	}
	return nil
}

func runDiagnostics(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("diagnostics", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show diagnostics for the most recent run")
	limit := fs.Int("limit", 50, "max generations to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit diagnostics as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "darwin.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("diagnostics requires --run-id or --latest")
	}

	client, err := darwin.New(darwin.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	diagnostics, err := client.Diagnostics(ctx, darwin.DiagnosticsRequest{
		RunID:  *runID,
		Latest: *latest,
		Limit:  *limit,
	})
	if err != nil {
		return err
	}
	if len(diagnostics) == 0 {
		fmt.Println("no diagnostics")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(diagnostics)
	}

	for _, d := range diagnostics {
		fmt.Printf("generation=%d best=%.6f mean=%.6f min=%.6f unique=%d duration_ms=%.2f\n",
			d.Generation,
			d.BestFitness,
			d.MeanFitness,
			d.MinFitness,
			d.Unique,
			d.DurationMS,
		)
	}
	return nil
}

func runProblems(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("problems", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit problem list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := darwin.New(darwin.Options{})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	problems, err := client.Problems(ctx)
	if err != nil {
		return err
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(problems)
	}

	for _, p := range problems {
		fmt.Printf("problem=%s description=%q\n", p.Name, p.Description)
	}
	return nil
}
