package problem

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"darwin/internal/model"
	"darwin/internal/observe"
)

var (
	ErrProblemExists   = errors.New("problem already registered")
	ErrProblemNotFound = errors.New("problem not found")
)

// DefaultSurvivalRate is used when a RunSpec leaves SurvivalRate nil.
const DefaultSurvivalRate = 0.4

// RunSpec carries the engine configuration shared by all problems. Each
// problem supplies its own representation, fitness and operators.
type RunSpec struct {
	PopulationSize int
	// SurvivalRate is a pointer because 0 is a legitimate rate (no
	// survivors); nil means "use the default".
	SurvivalRate *float64
	Generations  int
	Seed         int64
	Workers      int

	// Selector names the parent and survivor selection strategy:
	// tournament, roulette, roulette_sorted or random.
	Selector   string
	SampleSize int

	// Optional extra limits; zero values disable them.
	TargetFitness *float64
	SteadyWindow  int
	TimeBudget    time.Duration
	EvalBudget    int

	// CacheSize > 0 wraps the evaluator in a fitness-memoizing cache.
	CacheSize int

	Logger  *zap.Logger
	Metrics *observe.Metrics
}

func (s RunSpec) withDefaults() RunSpec {
	if s.PopulationSize <= 0 {
		s.PopulationSize = 50
	}
	if s.SurvivalRate == nil {
		rate := DefaultSurvivalRate
		s.SurvivalRate = &rate
	}
	if s.Generations <= 0 {
		s.Generations = 100
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	return s
}

// Result summarizes one run of a problem.
type Result struct {
	BestFitness  float64
	BestSolution string
	Generations  int
	Evaluations  int
	History      []float64
	Diagnostics  []model.GenerationDiagnostics
	CacheHits    int64
	CacheMisses  int64
}

// Problem binds a representation, fitness function and operator set under a
// resolvable name.
type Problem interface {
	Name() string
	Description() string
	Run(ctx context.Context, spec RunSpec) (Result, error)
}

var registry = struct {
	mu sync.RWMutex
	m  map[string]Problem
}{
	m: make(map[string]Problem),
}

func Register(p Problem) error {
	if p == nil {
		return errors.New("problem is required")
	}
	if p.Name() == "" {
		return errors.New("problem name is required")
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.m[p.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrProblemExists, p.Name())
	}
	registry.m[p.Name()] = p
	return nil
}

func Resolve(name string) (Problem, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	p, ok := registry.m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProblemNotFound, name)
	}
	return p, nil
}

func List() []Problem {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.m))
	for name := range registry.m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Problem, 0, len(names))
	for _, name := range names {
		out = append(out, registry.m[name])
	}
	return out
}

// RegisterDefaults registers the built-in problems. Safe to call once per
// process.
func RegisterDefaults() error {
	defaults := []Problem{
		OneMax{Length: 64},
		Sphere{Dimensions: 16},
		DeceptiveTrap{Blocks: 10, BlockSize: 5},
	}
	for _, p := range defaults {
		if err := Register(p); err != nil {
			return err
		}
	}
	return nil
}

func resetRegistryForTests() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.m = make(map[string]Problem)
}
