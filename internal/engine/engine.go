package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"darwin/internal/genome"
	"darwin/internal/rank"
	"darwin/internal/selection"
)

// ErrInvariant marks violations of the generational invariants: population
// size drift, unevaluated individuals after an evaluation phase, or an
// alterer changing the offspring count. These indicate a bug in a supplied
// plugin, not a recoverable runtime condition.
var ErrInvariant = errors.New("evolution invariant violated")

// Config is the full configuration surface of the engine. It is validated
// once, at construction.
type Config[T any] struct {
	PopulationSize int
	// SurvivalRate is the fraction of each generation filled by the survivor
	// selector; the rest is bred from selected parents. Must be in [0, 1].
	SurvivalRate float64

	Factory   genome.Factory[T]
	Ranker    rank.Ranker[T]
	Evaluator Evaluator[T]

	// ParentSelector and SurvivorSelector default to tournament selection
	// with a sample size of 2.
	ParentSelector   selection.Selector[T]
	SurvivorSelector selection.Selector[T]

	// Alterers are folded left to right over the parent sub-state; order is
	// caller-specified and matters.
	Alterers []Alterer[T]
	// Limits are ORed: evolution stops as soon as any one is satisfied.
	Limits []Limit[T]

	Listeners       []Listener[T]
	BeforeIntercept Interceptor[T]
	AfterIntercept  Interceptor[T]

	Seed   int64
	Logger *zap.Logger
}

// Engine orchestrates the generational cycle. The one piece of mutable state
// it owns besides run history is the seeded random source; everything that
// flows through Iterate is an immutable value.
type Engine[T any] struct {
	cfg     Config[T]
	rng     *rand.Rand
	log     *zap.Logger
	history History
}

func New[T any](cfg Config[T]) (*Engine[T], error) {
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be > 0, got %d", cfg.PopulationSize)
	}
	if cfg.SurvivalRate < 0 || cfg.SurvivalRate > 1 || math.IsNaN(cfg.SurvivalRate) {
		return nil, fmt.Errorf("survival rate must be in [0, 1], got %v", cfg.SurvivalRate)
	}
	if cfg.Factory == nil {
		return nil, errors.New("genotype factory is required")
	}
	if cfg.Ranker == nil {
		return nil, errors.New("ranker is required")
	}
	if cfg.Evaluator == nil {
		return nil, errors.New("evaluator is required")
	}
	if cfg.ParentSelector == nil {
		cfg.ParentSelector = selection.Tournament[T]{SampleSize: 2}
	}
	if cfg.SurvivorSelector == nil {
		cfg.SurvivorSelector = selection.Tournament[T]{SampleSize: 2}
	}
	if cfg.BeforeIntercept == nil {
		cfg.BeforeIntercept = func(s State[T]) State[T] { return s }
	}
	if cfg.AfterIntercept == nil {
		cfg.AfterIntercept = func(s State[T]) State[T] { return s }
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Engine[T]{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		log: cfg.Logger,
	}, nil
}

// History returns a snapshot of the current run's history.
func (e *Engine[T]) History() History {
	return e.history.snapshot()
}

// Evolve runs generations from the empty state until a limit fires and
// returns the last computed state.
func (e *Engine[T]) Evolve(ctx context.Context) (State[T], error) {
	return e.EvolveFrom(ctx, Empty(e.cfg.Ranker))
}

// EvolveFrom resumes evolution from a caller-supplied state.
func (e *Engine[T]) EvolveFrom(ctx context.Context, state State[T]) (State[T], error) {
	e.history = History{Start: time.Now()}

	for {
		if err := ctx.Err(); err != nil {
			return State[T]{}, err
		}
		if name, stop := e.shouldStop(state); stop {
			e.log.Info("evolution terminated",
				zap.String("limit", name),
				zap.Int("generation", state.Generation),
			)
			return state, nil
		}

		next, err := e.Iterate(ctx, state)
		if err != nil {
			return State[T]{}, err
		}
		state = next
	}
}

func (e *Engine[T]) shouldStop(state State[T]) (string, bool) {
	snapshot := e.history.snapshot()
	for _, limit := range e.cfg.Limits {
		if limit.ShouldStop(state, snapshot) {
			return limit.Name(), true
		}
	}
	return "", false
}

// Iterate runs one generational transition: intercept, initialize if needed,
// evaluate, select parents and survivors from the same evaluated pool, alter
// offspring, merge, re-evaluate, intercept again, advance.
func (e *Engine[T]) Iterate(ctx context.Context, state State[T]) (State[T], error) {
	state = e.cfg.BeforeIntercept(state)

	state, err := e.startOrContinue(state)
	if err != nil {
		return State[T]{}, err
	}

	e.notify(func(l Listener[T]) { l.OnEvaluationStart(state) })
	state, err = e.evaluateChecked(ctx, state)
	if err != nil {
		return State[T]{}, err
	}
	e.notify(func(l Listener[T]) { l.OnEvaluationEnd(state) })

	survivorCount := int(math.Ceil(e.cfg.SurvivalRate * float64(e.cfg.PopulationSize)))
	parentCount := e.cfg.PopulationSize - survivorCount

	e.notify(func(l Listener[T]) { l.OnParentSelectionStart(state) })
	parents, err := e.cfg.ParentSelector.Select(e.rng, state.Population, parentCount, state.Ranker)
	if err != nil {
		return State[T]{}, fmt.Errorf("parent selection: %w", err)
	}
	e.notify(func(l Listener[T]) { l.OnParentSelectionEnd(state) })

	e.notify(func(l Listener[T]) { l.OnSurvivorSelectionStart(state) })
	survivors, err := e.cfg.SurvivorSelector.Select(e.rng, state.Population, survivorCount, state.Ranker)
	if err != nil {
		return State[T]{}, fmt.Errorf("survivor selection: %w", err)
	}
	e.notify(func(l Listener[T]) { l.OnSurvivorSelectionEnd(state) })

	e.notify(func(l Listener[T]) { l.OnAlterationStart(state) })
	offspring := state.WithPopulation(parents)
	for _, alterer := range e.cfg.Alterers {
		offspring, err = alterer.Apply(e.rng, offspring, parentCount)
		if err != nil {
			return State[T]{}, fmt.Errorf("alterer %s: %w", alterer.Name(), err)
		}
	}
	e.notify(func(l Listener[T]) { l.OnAlterationEnd(offspring) })

	merged := append(survivors.Clone(), offspring.Population...)
	if merged.Size() != e.cfg.PopulationSize {
		return State[T]{}, fmt.Errorf("%w: merged population size %d, want %d",
			ErrInvariant, merged.Size(), e.cfg.PopulationSize)
	}
	state = state.WithPopulation(merged)

	e.notify(func(l Listener[T]) { l.OnEvaluationStart(state) })
	state, err = e.evaluateChecked(ctx, state)
	if err != nil {
		return State[T]{}, err
	}
	e.notify(func(l Listener[T]) { l.OnEvaluationEnd(state) })

	state = e.cfg.AfterIntercept(state)
	state = state.Advance()

	if best, ok := state.Best(); ok {
		e.history.Best = append(e.history.Best, best.Fitness)
		e.log.Debug("generation complete",
			zap.Int("generation", state.Generation),
			zap.Float64("best_fitness", best.Fitness),
			zap.Int("evaluations", e.history.Evaluations),
		)
	}
	e.notify(func(l Listener[T]) { l.OnGenerationEnd(state) })

	return state, nil
}

// startOrContinue initializes the population from the factory when the state
// is empty and passes it through unchanged otherwise. Listeners hear about
// initialization only when it actually occurs.
func (e *Engine[T]) startOrContinue(state State[T]) (State[T], error) {
	if state.Population.Size() > 0 {
		return state, nil
	}

	e.notify(func(l Listener[T]) { l.OnInitializationStart(state) })
	pop := make(genome.Population[T], 0, e.cfg.PopulationSize)
	for i := 0; i < e.cfg.PopulationSize; i++ {
		genotype := e.cfg.Factory()
		if !genotype.Verify() {
			return State[T]{}, fmt.Errorf("%w: factory produced invalid genotype at index %d", ErrInvariant, i)
		}
		pop = append(pop, genome.NewUnevaluated(genotype))
	}
	state = state.WithPopulation(pop)
	e.notify(func(l Listener[T]) { l.OnInitializationEnd(state) })
	return state, nil
}

// evaluateChecked delegates to the evaluator and enforces its contract:
// population size unchanged and every individual evaluated.
func (e *Engine[T]) evaluateChecked(ctx context.Context, state State[T]) (State[T], error) {
	if state.Population.Size() != e.cfg.PopulationSize {
		return State[T]{}, fmt.Errorf("%w: population size %d before evaluation, want %d",
			ErrInvariant, state.Population.Size(), e.cfg.PopulationSize)
	}
	pending := state.Population.Unevaluated()

	evaluated, err := e.cfg.Evaluator.Evaluate(ctx, state)
	if err != nil {
		return State[T]{}, fmt.Errorf("evaluate: %w", err)
	}
	if evaluated.Population.Size() != e.cfg.PopulationSize {
		return State[T]{}, fmt.Errorf("%w: population size %d after evaluation, want %d",
			ErrInvariant, evaluated.Population.Size(), e.cfg.PopulationSize)
	}
	if !evaluated.Population.Evaluated() {
		return State[T]{}, fmt.Errorf("%w: %d unevaluated individuals after evaluation",
			ErrInvariant, evaluated.Population.Unevaluated())
	}

	e.history.Evaluations += pending
	return evaluated, nil
}

func (e *Engine[T]) notify(fn func(Listener[T])) {
	for _, listener := range e.cfg.Listeners {
		fn(listener)
	}
}
