package problem

import (
	"context"
	"fmt"

	"darwin/internal/engine"
	"darwin/internal/genome"
	"darwin/internal/limit"
	"darwin/internal/observe"
	"darwin/internal/rank"
	"darwin/internal/selection"
)

// setup is what a concrete problem contributes to a run: the representation,
// the scoring direction, the fitness function, the operator chain, and how to
// render the winning genotype for humans.
type setup[T any] struct {
	factory  genome.Factory[T]
	ranker   rank.Ranker[T]
	fitness  engine.Fitness[T]
	alterers []engine.Alterer[T]
	format   func(genome.Genotype[T]) string
}

// runEngine assembles an engine from a RunSpec plus a problem setup, runs it
// to completion and folds the recorder output into a Result.
func runEngine[T any](ctx context.Context, spec RunSpec, s setup[T]) (Result, error) {
	spec = spec.withDefaults()

	parentSel, err := selection.ByName[T](spec.Selector, spec.SampleSize)
	if err != nil {
		return Result{}, err
	}
	survivorSel, err := selection.ByName[T](spec.Selector, spec.SampleSize)
	if err != nil {
		return Result{}, err
	}

	var evaluator engine.Evaluator[T]
	if spec.Workers > 1 {
		evaluator = engine.ConcurrentEvaluator[T]{Fitness: s.fitness, Workers: spec.Workers}
	} else {
		evaluator = engine.SequentialEvaluator[T]{Fitness: s.fitness}
	}
	var cache *engine.CachingEvaluator[T]
	if spec.CacheSize > 0 {
		cache, err = engine.NewCachingEvaluator(evaluator, spec.CacheSize)
		if err != nil {
			return Result{}, err
		}
		evaluator = cache
	}

	limits := []engine.Limit[T]{limit.Generations[T]{Max: spec.Generations}}
	if spec.TargetFitness != nil {
		limits = append(limits, limit.TargetFitness[T]{Target: *spec.TargetFitness})
	}
	if spec.SteadyWindow > 0 {
		limits = append(limits, limit.Steady[T]{Window: spec.SteadyWindow})
	}
	if spec.TimeBudget > 0 {
		limits = append(limits, limit.WallClock[T]{Budget: spec.TimeBudget})
	}
	if spec.EvalBudget > 0 {
		limits = append(limits, limit.Evaluations[T]{Max: spec.EvalBudget})
	}

	recorder := observe.NewRecorder[T]()
	listeners := []engine.Listener[T]{
		recorder,
		observe.NewLoggingListener[T](spec.Logger),
	}
	if spec.Metrics != nil {
		listeners = append(listeners, observe.NewMetricsListener[T](spec.Metrics))
	}

	eng, err := engine.New(engine.Config[T]{
		PopulationSize:   spec.PopulationSize,
		SurvivalRate:     *spec.SurvivalRate,
		Factory:          s.factory,
		Ranker:           s.ranker,
		Evaluator:        evaluator,
		ParentSelector:   parentSel,
		SurvivorSelector: survivorSel,
		Alterers:         s.alterers,
		Limits:           limits,
		Listeners:        listeners,
		Seed:             spec.Seed,
		Logger:           spec.Logger,
	})
	if err != nil {
		return Result{}, err
	}

	final, err := eng.Evolve(ctx)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Generations: final.Generation,
		Evaluations: eng.History().Evaluations,
		History:     recorder.History(),
		Diagnostics: recorder.Diagnostics(),
	}
	if best, ok := recorder.Best(); ok {
		result.BestFitness = best.Fitness
		if s.format != nil {
			result.BestSolution = s.format(best.Genotype)
		} else {
			result.BestSolution = fmt.Sprintf("%v", best.Genotype.Flatten())
		}
	}
	if cache != nil {
		result.CacheHits, result.CacheMisses = cache.Stats()
	}
	return result, nil
}
