package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachingEvaluator memoizes fitness by genotype representation. Individuals
// whose genotype was scored before are filled from the cache; the rest go to
// the wrapped evaluator, and their fresh scores are cached afterwards.
// Useful when selection with replacement re-evaluates identical survivors or
// when alterers frequently reproduce known genotypes.
type CachingEvaluator[T any] struct {
	inner Evaluator[T]
	cache *lru.Cache[string, float64]

	hits   atomic.Int64
	misses atomic.Int64
}

func NewCachingEvaluator[T any](inner Evaluator[T], size int) (*CachingEvaluator[T], error) {
	if inner == nil {
		return nil, errors.New("inner evaluator is required")
	}
	cache, err := lru.New[string, float64](size)
	if err != nil {
		return nil, fmt.Errorf("create fitness cache: %w", err)
	}
	return &CachingEvaluator[T]{inner: inner, cache: cache}, nil
}

func (e *CachingEvaluator[T]) Name() string {
	return "caching(" + e.inner.Name() + ")"
}

func (e *CachingEvaluator[T]) Evaluate(ctx context.Context, state State[T]) (State[T], error) {
	pop := state.Population.Clone()
	missed := make([]int, 0, len(pop))
	keys := make(map[int]string, len(pop))

	for i, ind := range pop {
		if ind.Evaluated() {
			continue
		}
		key := ind.Genotype.Key()
		if fitness, ok := e.cache.Get(key); ok {
			pop[i] = ind.WithFitness(fitness)
			e.hits.Add(1)
			continue
		}
		missed = append(missed, i)
		keys[i] = key
		e.misses.Add(1)
	}

	if len(missed) == 0 {
		return state.WithPopulation(pop), nil
	}

	evaluated, err := e.inner.Evaluate(ctx, state.WithPopulation(pop))
	if err != nil {
		return State[T]{}, err
	}
	for _, i := range missed {
		e.cache.Add(keys[i], evaluated.Population[i].Fitness)
	}
	return evaluated, nil
}

// Stats returns cumulative cache hit and miss counts.
func (e *CachingEvaluator[T]) Stats() (hits, misses int64) {
	return e.hits.Load(), e.misses.Load()
}
