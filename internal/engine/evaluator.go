package engine

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

var ErrNaNFitness = errors.New("fitness function returned NaN")

// SequentialEvaluator scores unevaluated individuals one by one on the
// calling goroutine. Already-evaluated individuals keep their fitness.
type SequentialEvaluator[T any] struct {
	Fitness Fitness[T]
}

func (SequentialEvaluator[T]) Name() string {
	return "sequential"
}

func (e SequentialEvaluator[T]) Evaluate(ctx context.Context, state State[T]) (State[T], error) {
	if e.Fitness == nil {
		return State[T]{}, errors.New("fitness function is required")
	}

	pop := state.Population.Clone()
	for i, ind := range pop {
		if ind.Evaluated() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return State[T]{}, err
		}
		fitness := e.Fitness(ind.Genotype)
		if math.IsNaN(fitness) {
			return State[T]{}, fmt.Errorf("%w: individual %d", ErrNaNFitness, i)
		}
		pop[i] = ind.WithFitness(fitness)
	}
	return state.WithPopulation(pop), nil
}

// ConcurrentEvaluator scores unevaluated individuals on a bounded worker
// pool. Distinct individuals are independent, so workers share nothing but
// the jobs channel and write to disjoint slice indices.
type ConcurrentEvaluator[T any] struct {
	Fitness Fitness[T]
	Workers int
}

func (ConcurrentEvaluator[T]) Name() string {
	return "concurrent"
}

func (e ConcurrentEvaluator[T]) Evaluate(ctx context.Context, state State[T]) (State[T], error) {
	if e.Fitness == nil {
		return State[T]{}, errors.New("fitness function is required")
	}

	pop := state.Population.Clone()
	pending := make([]int, 0, len(pop))
	for i, ind := range pop {
		if !ind.Evaluated() {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return state.WithPopulation(pop), nil
	}

	workers := e.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(pending) {
		workers = len(pending)
	}

	jobs := make(chan int)
	group, groupCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		group.Go(func() error {
			for idx := range jobs {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				fitness := e.Fitness(pop[idx].Genotype)
				if math.IsNaN(fitness) {
					return fmt.Errorf("%w: individual %d", ErrNaNFitness, idx)
				}
				pop[idx] = pop[idx].WithFitness(fitness)
			}
			return nil
		})
	}

	group.Go(func() error {
		defer close(jobs)
		for _, idx := range pending {
			select {
			case jobs <- idx:
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return State[T]{}, err
	}
	return state.WithPopulation(pop), nil
}
