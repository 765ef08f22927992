package engine

import (
	"context"
	"math/rand"

	"darwin/internal/genome"
)

// Fitness scores one genotype. It must be pure from the evaluator's
// perspective and must never return NaN, which is reserved for "unevaluated".
type Fitness[T any] func(genome.Genotype[T]) float64

// Evaluator scores a state's population. Contract: every individual in the
// returned population has a non-NaN fitness, in the same order and with the
// same count as the input.
type Evaluator[T any] interface {
	Name() string
	Evaluate(ctx context.Context, state State[T]) (State[T], error)
}

// Alterer transforms a state's population (mutation, crossover). Population
// size is preserved by every built-in alterer. Alterers compose by folding
// an ordered list left to right over the state.
type Alterer[T any] interface {
	Name() string
	Apply(rng *rand.Rand, state State[T], outputSize int) (State[T], error)
}

// Limit is a termination predicate over the running state and the engine's
// history snapshot. The engine ORs all configured limits.
type Limit[T any] interface {
	Name() string
	ShouldStop(state State[T], history History) bool
}

// Interceptor transforms a state at the before/after hook points. It must be
// a pure function of its input.
type Interceptor[T any] func(State[T]) State[T]

// Listener observes immutable state snapshots at the fixed notification
// points of the generational pipeline. Listeners must not mutate the state
// they receive.
type Listener[T any] interface {
	OnInitializationStart(State[T])
	OnInitializationEnd(State[T])
	OnEvaluationStart(State[T])
	OnEvaluationEnd(State[T])
	OnParentSelectionStart(State[T])
	OnParentSelectionEnd(State[T])
	OnSurvivorSelectionStart(State[T])
	OnSurvivorSelectionEnd(State[T])
	OnAlterationStart(State[T])
	OnAlterationEnd(State[T])
	OnGenerationEnd(State[T])
}

// NopListener implements Listener with no-ops, for embedding.
type NopListener[T any] struct{}

func (NopListener[T]) OnInitializationStart(State[T])    {}
func (NopListener[T]) OnInitializationEnd(State[T])      {}
func (NopListener[T]) OnEvaluationStart(State[T])        {}
func (NopListener[T]) OnEvaluationEnd(State[T])          {}
func (NopListener[T]) OnParentSelectionStart(State[T])   {}
func (NopListener[T]) OnParentSelectionEnd(State[T])     {}
func (NopListener[T]) OnSurvivorSelectionStart(State[T]) {}
func (NopListener[T]) OnSurvivorSelectionEnd(State[T])   {}
func (NopListener[T]) OnAlterationStart(State[T])        {}
func (NopListener[T]) OnAlterationEnd(State[T])          {}
func (NopListener[T]) OnGenerationEnd(State[T])          {}
