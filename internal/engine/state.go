package engine

import (
	"fmt"

	"darwin/internal/genome"
	"darwin/internal/rank"
)

// State is an immutable snapshot of one point in the generational loop.
// Transitions are pure functions producing a new state.
type State[T any] struct {
	Generation int
	Ranker     rank.Ranker[T]
	Population genome.Population[T]
}

// NewState builds a state, rejecting negative generation counters.
func NewState[T any](generation int, ranker rank.Ranker[T], pop genome.Population[T]) (State[T], error) {
	if generation < 0 {
		return State[T]{}, fmt.Errorf("generation must be >= 0, got %d", generation)
	}
	return State[T]{Generation: generation, Ranker: ranker, Population: pop.Clone()}, nil
}

// Empty is the initial state before population initialization.
func Empty[T any](ranker rank.Ranker[T]) State[T] {
	return State[T]{Generation: 0, Ranker: ranker, Population: genome.Population[T]{}}
}

// WithPopulation returns a copy of the state holding the given population.
func (s State[T]) WithPopulation(pop genome.Population[T]) State[T] {
	return State[T]{Generation: s.Generation, Ranker: s.Ranker, Population: pop}
}

// Advance returns the state with the generation counter incremented.
func (s State[T]) Advance() State[T] {
	return State[T]{Generation: s.Generation + 1, Ranker: s.Ranker, Population: s.Population}
}

// Best returns the highest-ranked individual of the population.
func (s State[T]) Best() (genome.Individual[T], bool) {
	if s.Population.Size() == 0 {
		return genome.Individual[T]{}, false
	}
	best := s.Population[0]
	for _, ind := range s.Population[1:] {
		if s.Ranker.Compare(ind, best) > 0 {
			best = ind
		}
	}
	return best, true
}
