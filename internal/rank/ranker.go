package rank

import (
	"sort"

	"darwin/internal/genome"
)

// Ranker encapsulates maximize-versus-minimize semantics: it compares two
// individuals by fitness and rescales raw fitness values so that downstream
// selection math can always treat larger transformed values as better.
type Ranker[T any] interface {
	Name() string
	// Compare defines a total preorder over individuals by fitness,
	// returning -1, 0 or 1.
	Compare(a, b genome.Individual[T]) int
	// CompareFitness is Compare on raw fitness values.
	CompareFitness(a, b float64) int
	// Transform maps raw fitness values onto a scale where higher is better.
	Transform(values []float64) []float64
}

// Max ranks individuals with higher fitness as better.
type Max[T any] struct{}

func (Max[T]) Name() string {
	return "max"
}

func (Max[T]) CompareFitness(a, b float64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func (r Max[T]) Compare(a, b genome.Individual[T]) int {
	return r.CompareFitness(a.Fitness, b.Fitness)
}

func (Max[T]) Transform(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	return out
}

// Min ranks individuals with lower fitness as better.
type Min[T any] struct{}

func (Min[T]) Name() string {
	return "min"
}

func (Min[T]) CompareFitness(a, b float64) int {
	switch {
	case b > a:
		return 1
	case b < a:
		return -1
	default:
		return 0
	}
}

func (r Min[T]) Compare(a, b genome.Individual[T]) int {
	return r.CompareFitness(a.Fitness, b.Fitness)
}

// Transform maps each value v to sum(values)-v, so originally lower (better)
// values become proportionally larger on the transformed scale.
func (Min[T]) Transform(values []float64) []float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = sum - v
	}
	return out
}

// Sort returns the population sorted descending under the ranker, best first.
// The sort is stable so equally ranked individuals keep insertion order.
func Sort[T any](r Ranker[T], pop genome.Population[T]) genome.Population[T] {
	out := pop.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		return r.Compare(out[i], out[j]) > 0
	})
	return out
}
