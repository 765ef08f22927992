package genome

import "math"

// Individual pairs a genotype with a fitness score. A NaN fitness means the
// individual has not been evaluated yet; fitness functions must never return
// NaN as a real score.
type Individual[T any] struct {
	Genotype Genotype[T]
	Fitness  float64
}

// NewIndividual returns an evaluated individual with the given fitness.
func NewIndividual[T any](genotype Genotype[T], fitness float64) Individual[T] {
	return Individual[T]{Genotype: genotype, Fitness: fitness}
}

// NewUnevaluated returns an individual whose fitness is the NaN sentinel.
func NewUnevaluated[T any](genotype Genotype[T]) Individual[T] {
	return Individual[T]{Genotype: genotype, Fitness: math.NaN()}
}

func (i Individual[T]) Evaluated() bool {
	return !math.IsNaN(i.Fitness)
}

// WithFitness returns a copy of the individual carrying the given fitness.
func (i Individual[T]) WithFitness(fitness float64) Individual[T] {
	return Individual[T]{Genotype: i.Genotype, Fitness: fitness}
}

// Verify is true only when the genotype verifies and the individual has been
// evaluated.
func (i Individual[T]) Verify() bool {
	return i.Genotype.Verify() && i.Evaluated()
}
