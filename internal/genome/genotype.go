package genome

import "fmt"

// Genotype is an ordered sequence of chromosomes: the full encoded solution.
// Chromosome kinds may differ within one genotype, but the chromosome count is
// homogeneous across individuals of one run.
type Genotype[T any] struct {
	chromosomes []Chromosome[T]
}

func NewGenotype[T any](chromosomes ...Chromosome[T]) Genotype[T] {
	copied := make([]Chromosome[T], len(chromosomes))
	copy(copied, chromosomes)
	return Genotype[T]{chromosomes: copied}
}

func (g Genotype[T]) Size() int {
	return len(g.chromosomes)
}

func (g Genotype[T]) Chromosome(i int) Chromosome[T] {
	return g.chromosomes[i]
}

// Chromosomes returns a copy of the chromosome sequence.
func (g Genotype[T]) Chromosomes() []Chromosome[T] {
	out := make([]Chromosome[T], len(g.chromosomes))
	copy(out, g.chromosomes)
	return out
}

// WithChromosomes returns a new genotype holding the given chromosomes.
func (g Genotype[T]) WithChromosomes(chromosomes []Chromosome[T]) Genotype[T] {
	return NewGenotype(chromosomes...)
}

// Flatten concatenates all underlying gene values, for fitness functions that
// treat the genotype as a flat vector.
func (g Genotype[T]) Flatten() []T {
	total := 0
	for _, c := range g.chromosomes {
		total += c.Size()
	}
	out := make([]T, 0, total)
	for _, c := range g.chromosomes {
		out = append(out, c.Values()...)
	}
	return out
}

func (g Genotype[T]) Verify() bool {
	for _, c := range g.chromosomes {
		if !c.Verify() {
			return false
		}
	}
	return true
}

// Key is a representation-based identity string, usable as a cache key for
// fitness memoization.
func (g Genotype[T]) Key() string {
	return fmt.Sprintf("%v", g.Flatten())
}

// Factory produces one fresh, internally valid genotype. It is invoked once
// per individual during population initialization.
type Factory[T any] func() Genotype[T]
