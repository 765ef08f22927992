package genes

import (
	"math/rand"

	"darwin/internal/genome"
)

// IntGene holds an integer constrained to the half-open range [Lo, Hi).
type IntGene struct {
	value int
	lo    int
	hi    int
}

func NewIntGene(value, lo, hi int) IntGene {
	return IntGene{value: value, lo: lo, hi: hi}
}

func (g IntGene) Value() int {
	return g.value
}

func (g IntGene) Lo() int { return g.lo }
func (g IntGene) Hi() int { return g.hi }

// WithValue keeps the range constraints of the receiver.
func (g IntGene) WithValue(value int) genome.Gene[int] {
	return IntGene{value: value, lo: g.lo, hi: g.hi}
}

func (g IntGene) Verify() bool {
	return g.value >= g.lo && g.value < g.hi
}

// Random returns a gene with a fresh uniform value from the gene's range.
func (g IntGene) Random(rng *rand.Rand) genome.Gene[int] {
	return g.WithValue(g.lo + rng.Intn(g.hi-g.lo))
}

// IntChromosomeFactory builds a factory producing single-chromosome integer
// genotypes of the given length with uniform values in [lo, hi).
func IntChromosomeFactory(rng *rand.Rand, length, lo, hi int) genome.Factory[int] {
	return func() genome.Genotype[int] {
		gs := make([]genome.Gene[int], length)
		for i := range gs {
			gs[i] = NewIntGene(lo+rng.Intn(hi-lo), lo, hi)
		}
		return genome.NewGenotype(genome.NewChromosome(gs))
	}
}
