package genes

import (
	"math"
	"math/rand"

	"darwin/internal/genome"
)

// DoubleGene holds a float64 constrained to the half-open range [Lo, Hi).
type DoubleGene struct {
	value float64
	lo    float64
	hi    float64
}

func NewDoubleGene(value, lo, hi float64) DoubleGene {
	return DoubleGene{value: value, lo: lo, hi: hi}
}

func (g DoubleGene) Value() float64 {
	return g.value
}

func (g DoubleGene) Lo() float64 { return g.lo }
func (g DoubleGene) Hi() float64 { return g.hi }

// WithValue keeps the range constraints of the receiver.
func (g DoubleGene) WithValue(value float64) genome.Gene[float64] {
	return DoubleGene{value: value, lo: g.lo, hi: g.hi}
}

func (g DoubleGene) Verify() bool {
	return !math.IsNaN(g.value) && g.value >= g.lo && g.value < g.hi
}

// Random returns a gene with a fresh uniform value from the gene's range.
func (g DoubleGene) Random(rng *rand.Rand) genome.Gene[float64] {
	return g.WithValue(g.lo + rng.Float64()*(g.hi-g.lo))
}

// Perturb returns a gene nudged by a uniform step in [-radius, radius),
// clamped to stay inside the gene's range.
func (g DoubleGene) Perturb(rng *rand.Rand, radius float64) genome.Gene[float64] {
	value := g.value + (rng.Float64()*2-1)*radius
	if value < g.lo {
		value = g.lo
	}
	if value >= g.hi {
		value = math.Nextafter(g.hi, g.lo)
	}
	return g.WithValue(value)
}

// DoubleChromosomeFactory builds a factory producing single-chromosome float
// genotypes of the given length with uniform values in [lo, hi).
func DoubleChromosomeFactory(rng *rand.Rand, length int, lo, hi float64) genome.Factory[float64] {
	return func() genome.Genotype[float64] {
		gs := make([]genome.Gene[float64], length)
		for i := range gs {
			gs[i] = NewDoubleGene(lo+rng.Float64()*(hi-lo), lo, hi)
		}
		return genome.NewGenotype(genome.NewChromosome(gs))
	}
}
