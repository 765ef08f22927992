package genes

import (
	"math/rand"

	"darwin/internal/genome"
)

// BoolGene holds a single bit.
type BoolGene struct {
	value bool
}

func NewBoolGene(value bool) BoolGene {
	return BoolGene{value: value}
}

func (g BoolGene) Value() bool {
	return g.value
}

func (g BoolGene) WithValue(value bool) genome.Gene[bool] {
	return BoolGene{value: value}
}

func (g BoolGene) Verify() bool {
	return true
}

// Flip returns the gene with its bit inverted.
func (g BoolGene) Flip() genome.Gene[bool] {
	return BoolGene{value: !g.value}
}

// BoolChromosomeFactory builds a factory producing single-chromosome bit
// genotypes of the given length, with each bit set independently with
// probability trueRate.
func BoolChromosomeFactory(rng *rand.Rand, length int, trueRate float64) genome.Factory[bool] {
	return func() genome.Genotype[bool] {
		gs := make([]genome.Gene[bool], length)
		for i := range gs {
			gs[i] = NewBoolGene(rng.Float64() < trueRate)
		}
		return genome.NewGenotype(genome.NewChromosome(gs))
	}
}
