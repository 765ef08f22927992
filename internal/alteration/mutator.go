package alteration

import (
	"errors"
	"fmt"
	"math/rand"

	"darwin/internal/engine"
	"darwin/internal/genome"
)

var ErrRate = errors.New("mutation rate must be in [0, 1]")

// GeneMutator produces a replacement for a gene selected for mutation.
type GeneMutator[T any] func(rng *rand.Rand, gene genome.Gene[T]) genome.Gene[T]

// Mutator applies hierarchical Bernoulli gating: IndividualRate decides
// whether an individual is considered at all, ChromosomeRate whether a
// chromosome inside it is touched, and GeneRate whether a single gene is
// replaced via the Mutate hook. Non-selected genes, chromosomes and
// individuals pass through by reference. A mutated individual loses its
// fitness and becomes unevaluated.
type Mutator[T any] struct {
	IndividualRate float64
	ChromosomeRate float64
	GeneRate       float64
	Mutate         GeneMutator[T]
}

func (Mutator[T]) Name() string {
	return "mutator"
}

func (m Mutator[T]) Apply(rng *rand.Rand, state engine.State[T], outputSize int) (engine.State[T], error) {
	if err := checkRates(m.IndividualRate, m.ChromosomeRate, m.GeneRate); err != nil {
		return engine.State[T]{}, err
	}
	if m.Mutate == nil {
		return engine.State[T]{}, errors.New("gene mutator is required")
	}
	if err := checkOutputSize(state, outputSize); err != nil {
		return engine.State[T]{}, err
	}

	pop := state.Population.Clone()
	for i, ind := range pop {
		if rng.Float64() >= m.IndividualRate {
			continue
		}
		mutated, changed := m.mutateGenotype(rng, ind.Genotype)
		if changed {
			pop[i] = genome.NewUnevaluated(mutated)
		}
	}
	return state.WithPopulation(pop), nil
}

func (m Mutator[T]) mutateGenotype(rng *rand.Rand, gt genome.Genotype[T]) (genome.Genotype[T], bool) {
	chromosomes := gt.Chromosomes()
	changed := false
	for c, chromosome := range chromosomes {
		if rng.Float64() >= m.ChromosomeRate {
			continue
		}
		genes := chromosome.Genes()
		touched := false
		for g, gene := range genes {
			if rng.Float64() >= m.GeneRate {
				continue
			}
			genes[g] = m.Mutate(rng, gene)
			touched = true
		}
		if touched {
			chromosomes[c] = chromosome.WithGenes(genes)
			changed = true
		}
	}
	if !changed {
		return gt, false
	}
	return gt.WithChromosomes(chromosomes), true
}

// NewBitFlip builds the classic bit-flip mutator for boolean genes.
func NewBitFlip(individualRate, chromosomeRate, geneRate float64) Mutator[bool] {
	return Mutator[bool]{
		IndividualRate: individualRate,
		ChromosomeRate: chromosomeRate,
		GeneRate:       geneRate,
		Mutate: func(_ *rand.Rand, gene genome.Gene[bool]) genome.Gene[bool] {
			return gene.WithValue(!gene.Value())
		},
	}
}

func checkRates(rates ...float64) error {
	for _, rate := range rates {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%w: %v", ErrRate, rate)
		}
	}
	return nil
}

func checkOutputSize[T any](state engine.State[T], outputSize int) error {
	if outputSize < 0 {
		return fmt.Errorf("output size must be >= 0, got %d", outputSize)
	}
	if outputSize != state.Population.Size() {
		return fmt.Errorf("output size %d does not match population size %d",
			outputSize, state.Population.Size())
	}
	return nil
}
