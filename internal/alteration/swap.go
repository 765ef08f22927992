package alteration

import (
	"math/rand"

	"darwin/internal/engine"
	"darwin/internal/genome"
)

// SwapMutator exchanges the positions of two genes inside a selected
// chromosome. Gene values are untouched, so the gene multiset of the
// chromosome is preserved; useful for permutation-encoded problems.
type SwapMutator[T any] struct {
	IndividualRate float64
	ChromosomeRate float64
}

func (SwapMutator[T]) Name() string {
	return "swap_mutator"
}

func (m SwapMutator[T]) Apply(rng *rand.Rand, state engine.State[T], outputSize int) (engine.State[T], error) {
	if err := checkRates(m.IndividualRate, m.ChromosomeRate); err != nil {
		return engine.State[T]{}, err
	}
	if err := checkOutputSize(state, outputSize); err != nil {
		return engine.State[T]{}, err
	}

	pop := state.Population.Clone()
	for i, ind := range pop {
		if rng.Float64() >= m.IndividualRate {
			continue
		}
		chromosomes := ind.Genotype.Chromosomes()
		changed := false
		for c, chromosome := range chromosomes {
			if rng.Float64() >= m.ChromosomeRate || chromosome.Size() < 2 {
				continue
			}
			genes := chromosome.Genes()
			a := rng.Intn(len(genes))
			b := rng.Intn(len(genes))
			if a == b {
				continue
			}
			genes[a], genes[b] = genes[b], genes[a]
			chromosomes[c] = chromosome.WithGenes(genes)
			changed = true
		}
		if changed {
			pop[i] = genome.NewUnevaluated(ind.Genotype.WithChromosomes(chromosomes))
		}
	}
	return state.WithPopulation(pop), nil
}

// InversionMutator reverses a random gene segment inside a selected
// chromosome, preserving the gene multiset.
type InversionMutator[T any] struct {
	IndividualRate float64
	ChromosomeRate float64
}

func (InversionMutator[T]) Name() string {
	return "inversion_mutator"
}

func (m InversionMutator[T]) Apply(rng *rand.Rand, state engine.State[T], outputSize int) (engine.State[T], error) {
	if err := checkRates(m.IndividualRate, m.ChromosomeRate); err != nil {
		return engine.State[T]{}, err
	}
	if err := checkOutputSize(state, outputSize); err != nil {
		return engine.State[T]{}, err
	}

	pop := state.Population.Clone()
	for i, ind := range pop {
		if rng.Float64() >= m.IndividualRate {
			continue
		}
		chromosomes := ind.Genotype.Chromosomes()
		changed := false
		for c, chromosome := range chromosomes {
			if rng.Float64() >= m.ChromosomeRate || chromosome.Size() < 2 {
				continue
			}
			genes := chromosome.Genes()
			lo := rng.Intn(len(genes))
			hi := rng.Intn(len(genes))
			if lo > hi {
				lo, hi = hi, lo
			}
			if lo == hi {
				continue
			}
			for a, b := lo, hi; a < b; a, b = a+1, b-1 {
				genes[a], genes[b] = genes[b], genes[a]
			}
			chromosomes[c] = chromosome.WithGenes(genes)
			changed = true
		}
		if changed {
			pop[i] = genome.NewUnevaluated(ind.Genotype.WithChromosomes(chromosomes))
		}
	}
	return state.WithPopulation(pop), nil
}
