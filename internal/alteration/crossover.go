package alteration

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"darwin/internal/engine"
	"darwin/internal/genome"
)

var (
	ErrLengthMismatch = errors.New("crossover parents must have equal gene counts")
	ErrCutPoints      = errors.New("crossover cut point count must be >= 1 and < chromosome length")
)

// ChromosomeCrossover combines exactly two parent chromosomes of equal gene
// count into two offspring.
type ChromosomeCrossover[T any] interface {
	Name() string
	Cross(rng *rand.Rand, a, b genome.Chromosome[T]) (genome.Chromosome[T], genome.Chromosome[T], error)
}

// Crossover pairs consecutive individuals of the population and, with
// probability Rate per pair, recombines every chromosome of the pair through
// the configured operator. Recombined individuals become unevaluated; an
// unpaired trailing individual passes through unchanged.
type Crossover[T any] struct {
	Rate float64
	Op   ChromosomeCrossover[T]
}

func (c Crossover[T]) Name() string {
	if c.Op == nil {
		return "crossover"
	}
	return "crossover(" + c.Op.Name() + ")"
}

func (c Crossover[T]) Apply(rng *rand.Rand, state engine.State[T], outputSize int) (engine.State[T], error) {
	if c.Op == nil {
		return engine.State[T]{}, errors.New("chromosome crossover operator is required")
	}
	if err := checkRates(c.Rate); err != nil {
		return engine.State[T]{}, err
	}
	if err := checkOutputSize(state, outputSize); err != nil {
		return engine.State[T]{}, err
	}

	pop := state.Population.Clone()
	for i := 0; i+1 < len(pop); i += 2 {
		if rng.Float64() >= c.Rate {
			continue
		}
		left, right, err := c.crossIndividuals(rng, pop[i], pop[i+1])
		if err != nil {
			return engine.State[T]{}, err
		}
		pop[i] = left
		pop[i+1] = right
	}
	return state.WithPopulation(pop), nil
}

func (c Crossover[T]) crossIndividuals(rng *rand.Rand, a, b genome.Individual[T]) (genome.Individual[T], genome.Individual[T], error) {
	if a.Genotype.Size() != b.Genotype.Size() {
		return genome.Individual[T]{}, genome.Individual[T]{},
			fmt.Errorf("genotype chromosome counts differ: %d vs %d", a.Genotype.Size(), b.Genotype.Size())
	}

	left := a.Genotype.Chromosomes()
	right := b.Genotype.Chromosomes()
	for i := range left {
		childA, childB, err := c.Op.Cross(rng, left[i], right[i])
		if err != nil {
			return genome.Individual[T]{}, genome.Individual[T]{}, err
		}
		left[i] = childA
		right[i] = childB
	}
	return genome.NewUnevaluated(a.Genotype.WithChromosomes(left)),
		genome.NewUnevaluated(b.Genotype.WithChromosomes(right)),
		nil
}

// SinglePoint picks one cut index uniformly in [0, len) and swaps the
// suffixes of the two parents. The concatenated gene multiset across both
// offspring equals that of the parents.
type SinglePoint[T any] struct{}

func (SinglePoint[T]) Name() string {
	return "single_point"
}

func (SinglePoint[T]) Cross(rng *rand.Rand, a, b genome.Chromosome[T]) (genome.Chromosome[T], genome.Chromosome[T], error) {
	if a.Size() != b.Size() {
		return genome.Chromosome[T]{}, genome.Chromosome[T]{},
			fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, a.Size(), b.Size())
	}
	if a.Size() == 0 {
		return a, b, nil
	}

	cut := rng.Intn(a.Size())
	genesA := a.Genes()
	genesB := b.Genes()
	childA := append(append([]genome.Gene[T]{}, genesA[:cut]...), genesB[cut:]...)
	childB := append(append([]genome.Gene[T]{}, genesB[:cut]...), genesA[cut:]...)
	return a.WithGenes(childA), b.WithGenes(childB), nil
}

// MultiPoint draws Points distinct sorted cut indices and alternates parent
// segments between them.
type MultiPoint[T any] struct {
	Points int
}

func (MultiPoint[T]) Name() string {
	return "multi_point"
}

func (m MultiPoint[T]) Cross(rng *rand.Rand, a, b genome.Chromosome[T]) (genome.Chromosome[T], genome.Chromosome[T], error) {
	if a.Size() != b.Size() {
		return genome.Chromosome[T]{}, genome.Chromosome[T]{},
			fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, a.Size(), b.Size())
	}
	if m.Points < 1 || m.Points >= a.Size() {
		return genome.Chromosome[T]{}, genome.Chromosome[T]{},
			fmt.Errorf("%w: points=%d length=%d", ErrCutPoints, m.Points, a.Size())
	}

	cuts := samplePositions(rng, a.Size(), m.Points)
	genesA := a.Genes()
	genesB := b.Genes()
	childA := make([]genome.Gene[T], a.Size())
	childB := make([]genome.Gene[T], a.Size())

	next := 0
	swapped := false
	for i := 0; i < a.Size(); i++ {
		for next < len(cuts) && cuts[next] == i {
			swapped = !swapped
			next++
		}
		if swapped {
			childA[i], childB[i] = genesB[i], genesA[i]
		} else {
			childA[i], childB[i] = genesA[i], genesB[i]
		}
	}
	return a.WithGenes(childA), b.WithGenes(childB), nil
}

// Uniform swaps each gene position independently with probability SwapRate
// (0 picks the conventional 0.5).
type Uniform[T any] struct {
	SwapRate float64
}

func (Uniform[T]) Name() string {
	return "uniform"
}

func (u Uniform[T]) Cross(rng *rand.Rand, a, b genome.Chromosome[T]) (genome.Chromosome[T], genome.Chromosome[T], error) {
	if a.Size() != b.Size() {
		return genome.Chromosome[T]{}, genome.Chromosome[T]{},
			fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, a.Size(), b.Size())
	}
	rate := u.SwapRate
	if rate == 0 {
		rate = 0.5
	}
	if err := checkRates(rate); err != nil {
		return genome.Chromosome[T]{}, genome.Chromosome[T]{}, err
	}

	genesA := a.Genes()
	genesB := b.Genes()
	for i := range genesA {
		if rng.Float64() < rate {
			genesA[i], genesB[i] = genesB[i], genesA[i]
		}
	}
	return a.WithGenes(genesA), b.WithGenes(genesB), nil
}

// samplePositions draws count distinct indices in [0, length) and returns
// them sorted.
func samplePositions(rng *rand.Rand, length, count int) []int {
	perm := rng.Perm(length)
	cuts := append([]int{}, perm[:count]...)
	sort.Ints(cuts)
	return cuts
}
