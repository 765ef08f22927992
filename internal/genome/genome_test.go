package genome

import (
	"math"
	"testing"
)

type stubGene struct {
	value int
	valid bool
}

func (g stubGene) Value() int { return g.value }

func (g stubGene) WithValue(value int) Gene[int] {
	return stubGene{value: value, valid: g.valid}
}

func (g stubGene) Verify() bool { return g.valid }

func intChromosome(values ...int) Chromosome[int] {
	gs := make([]Gene[int], len(values))
	for i, v := range values {
		gs[i] = stubGene{value: v, valid: true}
	}
	return NewChromosome(gs)
}

func TestChromosomeGenesReturnsCopy(t *testing.T) {
	c := intChromosome(1, 2, 3)

	genes := c.Genes()
	genes[0] = stubGene{value: 99, valid: true}

	if got := c.Gene(0).Value(); got != 1 {
		t.Fatalf("chromosome mutated through Genes copy: got %d, want 1", got)
	}
}

func TestChromosomeWithGenesLeavesOriginal(t *testing.T) {
	c := intChromosome(1, 2, 3)

	genes := c.Genes()
	genes[1] = stubGene{value: 42, valid: true}
	replaced := c.WithGenes(genes)

	if got := replaced.Gene(1).Value(); got != 42 {
		t.Fatalf("replacement chromosome value = %d, want 42", got)
	}
	if got := c.Gene(1).Value(); got != 2 {
		t.Fatalf("original chromosome value = %d, want 2", got)
	}
}

func TestChromosomeVerify(t *testing.T) {
	valid := intChromosome(1, 2)
	if !valid.Verify() {
		t.Fatal("valid chromosome failed verification")
	}

	invalid := NewChromosome([]Gene[int]{stubGene{value: 1, valid: true}, stubGene{value: 2, valid: false}})
	if invalid.Verify() {
		t.Fatal("chromosome with invalid gene passed verification")
	}
}

func TestGenotypeFlatten(t *testing.T) {
	g := NewGenotype(intChromosome(1, 2), intChromosome(3))

	flat := g.Flatten()
	want := []int{1, 2, 3}
	if len(flat) != len(want) {
		t.Fatalf("flatten length = %d, want %d", len(flat), len(want))
	}
	for i, v := range want {
		if flat[i] != v {
			t.Fatalf("flatten[%d] = %d, want %d", i, flat[i], v)
		}
	}
}

func TestGenotypeKeyDistinguishesValues(t *testing.T) {
	a := NewGenotype(intChromosome(1, 2, 3))
	b := NewGenotype(intChromosome(1, 2, 4))
	c := NewGenotype(intChromosome(1, 2, 3))

	if a.Key() == b.Key() {
		t.Fatal("distinct genotypes produced the same key")
	}
	if a.Key() != c.Key() {
		t.Fatal("equal genotypes produced different keys")
	}
}

func TestGenotypeChromosomesReturnsCopy(t *testing.T) {
	g := NewGenotype(intChromosome(1), intChromosome(2))

	chromosomes := g.Chromosomes()
	chromosomes[0] = intChromosome(99)

	if got := g.Chromosome(0).Gene(0).Value(); got != 1 {
		t.Fatalf("genotype mutated through Chromosomes copy: got %d, want 1", got)
	}
}

func TestNewUnevaluatedUsesNaNSentinel(t *testing.T) {
	ind := NewUnevaluated(NewGenotype(intChromosome(1)))

	if !math.IsNaN(ind.Fitness) {
		t.Fatalf("unevaluated fitness = %v, want NaN", ind.Fitness)
	}
	if ind.Evaluated() {
		t.Fatal("unevaluated individual reported as evaluated")
	}
	if ind.Verify() {
		t.Fatal("unevaluated individual passed verification")
	}
}

func TestWithFitnessEvaluates(t *testing.T) {
	ind := NewUnevaluated(NewGenotype(intChromosome(1)))

	scored := ind.WithFitness(3.5)
	if !scored.Evaluated() {
		t.Fatal("scored individual reported as unevaluated")
	}
	if scored.Fitness != 3.5 {
		t.Fatalf("fitness = %v, want 3.5", scored.Fitness)
	}
	if ind.Evaluated() {
		t.Fatal("WithFitness mutated the receiver")
	}
}

func TestPopulationCounts(t *testing.T) {
	g := NewGenotype(intChromosome(1))
	pop := Population[int]{
		NewIndividual(g, 1.0),
		NewUnevaluated(g),
		NewIndividual(g, 2.0),
	}

	if pop.Size() != 3 {
		t.Fatalf("size = %d, want 3", pop.Size())
	}
	if pop.Evaluated() {
		t.Fatal("population with NaN individual reported fully evaluated")
	}
	if got := pop.Unevaluated(); got != 1 {
		t.Fatalf("unevaluated count = %d, want 1", got)
	}
}

func TestPopulationCloneIsIndependent(t *testing.T) {
	g := NewGenotype(intChromosome(1))
	pop := Population[int]{NewIndividual(g, 1.0)}

	clone := pop.Clone()
	clone[0] = clone[0].WithFitness(9.0)

	if pop[0].Fitness != 1.0 {
		t.Fatalf("clone mutation leaked into original: fitness = %v", pop[0].Fitness)
	}
}
