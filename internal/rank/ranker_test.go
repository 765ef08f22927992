package rank

import (
	"testing"

	"darwin/internal/genome"
)

type unitGene struct{ v float64 }

func (g unitGene) Value() float64 { return g.v }

func (g unitGene) WithValue(v float64) genome.Gene[float64] { return unitGene{v: v} }

func (unitGene) Verify() bool { return true }

func scored(fitness float64) genome.Individual[float64] {
	gt := genome.NewGenotype(genome.NewChromosome([]genome.Gene[float64]{unitGene{v: fitness}}))
	return genome.NewIndividual(gt, fitness)
}

func TestMaxCompare(t *testing.T) {
	r := Max[float64]{}

	if got := r.Compare(scored(2), scored(1)); got != 1 {
		t.Fatalf("Compare(2, 1) = %d, want 1", got)
	}
	if got := r.Compare(scored(1), scored(2)); got != -1 {
		t.Fatalf("Compare(1, 2) = %d, want -1", got)
	}
	if got := r.Compare(scored(3), scored(3)); got != 0 {
		t.Fatalf("Compare(3, 3) = %d, want 0", got)
	}
}

func TestMinIsMaxReversed(t *testing.T) {
	maxRank := Max[float64]{}
	minRank := Min[float64]{}

	pairs := [][2]float64{{1, 2}, {2, 1}, {0, 0}, {-1.5, 3.5}}
	for _, pair := range pairs {
		a, b := scored(pair[0]), scored(pair[1])
		if maxRank.Compare(a, b) != -minRank.Compare(a, b) {
			t.Fatalf("min is not the reverse of max for fitness %v vs %v", pair[0], pair[1])
		}
	}
}

func TestCompareAntisymmetry(t *testing.T) {
	for _, r := range []Ranker[float64]{Max[float64]{}, Min[float64]{}} {
		a, b := scored(1.25), scored(4.5)
		if r.Compare(a, b) != -r.Compare(b, a) {
			t.Fatalf("%s: Compare is not antisymmetric", r.Name())
		}
	}
}

func TestMaxTransformIsIdentity(t *testing.T) {
	values := []float64{3, 1, 2}

	out := Max[float64]{}.Transform(values)
	for i, v := range values {
		if out[i] != v {
			t.Fatalf("transform[%d] = %v, want %v", i, out[i], v)
		}
	}

	out[0] = 99
	if values[0] != 3 {
		t.Fatal("transform aliases the input slice")
	}
}

func TestMinTransformReversesOrder(t *testing.T) {
	values := []float64{1, 2, 3}

	out := Min[float64]{}.Transform(values)
	// sum = 6: 1 -> 5, 2 -> 4, 3 -> 2+1=3.
	want := []float64{5, 4, 3}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("transform[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if out[0] <= out[2] {
		t.Fatal("transform did not make the lowest raw fitness the largest")
	}
}

func TestSortBestFirst(t *testing.T) {
	pop := genome.Population[float64]{scored(1), scored(3), scored(2)}

	sorted := Sort[float64](Max[float64]{}, pop)
	if sorted[0].Fitness != 3 || sorted[2].Fitness != 1 {
		t.Fatalf("max sort order = [%v %v %v], want [3 2 1]",
			sorted[0].Fitness, sorted[1].Fitness, sorted[2].Fitness)
	}

	sorted = Sort[float64](Min[float64]{}, pop)
	if sorted[0].Fitness != 1 || sorted[2].Fitness != 3 {
		t.Fatalf("min sort order = [%v %v %v], want [1 2 3]",
			sorted[0].Fitness, sorted[1].Fitness, sorted[2].Fitness)
	}

	if pop[0].Fitness != 1 {
		t.Fatal("sort mutated the input population")
	}
}
