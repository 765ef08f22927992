package selection

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"darwin/internal/genome"
	"darwin/internal/rank"
)

type idGene struct{ v int }

func (g idGene) Value() int { return g.v }

func (g idGene) WithValue(v int) genome.Gene[int] { return idGene{v: v} }

func (idGene) Verify() bool { return true }

// scoredPopulation builds one individual per fitness value, with a genotype
// carrying the index so selected individuals can be traced back.
func scoredPopulation(fitness ...float64) genome.Population[int] {
	pop := make(genome.Population[int], 0, len(fitness))
	for i, f := range fitness {
		gt := genome.NewGenotype(genome.NewChromosome([]genome.Gene[int]{idGene{v: i}}))
		pop = append(pop, genome.NewIndividual(gt, f))
	}
	return pop
}

func originIndex(ind genome.Individual[int]) int {
	return ind.Genotype.Chromosome(0).Gene(0).Value()
}

func TestCheckArgsErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pop := scoredPopulation(1, 2)

	for _, s := range []Selector[int]{Tournament[int]{SampleSize: 2}, RouletteWheel[int]{}, Random[int]{}} {
		if _, err := s.Select(rng, pop, -1, rank.Max[int]{}); !errors.Is(err, ErrNegativeCount) {
			t.Fatalf("%s: negative count error = %v, want ErrNegativeCount", s.Name(), err)
		}
		if _, err := s.Select(rng, genome.Population[int]{}, 3, rank.Max[int]{}); !errors.Is(err, ErrEmptyPopulation) {
			t.Fatalf("%s: empty population error = %v, want ErrEmptyPopulation", s.Name(), err)
		}
		out, err := s.Select(rng, genome.Population[int]{}, 0, rank.Max[int]{})
		if err != nil {
			t.Fatalf("%s: zero from empty returned error: %v", s.Name(), err)
		}
		if out.Size() != 0 {
			t.Fatalf("%s: zero count returned %d individuals", s.Name(), out.Size())
		}
	}
}

func TestTournamentRejectsInvalidSample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pop := scoredPopulation(1, 2)

	_, err := Tournament[int]{SampleSize: 0}.Select(rng, pop, 2, rank.Max[int]{})
	if !errors.Is(err, ErrInvalidSample) {
		t.Fatalf("error = %v, want ErrInvalidSample", err)
	}
}

func TestTournamentOutputSizeAndMembership(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pop := scoredPopulation(1, 5, 3)

	out, err := Tournament[int]{SampleSize: 2}.Select(rng, pop, 10, rank.Max[int]{})
	if err != nil {
		t.Fatal(err)
	}
	if out.Size() != 10 {
		t.Fatalf("selected %d, want 10", out.Size())
	}
	for _, ind := range out {
		idx := originIndex(ind)
		if idx < 0 || idx >= pop.Size() {
			t.Fatalf("selected individual not from the population: index %d", idx)
		}
	}
}

func TestTournamentPrefersFitter(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pop := scoredPopulation(1, 2, 3, 4)

	const trials = 4000
	counts := make([]int, pop.Size())
	out, err := Tournament[int]{SampleSize: 3}.Select(rng, pop, trials, rank.Max[int]{})
	if err != nil {
		t.Fatal(err)
	}
	for _, ind := range out {
		counts[originIndex(ind)]++
	}

	for i := 1; i < len(counts); i++ {
		if counts[i] <= counts[i-1] {
			t.Fatalf("selection counts not monotone in fitness: %v", counts)
		}
	}
}

func TestTournamentPressureGrowsWithSampleSize(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	pop := scoredPopulation(1, 2, 3, 4)

	// Mean selected fitness rises with the sample size: uniform draws average
	// 2.5, pairs ~3.125, samples of four ~3.617. The gaps dwarf the sampling
	// noise at this trial count.
	const trials = 4000
	means := make([]float64, 0, 3)
	for _, sampleSize := range []int{1, 2, 4} {
		out, err := Tournament[int]{SampleSize: sampleSize}.Select(rng, pop, trials, rank.Max[int]{})
		if err != nil {
			t.Fatal(err)
		}
		sum := 0.0
		for _, ind := range out {
			sum += ind.Fitness
		}
		means = append(means, sum/trials)
	}

	for i := 1; i < len(means); i++ {
		if means[i] < means[i-1] {
			t.Fatalf("mean selected fitness decreased when the sample grew: %v", means)
		}
	}
}

func TestTournamentMinRankerPrefersLower(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pop := scoredPopulation(1, 2, 3, 4)

	const trials = 4000
	counts := make([]int, pop.Size())
	out, err := Tournament[int]{SampleSize: 3}.Select(rng, pop, trials, rank.Min[int]{})
	if err != nil {
		t.Fatal(err)
	}
	for _, ind := range out {
		counts[originIndex(ind)]++
	}

	for i := 1; i < len(counts); i++ {
		if counts[i] >= counts[i-1] {
			t.Fatalf("min-ranker selection counts not decreasing in fitness: %v", counts)
		}
	}
}

func TestProbabilitiesProportionalForMax(t *testing.T) {
	pop := scoredPopulation(1, 2, 3, 4)

	probabilities := Probabilities(pop, rank.Max[int]{})
	want := []float64{0.1, 0.2, 0.3, 0.4}
	for i := range want {
		if math.Abs(probabilities[i]-want[i]) > 1e-9 {
			t.Fatalf("probabilities = %v, want %v", probabilities, want)
		}
	}
}

func TestProbabilitiesShiftNegative(t *testing.T) {
	pop := scoredPopulation(-2, 0, 2)

	probabilities := Probabilities(pop, rank.Max[int]{})
	sum := 0.0
	for i, p := range probabilities {
		if p < 0 {
			t.Fatalf("probability[%d] = %v is negative", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("probabilities sum to %v, want 1", sum)
	}
	if probabilities[0] != 0 {
		t.Fatalf("worst individual should land at probability 0 after shifting, got %v", probabilities[0])
	}
}

func TestProbabilitiesUniformFallback(t *testing.T) {
	pop := scoredPopulation(0, 0, 0)

	probabilities := Probabilities(pop, rank.Max[int]{})
	for i, p := range probabilities {
		if math.Abs(p-1.0/3.0) > 1e-9 {
			t.Fatalf("probability[%d] = %v, want 1/3", i, p)
		}
	}
}

func TestRouletteFollowsProbabilityLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	pop := scoredPopulation(1, 2, 3, 4)

	const trials = 20000
	counts := make([]int, pop.Size())
	out, err := RouletteWheel[int]{}.Select(rng, pop, trials, rank.Max[int]{})
	if err != nil {
		t.Fatal(err)
	}
	for _, ind := range out {
		counts[originIndex(ind)]++
	}

	want := []float64{0.1, 0.2, 0.3, 0.4}
	for i := range want {
		got := float64(counts[i]) / trials
		if math.Abs(got-want[i]) > 0.02 {
			t.Fatalf("empirical frequency[%d] = %v, want %v +/- 0.02", i, got, want[i])
		}
	}
}

func TestRouletteZeroFitnessSelectsUniformly(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	pop := scoredPopulation(0, 0, 0)

	const trials = 9000
	counts := make([]int, pop.Size())
	out, err := RouletteWheel[int]{}.Select(rng, pop, trials, rank.Max[int]{})
	if err != nil {
		t.Fatal(err)
	}
	for _, ind := range out {
		counts[originIndex(ind)]++
	}

	for i, c := range counts {
		got := float64(c) / trials
		if math.Abs(got-1.0/3.0) > 0.03 {
			t.Fatalf("uniform fallback frequency[%d] = %v, want ~1/3", i, got)
		}
	}
}

func TestRouletteMinRankerPrefersLower(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pop := scoredPopulation(1, 2, 3, 4)

	const trials = 8000
	counts := make([]int, pop.Size())
	out, err := RouletteWheel[int]{}.Select(rng, pop, trials, rank.Min[int]{})
	if err != nil {
		t.Fatal(err)
	}
	for _, ind := range out {
		counts[originIndex(ind)]++
	}

	if counts[0] <= counts[3] {
		t.Fatalf("min ranker should favor fitness 1 over 4: counts %v", counts)
	}
}

func TestRouletteSortedSameDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	pop := scoredPopulation(4, 1, 3, 2)

	const trials = 20000
	counts := make(map[float64]int)
	out, err := RouletteWheel[int]{Sorted: true}.Select(rng, pop, trials, rank.Max[int]{})
	if err != nil {
		t.Fatal(err)
	}
	for _, ind := range out {
		counts[ind.Fitness]++
	}

	// Sorting reorders slots, not probability mass: fitness f keeps weight f/10.
	for _, f := range []float64{1, 2, 3, 4} {
		got := float64(counts[f]) / trials
		if math.Abs(got-f/10) > 0.02 {
			t.Fatalf("sorted roulette frequency for fitness %v = %v, want %v", f, got, f/10)
		}
	}
}

func TestRandomSelectsUniformly(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	pop := scoredPopulation(1, 100, 10000)

	const trials = 9000
	counts := make([]int, pop.Size())
	out, err := Random[int]{}.Select(rng, pop, trials, rank.Max[int]{})
	if err != nil {
		t.Fatal(err)
	}
	for _, ind := range out {
		counts[originIndex(ind)]++
	}

	for i, c := range counts {
		got := float64(c) / trials
		if math.Abs(got-1.0/3.0) > 0.03 {
			t.Fatalf("random frequency[%d] = %v, want ~1/3 regardless of fitness", i, got)
		}
	}
}

func TestByName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"", "tournament"},
		{"tournament", "tournament"},
		{"roulette", "roulette"},
		{"roulette_sorted", "roulette"},
		{"random", "random"},
	}
	for _, tc := range cases {
		s, err := ByName[int](tc.name, 0)
		if err != nil {
			t.Fatalf("ByName(%q): %v", tc.name, err)
		}
		if s.Name() != tc.want {
			t.Fatalf("ByName(%q).Name() = %q, want %q", tc.name, s.Name(), tc.want)
		}
	}

	if _, err := ByName[int]("elite", 0); err == nil {
		t.Fatal("unknown selector name did not error")
	}

	s, err := ByName[int]("tournament", 5)
	if err != nil {
		t.Fatal(err)
	}
	if tournament, ok := s.(Tournament[int]); !ok || tournament.SampleSize != 5 {
		t.Fatalf("ByName did not carry the sample size: %#v", s)
	}
}
