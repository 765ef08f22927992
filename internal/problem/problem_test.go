package problem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"darwin/internal/genes"
	"darwin/internal/genome"
)

func rate(v float64) *float64 { return &v }

func TestRegistry(t *testing.T) {
	resetRegistryForTests()
	t.Cleanup(resetRegistryForTests)

	require.NoError(t, Register(OneMax{Length: 8}))
	require.ErrorIs(t, Register(OneMax{Length: 16}), ErrProblemExists)

	p, err := Resolve("onemax")
	require.NoError(t, err)
	require.Equal(t, "onemax", p.Name())

	_, err = Resolve("rastrigin")
	require.ErrorIs(t, err, ErrProblemNotFound)

	require.NoError(t, Register(Sphere{Dimensions: 4}))
	names := make([]string, 0, 2)
	for _, item := range List() {
		names = append(names, item.Name())
	}
	require.Equal(t, []string{"onemax", "sphere"}, names)
}

func TestRegisterDefaults(t *testing.T) {
	resetRegistryForTests()
	t.Cleanup(resetRegistryForTests)

	require.NoError(t, RegisterDefaults())
	for _, name := range []string{"onemax", "sphere", "trap"} {
		_, err := Resolve(name)
		require.NoError(t, err, name)
	}
}

func TestRegisterValidation(t *testing.T) {
	require.Error(t, Register(nil))
}

func TestOneMaxRunImproves(t *testing.T) {
	result, err := OneMax{Length: 32}.Run(context.Background(), RunSpec{
		PopulationSize: 40,
		SurvivalRate:   rate(0.3),
		Generations:    50,
		Seed:           7,
	})
	require.NoError(t, err)

	require.Equal(t, 50, result.Generations)
	require.Len(t, result.History, 50)
	require.Len(t, result.Diagnostics, 50)
	require.Len(t, result.BestSolution, 32)
	// Random 32-bit strings average 16 ones; evolution should do clearly
	// better within 50 generations.
	require.GreaterOrEqual(t, result.BestFitness, 24.0)
	require.Greater(t, result.Evaluations, 40)
}

func TestOneMaxStopsAtTarget(t *testing.T) {
	target := 20.0
	result, err := OneMax{Length: 32}.Run(context.Background(), RunSpec{
		PopulationSize: 40,
		SurvivalRate:   rate(0.3),
		Generations:    200,
		Seed:           7,
		TargetFitness:  &target,
	})
	require.NoError(t, err)
	require.Less(t, result.Generations, 200)
	require.GreaterOrEqual(t, result.BestFitness, target)
}

func TestRunSpecDefaultsKeepExplicitZeroSurvivalRate(t *testing.T) {
	spec := RunSpec{SurvivalRate: rate(0)}.withDefaults()
	require.Equal(t, 0.0, *spec.SurvivalRate)

	spec = RunSpec{}.withDefaults()
	require.Equal(t, DefaultSurvivalRate, *spec.SurvivalRate)
}

func TestOneMaxRunsWithZeroSurvivalRate(t *testing.T) {
	result, err := OneMax{Length: 16}.Run(context.Background(), RunSpec{
		PopulationSize: 20,
		SurvivalRate:   rate(0),
		Generations:    5,
		Seed:           17,
	})
	require.NoError(t, err)
	require.Len(t, result.History, 5)
}

func TestOneMaxRejectsBadLength(t *testing.T) {
	_, err := OneMax{}.Run(context.Background(), RunSpec{})
	require.Error(t, err)
}

func TestSphereRunMinimizes(t *testing.T) {
	result, err := Sphere{Dimensions: 8}.Run(context.Background(), RunSpec{
		PopulationSize: 40,
		SurvivalRate:   rate(0.3),
		Generations:    60,
		Seed:           11,
	})
	require.NoError(t, err)

	// Random vectors in [-5.12, 5.12) have an expected sum of squares around
	// 8 * 8.7 ~= 70; minimization should land far below the starting point.
	first := result.History[0]
	require.Less(t, result.BestFitness, first)
	require.Less(t, result.BestFitness, 20.0)
}

func TestSphereWorkersMatchSequentialShape(t *testing.T) {
	result, err := Sphere{Dimensions: 4}.Run(context.Background(), RunSpec{
		PopulationSize: 20,
		SurvivalRate:   rate(0.4),
		Generations:    10,
		Seed:           3,
		Workers:        4,
	})
	require.NoError(t, err)
	require.Len(t, result.History, 10)
}

func TestTrapScore(t *testing.T) {
	p := DeceptiveTrap{Blocks: 2, BlockSize: 5}

	genotype := func(bits ...bool) genome.Genotype[bool] {
		gs := make([]genome.Gene[bool], len(bits))
		for i, b := range bits {
			gs[i] = genes.NewBoolGene(b)
		}
		return genome.NewGenotype(genome.NewChromosome(gs))
	}

	allOnes := genotype(true, true, true, true, true, true, true, true, true, true)
	require.Equal(t, 10.0, p.score(allOnes))

	allZeros := genotype(false, false, false, false, false, false, false, false, false, false)
	require.Equal(t, 8.0, p.score(allZeros))

	// Four ones in a block of five is the deceptive trough: 5-4-1 = 0.
	fourOnes := genotype(true, true, true, true, false, false, false, false, false, false)
	require.Equal(t, 4.0, p.score(fourOnes))
}

func TestTrapRunProducesHistory(t *testing.T) {
	result, err := DeceptiveTrap{Blocks: 4, BlockSize: 5}.Run(context.Background(), RunSpec{
		PopulationSize: 30,
		SurvivalRate:   rate(0.3),
		Generations:    20,
		Seed:           5,
	})
	require.NoError(t, err)
	require.Len(t, result.History, 20)
	require.Greater(t, result.BestFitness, 0.0)
}

func TestRunSpecCacheStats(t *testing.T) {
	result, err := OneMax{Length: 16}.Run(context.Background(), RunSpec{
		PopulationSize: 20,
		SurvivalRate:   rate(0.5),
		Generations:    15,
		Seed:           9,
		CacheSize:      256,
	})
	require.NoError(t, err)
	// Selection with replacement duplicates genotypes, so a warm cache must
	// see at least one hit over 15 generations.
	require.Greater(t, result.CacheHits, int64(0))
	require.Greater(t, result.CacheMisses, int64(0))
}

func TestRunSpecRejectsUnknownSelector(t *testing.T) {
	_, err := OneMax{Length: 8}.Run(context.Background(), RunSpec{Selector: "elite"})
	require.Error(t, err)
}

func TestRunSpecRouletteSelector(t *testing.T) {
	result, err := OneMax{Length: 16}.Run(context.Background(), RunSpec{
		PopulationSize: 30,
		SurvivalRate:   rate(0.4),
		Generations:    20,
		Seed:           13,
		Selector:       "roulette",
	})
	require.NoError(t, err)
	require.Len(t, result.History, 20)
}
