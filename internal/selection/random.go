package selection

import (
	"math/rand"

	"darwin/internal/genome"
	"darwin/internal/rank"
)

// Random draws every output slot uniformly from the population. It is the
// degenerate case of roulette-wheel selection with pre-assigned 1/n
// probabilities, kept as a distinct implementation to avoid unnecessary
// floating-point work.
type Random[T any] struct{}

func (Random[T]) Name() string {
	return "random"
}

func (Random[T]) Select(rng *rand.Rand, pop genome.Population[T], count int, _ rank.Ranker[T]) (genome.Population[T], error) {
	if err := checkArgs(pop, count); err != nil {
		return nil, err
	}

	out := make(genome.Population[T], 0, count)
	for slot := 0; slot < count; slot++ {
		out = append(out, pop[rng.Intn(pop.Size())])
	}
	return out, nil
}
