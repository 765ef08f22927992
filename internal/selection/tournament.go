package selection

import (
	"math/rand"

	"darwin/internal/genome"
	"darwin/internal/rank"
)

// Tournament fills each output slot by drawing SampleSize individuals
// uniformly at random with replacement and keeping the one that ranks
// highest. Ties are broken in favor of the first maximum encountered, so the
// outcome is stable under the sampling order. It needs no probability
// normalization, which makes it the numerically robust default.
type Tournament[T any] struct {
	SampleSize int
}

func (Tournament[T]) Name() string {
	return "tournament"
}

func (s Tournament[T]) Select(rng *rand.Rand, pop genome.Population[T], count int, ranker rank.Ranker[T]) (genome.Population[T], error) {
	if s.SampleSize < 1 {
		return nil, ErrInvalidSample
	}
	if err := checkArgs(pop, count); err != nil {
		return nil, err
	}

	out := make(genome.Population[T], 0, count)
	for slot := 0; slot < count; slot++ {
		best := pop[rng.Intn(pop.Size())]
		for i := 1; i < s.SampleSize; i++ {
			candidate := pop[rng.Intn(pop.Size())]
			if ranker.Compare(candidate, best) > 0 {
				best = candidate
			}
		}
		out = append(out, best)
	}
	return out, nil
}
