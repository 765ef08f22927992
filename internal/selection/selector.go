package selection

import (
	"errors"
	"math/rand"

	"darwin/internal/genome"
	"darwin/internal/rank"
)

var (
	ErrEmptyPopulation = errors.New("population is empty")
	ErrNegativeCount   = errors.New("selection count must be >= 0")
	ErrInvalidSample   = errors.New("tournament sample size must be >= 1")
)

// Selector produces a sub-population of exactly the requested size. Selection
// is with replacement, so the output may contain duplicates.
type Selector[T any] interface {
	Name() string
	Select(rng *rand.Rand, pop genome.Population[T], count int, ranker rank.Ranker[T]) (genome.Population[T], error)
}

func checkArgs[T any](pop genome.Population[T], count int) error {
	if count < 0 {
		return ErrNegativeCount
	}
	if count > 0 && pop.Size() == 0 {
		return ErrEmptyPopulation
	}
	return nil
}
