package selection

import (
	"math"
	"math/rand"
	"sort"

	"darwin/internal/genome"
	"darwin/internal/rank"
)

// RouletteWheel implements fitness-proportionate selection. Raw fitness
// values pass through the ranker's transform, get shifted so that none is
// negative, and are normalized by their sum into a probability vector. A
// zero, NaN or infinite sum falls back to a uniform distribution; that is the
// required degenerate-case policy, not an error.
type RouletteWheel[T any] struct {
	// Sorted ranks the population descending before assigning probabilities.
	// It does not change selection probabilities, only which order they are
	// associated with slots.
	Sorted bool
}

func (RouletteWheel[T]) Name() string {
	return "roulette"
}

func (s RouletteWheel[T]) Select(rng *rand.Rand, pop genome.Population[T], count int, ranker rank.Ranker[T]) (genome.Population[T], error) {
	if err := checkArgs(pop, count); err != nil {
		return nil, err
	}
	if count == 0 {
		return genome.Population[T]{}, nil
	}

	candidates := pop
	if s.Sorted {
		candidates = rank.Sort(ranker, pop)
	}

	probabilities := Probabilities(candidates, ranker)
	cumulative := make([]float64, len(probabilities))
	acc := 0.0
	for i, p := range probabilities {
		acc += p
		cumulative[i] = acc
	}
	// Guard the tail against rounding drift so every draw lands.
	cumulative[len(cumulative)-1] = 1.0

	out := make(genome.Population[T], 0, count)
	for slot := 0; slot < count; slot++ {
		draw := rng.Float64()
		idx := sort.SearchFloat64s(cumulative, draw)
		if idx >= len(candidates) {
			idx = len(candidates) - 1
		}
		out = append(out, candidates[idx])
	}
	return out, nil
}

// Probabilities computes the per-individual selection probability vector for
// a population under a ranker. The result is non-negative and sums to 1.
func Probabilities[T any](pop genome.Population[T], ranker rank.Ranker[T]) []float64 {
	values := make([]float64, pop.Size())
	for i, ind := range pop {
		values[i] = ind.Fitness
	}
	transformed := ranker.Transform(values)

	minValue := math.Inf(1)
	for _, v := range transformed {
		if v < minValue {
			minValue = v
		}
	}
	shift := -math.Min(0, minValue)

	sum := 0.0
	for i := range transformed {
		transformed[i] += shift
		sum += transformed[i]
	}

	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		uniform := make([]float64, len(transformed))
		for i := range uniform {
			uniform[i] = 1.0 / float64(len(uniform))
		}
		return uniform
	}

	for i := range transformed {
		transformed[i] /= sum
	}
	return transformed
}
