package problem

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"darwin/internal/alteration"
	"darwin/internal/engine"
	"darwin/internal/genes"
	"darwin/internal/genome"
	"darwin/internal/rank"
)

// DeceptiveTrap maximizes the concatenated k-bit trap function: a block of
// all ones scores BlockSize, every other block scores BlockSize minus its
// ones count minus one, so the gradient inside a block points away from the
// optimum. The global optimum is Blocks * BlockSize, all bits set.
type DeceptiveTrap struct {
	Blocks    int
	BlockSize int
}

func (DeceptiveTrap) Name() string {
	return "trap"
}

func (p DeceptiveTrap) Description() string {
	return fmt.Sprintf("maximize %d concatenated deceptive %d-bit trap blocks", p.Blocks, p.BlockSize)
}

func (p DeceptiveTrap) Run(ctx context.Context, spec RunSpec) (Result, error) {
	if p.Blocks <= 0 || p.BlockSize <= 0 {
		return Result{}, errors.New("trap blocks and block size must be > 0")
	}

	length := p.Blocks * p.BlockSize
	rng := rand.New(rand.NewSource(spec.Seed))
	return runEngine(ctx, spec, setup[bool]{
		factory: genes.BoolChromosomeFactory(rng, length, 0.5),
		ranker:  rank.Max[bool]{},
		fitness: p.score,
		alterers: []engine.Alterer[bool]{
			alteration.NewBitFlip(0.3, 1.0, 1.0/float64(length)),
			alteration.Crossover[bool]{Rate: 0.6, Op: alteration.Uniform[bool]{}},
		},
		format: formatBits,
	})
}

func (p DeceptiveTrap) score(gt genome.Genotype[bool]) float64 {
	bits := gt.Flatten()
	fitness := 0.0
	for block := 0; block < p.Blocks; block++ {
		ones := 0
		for i := block * p.BlockSize; i < (block+1)*p.BlockSize; i++ {
			if bits[i] {
				ones++
			}
		}
		if ones == p.BlockSize {
			fitness += float64(p.BlockSize)
		} else {
			fitness += float64(p.BlockSize - ones - 1)
		}
	}
	return fitness
}
