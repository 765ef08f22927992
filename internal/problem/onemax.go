package problem

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"darwin/internal/alteration"
	"darwin/internal/engine"
	"darwin/internal/genes"
	"darwin/internal/genome"
	"darwin/internal/rank"
)

// OneMax maximizes the number of set bits in a fixed-length bit string. The
// optimum is Length.
type OneMax struct {
	Length int
}

func (OneMax) Name() string {
	return "onemax"
}

func (p OneMax) Description() string {
	return fmt.Sprintf("maximize the number of ones in a %d-bit string", p.Length)
}

func (p OneMax) Run(ctx context.Context, spec RunSpec) (Result, error) {
	if p.Length <= 0 {
		return Result{}, errors.New("onemax length must be > 0")
	}

	rng := rand.New(rand.NewSource(spec.Seed))
	return runEngine(ctx, spec, setup[bool]{
		factory: genes.BoolChromosomeFactory(rng, p.Length, 0.5),
		ranker:  rank.Max[bool]{},
		fitness: countOnes,
		alterers: []engine.Alterer[bool]{
			alteration.NewBitFlip(0.3, 1.0, 1.0/float64(p.Length)),
			alteration.Crossover[bool]{Rate: 0.6, Op: alteration.SinglePoint[bool]{}},
		},
		format: formatBits,
	})
}

func countOnes(gt genome.Genotype[bool]) float64 {
	ones := 0
	for _, bit := range gt.Flatten() {
		if bit {
			ones++
		}
	}
	return float64(ones)
}

func formatBits(gt genome.Genotype[bool]) string {
	var b strings.Builder
	for _, bit := range gt.Flatten() {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
