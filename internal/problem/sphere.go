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

const (
	sphereLo = -5.12
	sphereHi = 5.12
)

// Sphere minimizes the sum of squares over a real-valued vector bounded to
// [-5.12, 5.12) per coordinate. The optimum is 0 at the origin.
type Sphere struct {
	Dimensions int
}

func (Sphere) Name() string {
	return "sphere"
}

func (p Sphere) Description() string {
	return fmt.Sprintf("minimize the sum of squares of a %d-dimensional vector", p.Dimensions)
}

func (p Sphere) Run(ctx context.Context, spec RunSpec) (Result, error) {
	if p.Dimensions <= 0 {
		return Result{}, errors.New("sphere dimensions must be > 0")
	}

	rng := rand.New(rand.NewSource(spec.Seed))
	perturb := alteration.Mutator[float64]{
		IndividualRate: 0.5,
		ChromosomeRate: 1.0,
		GeneRate:       2.0 / float64(p.Dimensions),
		Mutate: func(mrng *rand.Rand, gene genome.Gene[float64]) genome.Gene[float64] {
			double, ok := gene.(genes.DoubleGene)
			if !ok {
				return gene
			}
			return double.Perturb(mrng, 0.25)
		},
	}

	return runEngine(ctx, spec, setup[float64]{
		factory: genes.DoubleChromosomeFactory(rng, p.Dimensions, sphereLo, sphereHi),
		ranker:  rank.Min[float64]{},
		fitness: sumOfSquares,
		alterers: []engine.Alterer[float64]{
			perturb,
			alteration.Crossover[float64]{Rate: 0.5, Op: alteration.Uniform[float64]{}},
		},
		format: func(gt genome.Genotype[float64]) string {
			return fmt.Sprintf("%.4f", gt.Flatten())
		},
	})
}

func sumOfSquares(gt genome.Genotype[float64]) float64 {
	sum := 0.0
	for _, v := range gt.Flatten() {
		sum += v * v
	}
	return sum
}
