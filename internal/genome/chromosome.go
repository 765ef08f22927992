package genome

// Chromosome is an ordered, fixed-arity sequence of genes of one kind.
// Chromosomes are immutable; operators build replacements via WithGenes.
type Chromosome[T any] struct {
	genes []Gene[T]
}

func NewChromosome[T any](genes []Gene[T]) Chromosome[T] {
	copied := make([]Gene[T], len(genes))
	copy(copied, genes)
	return Chromosome[T]{genes: copied}
}

func (c Chromosome[T]) Size() int {
	return len(c.genes)
}

func (c Chromosome[T]) Gene(i int) Gene[T] {
	return c.genes[i]
}

// Genes returns a copy of the gene sequence.
func (c Chromosome[T]) Genes() []Gene[T] {
	out := make([]Gene[T], len(c.genes))
	copy(out, c.genes)
	return out
}

// WithGenes returns a new chromosome of the same kind holding the given genes.
func (c Chromosome[T]) WithGenes(genes []Gene[T]) Chromosome[T] {
	return NewChromosome(genes)
}

// Verify is the conjunction of all gene verifications.
func (c Chromosome[T]) Verify() bool {
	for _, g := range c.genes {
		if !g.Verify() {
			return false
		}
	}
	return true
}

// Values returns the underlying gene values in order.
func (c Chromosome[T]) Values() []T {
	out := make([]T, len(c.genes))
	for i, g := range c.genes {
		out[i] = g.Value()
	}
	return out
}
