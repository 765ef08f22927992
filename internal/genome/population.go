package genome

// Population is an ordered collection of individuals. Ordering is insertion
// order, not fitness order, unless explicitly sorted by a ranker.
type Population[T any] []Individual[T]

func (p Population[T]) Size() int {
	return len(p)
}

// Evaluated reports whether every individual carries a real fitness score.
func (p Population[T]) Evaluated() bool {
	for _, ind := range p {
		if !ind.Evaluated() {
			return false
		}
	}
	return true
}

// Unevaluated counts the individuals still carrying the NaN sentinel.
func (p Population[T]) Unevaluated() int {
	n := 0
	for _, ind := range p {
		if !ind.Evaluated() {
			n++
		}
	}
	return n
}

// Clone returns a shallow copy of the population slice. Individuals are value
// types, so the copy shares no mutable state with the original.
func (p Population[T]) Clone() Population[T] {
	out := make(Population[T], len(p))
	copy(out, p)
	return out
}
