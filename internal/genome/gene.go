package genome

// Gene is the smallest unit of encoded information: one value plus a
// domain-validity rule. Genes are immutable; a mutation produces a new gene
// of the same kind via WithValue.
type Gene[T any] interface {
	Value() T
	// WithValue returns a new gene of the same kind and constraints holding
	// the given value.
	WithValue(value T) Gene[T]
	Verify() bool
}
