package selection

import "fmt"

// ByName resolves a selector from its configuration name. sampleSize only
// applies to tournament selection; zero picks the default of 2.
func ByName[T any](name string, sampleSize int) (Selector[T], error) {
	switch name {
	case "", "tournament":
		if sampleSize <= 0 {
			sampleSize = 2
		}
		return Tournament[T]{SampleSize: sampleSize}, nil
	case "roulette":
		return RouletteWheel[T]{}, nil
	case "roulette_sorted":
		return RouletteWheel[T]{Sorted: true}, nil
	case "random":
		return Random[T]{}, nil
	default:
		return nil, fmt.Errorf("unsupported selector: %s", name)
	}
}
