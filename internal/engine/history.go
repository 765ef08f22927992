package engine

import "time"

// History is a read-only snapshot of what the engine has observed so far in
// the current Evolve call. Limits that depend on run history receive it
// instead of holding a back-reference into the engine.
type History struct {
	Start       time.Time
	Evaluations int
	// Best holds the best raw fitness of each completed generation, in order.
	Best []float64
}

func (h History) Generations() int {
	return len(h.Best)
}

// Latest returns the best fitness of the most recent completed generation.
func (h History) Latest() (float64, bool) {
	if len(h.Best) == 0 {
		return 0, false
	}
	return h.Best[len(h.Best)-1], true
}

func (h History) snapshot() History {
	best := make([]float64, len(h.Best))
	copy(best, h.Best)
	return History{Start: h.Start, Evaluations: h.Evaluations, Best: best}
}
