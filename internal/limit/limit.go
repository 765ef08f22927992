package limit

import (
	"time"

	"darwin/internal/engine"
)

// Generations stops once the state's generation counter reaches Max.
type Generations[T any] struct {
	Max int
}

func (Generations[T]) Name() string {
	return "generations"
}

func (l Generations[T]) ShouldStop(state engine.State[T], _ engine.History) bool {
	return state.Generation >= l.Max
}

// TargetFitness stops once the best individual's raw fitness is at least as
// good as Target under the state's ranker, so the same limit works for
// maximization and minimization.
type TargetFitness[T any] struct {
	Target float64
}

func (TargetFitness[T]) Name() string {
	return "target_fitness"
}

func (l TargetFitness[T]) ShouldStop(state engine.State[T], _ engine.History) bool {
	best, ok := state.Best()
	if !ok || !best.Evaluated() {
		return false
	}
	return state.Ranker.CompareFitness(best.Fitness, l.Target) >= 0
}

// Steady stops when the best fitness has not improved for Window consecutive
// generations. It reads the engine's history snapshot rather than holding a
// reference into the engine.
type Steady[T any] struct {
	Window int
}

func (Steady[T]) Name() string {
	return "steady_generations"
}

func (l Steady[T]) ShouldStop(state engine.State[T], history engine.History) bool {
	if l.Window <= 0 || history.Generations() <= l.Window {
		return false
	}

	best := history.Best
	cutoff := len(best) - l.Window
	reference := best[0]
	for _, v := range best[1:cutoff] {
		if state.Ranker.CompareFitness(v, reference) > 0 {
			reference = v
		}
	}
	for _, v := range best[cutoff:] {
		if state.Ranker.CompareFitness(v, reference) > 0 {
			return false
		}
	}
	return true
}

// WallClock stops once the run has consumed its time budget.
type WallClock[T any] struct {
	Budget time.Duration
	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (WallClock[T]) Name() string {
	return "wall_clock"
}

func (l WallClock[T]) ShouldStop(_ engine.State[T], history engine.History) bool {
	now := l.Now
	if now == nil {
		now = time.Now
	}
	return now().Sub(history.Start) >= l.Budget
}

// Evaluations stops once the evaluation budget has been spent.
type Evaluations[T any] struct {
	Max int
}

func (Evaluations[T]) Name() string {
	return "evaluations"
}

func (l Evaluations[T]) ShouldStop(_ engine.State[T], history engine.History) bool {
	return history.Evaluations >= l.Max
}
