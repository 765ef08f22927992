package observe

import (
	"time"

	"darwin/internal/engine"
	"darwin/internal/genome"
	"darwin/internal/model"
)

// Recorder collects per-generation diagnostics and the best-fitness history
// of one run. It is a pure observer; the engine never reads it back.
type Recorder[T any] struct {
	engine.NopListener[T]

	now func() time.Time

	genStart    time.Time
	history     []float64
	diagnostics []model.GenerationDiagnostics
	best        genome.Individual[T]
	hasBest     bool
}

func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{now: time.Now}
}

func (r *Recorder[T]) OnEvaluationStart(state engine.State[T]) {
	if r.genStart.IsZero() {
		r.genStart = r.now()
	}
}

func (r *Recorder[T]) OnGenerationEnd(state engine.State[T]) {
	duration := 0.0
	if !r.genStart.IsZero() {
		duration = float64(r.now().Sub(r.genStart).Nanoseconds()) / 1e6
		r.genStart = time.Time{}
	}

	if state.Population.Size() == 0 {
		return
	}

	best, _ := state.Best()
	sum := 0.0
	minFitness := state.Population[0].Fitness
	unique := make(map[string]struct{}, state.Population.Size())
	for _, ind := range state.Population {
		sum += ind.Fitness
		if ind.Fitness < minFitness {
			minFitness = ind.Fitness
		}
		unique[ind.Genotype.Key()] = struct{}{}
	}

	r.history = append(r.history, best.Fitness)
	r.diagnostics = append(r.diagnostics, model.GenerationDiagnostics{
		Generation:  state.Generation,
		BestFitness: best.Fitness,
		MeanFitness: sum / float64(state.Population.Size()),
		MinFitness:  minFitness,
		Unique:      len(unique),
		DurationMS:  duration,
	})

	if !r.hasBest || state.Ranker.Compare(best, r.best) > 0 {
		r.best = best
		r.hasBest = true
	}
}

// History returns the best raw fitness per generation.
func (r *Recorder[T]) History() []float64 {
	out := make([]float64, len(r.history))
	copy(out, r.history)
	return out
}

func (r *Recorder[T]) Diagnostics() []model.GenerationDiagnostics {
	out := make([]model.GenerationDiagnostics, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// Best returns the ranker-best individual seen across all generations.
func (r *Recorder[T]) Best() (genome.Individual[T], bool) {
	return r.best, r.hasBest
}
