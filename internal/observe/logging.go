package observe

import (
	"go.uber.org/zap"

	"darwin/internal/engine"
)

// LoggingListener emits a structured log line at each pipeline phase. Phase
// transitions log at debug level; generation completion logs at info with the
// best fitness of the new population.
type LoggingListener[T any] struct {
	Log *zap.Logger
}

func NewLoggingListener[T any](log *zap.Logger) LoggingListener[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return LoggingListener[T]{Log: log}
}

func (l LoggingListener[T]) phase(name string, state engine.State[T]) {
	l.Log.Debug(name,
		zap.Int("generation", state.Generation),
		zap.Int("population", state.Population.Size()),
	)
}

func (l LoggingListener[T]) OnInitializationStart(state engine.State[T]) {
	l.phase("initialization started", state)
}

func (l LoggingListener[T]) OnInitializationEnd(state engine.State[T]) {
	l.phase("initialization finished", state)
}

func (l LoggingListener[T]) OnEvaluationStart(state engine.State[T]) {
	l.phase("evaluation started", state)
}

func (l LoggingListener[T]) OnEvaluationEnd(state engine.State[T]) {
	l.phase("evaluation finished", state)
}

func (l LoggingListener[T]) OnParentSelectionStart(state engine.State[T]) {
	l.phase("parent selection started", state)
}

func (l LoggingListener[T]) OnParentSelectionEnd(state engine.State[T]) {
	l.phase("parent selection finished", state)
}

func (l LoggingListener[T]) OnSurvivorSelectionStart(state engine.State[T]) {
	l.phase("survivor selection started", state)
}

func (l LoggingListener[T]) OnSurvivorSelectionEnd(state engine.State[T]) {
	l.phase("survivor selection finished", state)
}

func (l LoggingListener[T]) OnAlterationStart(state engine.State[T]) {
	l.phase("alteration started", state)
}

func (l LoggingListener[T]) OnAlterationEnd(state engine.State[T]) {
	l.phase("alteration finished", state)
}

func (l LoggingListener[T]) OnGenerationEnd(state engine.State[T]) {
	fields := []zap.Field{
		zap.Int("generation", state.Generation),
		zap.Int("population", state.Population.Size()),
	}
	if best, ok := state.Best(); ok {
		fields = append(fields, zap.Float64("best_fitness", best.Fitness))
	}
	l.Log.Info("generation finished", fields...)
}
