package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"darwin/internal/engine"
)

// Metrics holds the Prometheus instruments fed by MetricsListener.
type Metrics struct {
	GenerationsTotal  prometheus.Counter
	EvaluationsTotal  prometheus.Counter
	BestFitness       prometheus.Gauge
	MeanFitness       prometheus.Gauge
	GenerationSeconds prometheus.Histogram
}

// NewMetrics creates the instruments and registers them on the given
// registerer (prometheus.DefaultRegisterer is a sensible choice).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GenerationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "darwin_generations_total",
			Help: "Total number of completed generations",
		}),
		EvaluationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "darwin_evaluations_total",
			Help: "Total number of fitness evaluations",
		}),
		BestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "darwin_best_fitness",
			Help: "Best raw fitness of the latest generation",
		}),
		MeanFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "darwin_mean_fitness",
			Help: "Mean raw fitness of the latest generation",
		}),
		GenerationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "darwin_generation_seconds",
			Help:    "Wall time per generation in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.GenerationsTotal,
			m.EvaluationsTotal,
			m.BestFitness,
			m.MeanFitness,
			m.GenerationSeconds,
		)
	}
	return m
}

// MetricsListener feeds Metrics from the engine's notification points.
type MetricsListener[T any] struct {
	engine.NopListener[T]

	M *Metrics

	evalStart time.Time
	genStart  time.Time
	pending   int
}

func NewMetricsListener[T any](m *Metrics) *MetricsListener[T] {
	return &MetricsListener[T]{M: m}
}

func (l *MetricsListener[T]) OnEvaluationStart(state engine.State[T]) {
	l.evalStart = time.Now()
	l.pending = state.Population.Unevaluated()
	if l.genStart.IsZero() {
		l.genStart = l.evalStart
	}
}

func (l *MetricsListener[T]) OnEvaluationEnd(state engine.State[T]) {
	l.M.EvaluationsTotal.Add(float64(l.pending))
	l.pending = 0
}

func (l *MetricsListener[T]) OnGenerationEnd(state engine.State[T]) {
	l.M.GenerationsTotal.Inc()
	if !l.genStart.IsZero() {
		l.M.GenerationSeconds.Observe(time.Since(l.genStart).Seconds())
		l.genStart = time.Time{}
	}

	if state.Population.Size() == 0 {
		return
	}
	sum := 0.0
	for _, ind := range state.Population {
		sum += ind.Fitness
	}
	l.M.MeanFitness.Set(sum / float64(state.Population.Size()))
	if best, ok := state.Best(); ok {
		l.M.BestFitness.Set(best.Fitness)
	}
}
