package colorexpr

import "github.com/prometheus/client_golang/prometheus"

const (
	metricsNamespace = "colorexpr"
)

// Metrics holds the package's Prometheus collectors. They are not
// registered anywhere by default; call Metrics.MustRegister with the
// registry of the host program.
var Metrics = newCompilerMetrics()

// CompilerMetrics holds Prometheus metrics for compilation and CPU
// evaluation.
type CompilerMetrics struct {
	compilationTime *prometheus.HistogramVec
	evaluationTime  *prometheus.HistogramVec
	memoLookups     *prometheus.CounterVec
	fills           *prometheus.CounterVec
}

func newCompilerMetrics() *CompilerMetrics {
	return &CompilerMetrics{
		compilationTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "compiler",
				Name:      "compilation_duration_seconds",
				Help:      "Expression compilation time in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 2, 12), // 1µs to ~2ms
			},
			[]string{"dialect", "result"}, // result: "success" or "error"
		),
		evaluationTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "kernel",
				Name:      "evaluation_duration_seconds",
				Help:      "CPU evaluation time of one image in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 100µs to ~1.6s
			},
			[]string{"result"},
		),
		memoLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "compiler",
				Name:      "memo_lookups_total",
				Help:      "Memo table lookups of compiled programs.",
			},
			[]string{"result"}, // "hit" or "miss"
		),
		fills: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "compiler",
				Name:      "filled_channels_total",
				Help:      "Output channels supplied by the fill policy, by color space of the first part.",
			},
			[]string{"space"},
		),
	}
}

// ObserveCompilation records a compilation duration.
func (m *CompilerMetrics) ObserveCompilation(d Dialect, durationSeconds float64, err error) {
	m.compilationTime.WithLabelValues(d.String(), result(err)).Observe(durationSeconds)
}

// ObserveEvaluation records the duration of evaluating a program over an image.
func (m *CompilerMetrics) ObserveEvaluation(durationSeconds float64, err error) {
	m.evaluationTime.WithLabelValues(result(err)).Observe(durationSeconds)
}

func (m *CompilerMetrics) observeMemo(hit bool) {
	label := "miss"
	if hit {
		label = "hit"
	}
	m.memoLookups.WithLabelValues(label).Inc()
}

func (m *CompilerMetrics) observeFills(space ColorSpace, n int) {
	if n > 0 {
		m.fills.WithLabelValues(space.String()).Add(float64(n))
	}
}

// MustRegister registers the metrics with the given Prometheus registry.
func (m *CompilerMetrics) MustRegister(registry prometheus.Registerer) {
	registry.MustRegister(m.compilationTime)
	registry.MustRegister(m.evaluationTime)
	registry.MustRegister(m.memoLookups)
	registry.MustRegister(m.fills)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
