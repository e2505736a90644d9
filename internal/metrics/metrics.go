package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Collectors records catalog source reads and cart operations.
// A nil *Collectors is valid and records nothing.
type Collectors struct {
	sourceDuration *prometheus.HistogramVec
	sourceFailures *prometheus.CounterVec
	cartOperations *prometheus.CounterVec
}

// New registers the collectors on reg. A nil registerer yields a no-op value.
func New(reg prometheus.Registerer) *Collectors {
	if reg == nil {
		return &Collectors{}
	}
	sourceDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_source_fetch_duration_seconds",
		Help:    "Duration of reads against one catalog source collection.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	sourceFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_source_fetch_failures_total",
		Help: "Failed reads against one catalog source collection.",
	}, []string{"source"})
	cartOperations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart operations applied, by operation.",
	}, []string{"operation"})
	reg.MustRegister(sourceDuration, sourceFailures, cartOperations)
	return &Collectors{
		sourceDuration: sourceDuration,
		sourceFailures: sourceFailures,
		cartOperations: cartOperations,
	}
}

func (c *Collectors) ObserveSource(source string, d time.Duration, err error) {
	if c == nil || c.sourceDuration == nil {
		return
	}
	c.sourceDuration.WithLabelValues(source).Observe(d.Seconds())
	if err != nil {
		c.sourceFailures.WithLabelValues(source).Inc()
	}
}

func (c *Collectors) IncCartOperation(op string) {
	if c == nil || c.cartOperations == nil {
		return
	}
	c.cartOperations.WithLabelValues(op).Inc()
}
