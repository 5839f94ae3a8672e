package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RoutesChecked  prometheus.Counter
	FaresExtracted prometheus.Counter
	AlertsSent     prometheus.Counter
	CycleDuration  prometheus.Histogram
	ErrorsCount    *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the given registerer
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RoutesChecked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_checked_total",
			Help:      "The total number of routes checked",
		}),
		FaresExtracted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fares_extracted_total",
			Help:      "The total number of successful fare extractions",
		}),
		AlertsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_sent_total",
			Help:      "The total number of alert messages delivered",
		}),
		CycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Time taken by one full monitoring cycle",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
