package execution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

const namespace = "fold"

var tracer = otel.Tracer("internal/execution")

var (
	launchCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "launches_total",
		Help:      "The total number of kernel launches by target, kernel and outcome.",
	}, []string{"target", "kernel", "outcome"})

	launchDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "launch_duration_seconds",
		Help:      "Time from the start of a launch on the device until every block finished.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 10),
	}, []string{"target", "kernel"})

	elementsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "elements_total",
		Help:      "The total number of input elements processed by successful launches.",
	}, []string{"target"})
)
