package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimates_total",
			Help: "Total number of estimate calculations by case type and outcome",
		},
		[]string{"case_type", "outcome"},
	)

	EstimateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estimate_duration_seconds",
			Help:    "Duration of estimate calculations in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05},
		},
		[]string{"case_type"},
	)

	EstimateAdjustedTotal = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estimate_adjusted_total_dollars",
			Help:    "Distribution of liability-adjusted estimate totals",
			Buckets: prometheus.ExponentialBuckets(10000, 2.5, 10),
		},
		[]string{"case_type"},
	)

	ValidationIssues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimate_validation_issues_total",
			Help: "Input validation findings by case type and code",
		},
		[]string{"case_type", "code"},
	)

	CalculatorEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_events_total",
			Help: "Calculator funnel events by calculator type and action",
		},
		[]string{"calculator_type", "action"},
	)

	CalculatorEstimatedValue = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calculator_estimated_value_dollars",
			Help:    "Estimated values reported by completed calculator sessions",
			Buckets: prometheus.ExponentialBuckets(10000, 2.5, 10),
		},
		[]string{"calculator_type"},
	)
)
