package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Emails handled by the pipeline, by outcome
	EmailProcessedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readyreply_email_processed_total",
			Help: "Total number of emails processed",
		},
		[]string{"status"}, // status: success, warning, error
	)

	// Filters whose mailbox query failed
	FilterFetchErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "readyreply_filter_fetch_errors_total",
			Help: "Total number of filter fetches that failed",
		},
	)

	PipelineRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readyreply_pipeline_run_duration_seconds",
			Help:    "Pipeline run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~7min
		},
		[]string{"trigger", "outcome"},
	)

	// AI provider call latency (seconds)
	AICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readyreply_ai_call_duration_seconds",
			Help:    "AI provider call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~50s
		},
		[]string{"provider", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readyreply_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

func RecordEmailProcessed(status string) {
	EmailProcessedCount.WithLabelValues(status).Inc()
}

func RecordPipelineRun(trigger, outcome string, duration time.Duration) {
	PipelineRunDuration.WithLabelValues(trigger, outcome).Observe(duration.Seconds())
}

func RecordAICall(provider, status string, duration time.Duration) {
	AICallDuration.WithLabelValues(provider, status).Observe(duration.Seconds())
}

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
