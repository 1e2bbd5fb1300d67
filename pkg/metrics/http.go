package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the similarity recompute job endpoint
	SimilarityJobDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "similarity_job_duration_seconds",
		Help:    "Duration of full similarity recompute runs",
		Buckets: prometheus.DefBuckets,
	})

	// Total order webhooks received
	OrderWebhooksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_webhooks_total",
		Help: "Total order-created webhooks received",
	})
)

func Init() {
	prometheus.MustRegister(
		SimilarityJobDuration,
		OrderWebhooksTotal,
	)
}
