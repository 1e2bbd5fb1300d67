package affinity

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SimilarityRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_shop_runs_total",
			Help: "Count of per-shop similarity computations by outcome.",
		},
		[]string{"outcome"},
	)

	SimilarityRecordsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "similarity_records_created_total",
			Help: "Total similarity rows written across all recompute runs.",
		},
	)
)

func init() {
	prometheus.MustRegister(SimilarityRunsTotal, SimilarityRecordsCreated)
}
