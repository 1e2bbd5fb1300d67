package attribution

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attribution_orders_total",
			Help: "Orders processed by the attribution matcher, by outcome.",
		},
		[]string{"outcome"},
	)

	AttributedRevenueTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "attribution_revenue_total",
			Help: "Total revenue credited to recommendations.",
		},
	)
)

func init() {
	prometheus.MustRegister(OrdersProcessedTotal, AttributedRevenueTotal)
}
