package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "senteur_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "senteur_http_request_duration_seconds",
			Help:    "Histogram of response durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "senteur_orders_created_total",
			Help: "Number of orders accepted through checkout",
		},
	)

	// PushDeliveries counts per-subscription delivery attempts by outcome.
	PushDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "senteur_push_deliveries_total",
			Help: "Number of Web Push delivery attempts",
		},
		[]string{"status"},
	)

	Broadcasts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "senteur_realtime_broadcasts_total",
			Help: "Number of events broadcast to the admin group",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "senteur_realtime_connections",
			Help: "Currently connected admin realtime sessions",
		},
	)
)

func Init() {
	prometheus.MustRegister(
		HTTPRequests,
		RequestDuration,
		OrdersCreated,
		PushDeliveries,
		Broadcasts,
		WSConnections,
	)
}
