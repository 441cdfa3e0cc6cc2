package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(productFetchLatencyMs, productFetchMisses) }

var productFetchLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "product_fetch_latency_ms",
		Help:    "Admin API product lookup latency distribution in milliseconds.",
		Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
	},
	[]string{"success"},
)

var productFetchMisses = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "product_fetch_misses_total",
		Help: "Product lookups that found no product (deleted upstream).",
	},
)

func ObserveProductFetch(latencyMs int, success bool) {
	lbl := "true"
	if !success {
		lbl = "false"
	}
	productFetchLatencyMs.WithLabelValues(lbl).Observe(float64(latencyMs))
}

func IncProductFetchMiss() { productFetchMisses.Inc() }
