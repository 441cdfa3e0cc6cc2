package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(scansTotal, qrImagesTotal) }

var scansTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "qr_scans_total",
		Help: "Scan endpoint hits by outcome (redirected/not_found/bad_request/error).",
	},
	[]string{"outcome"},
)

var qrImagesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "qr_images_generated_total",
		Help: "QR images generated, by requested encoding.",
	},
	[]string{"encoding"}, // 'png' or 'data_url'
)

func IncScan(outcome string) {
	scansTotal.WithLabelValues(norm(outcome)).Inc()
}

func IncQRImage(encoding string) {
	qrImagesTotal.WithLabelValues(norm(encoding)).Inc()
}
