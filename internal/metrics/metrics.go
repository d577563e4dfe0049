package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Provider operation metrics
var (
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipocas_logins_total",
			Help: "Total number of login attempts against pipocas.tv.",
		},
		[]string{"status"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipocas_searches_total",
			Help: "Total number of subtitle searches, per site language.",
		},
		[]string{"language", "status"},
	)

	SubtitleDownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipocas_subtitle_downloads_total",
			Help: "Total number of subtitle downloads.",
		},
		[]string{"status"},
	)
)

// Metric status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func init() {
	prometheus.MustRegister(
		LoginsTotal,
		SearchesTotal,
		SubtitleDownloadsTotal,
	)
}
