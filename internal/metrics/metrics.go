package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CommandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Count of processed bot commands",
		},
		[]string{"command", "status"},
	)
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "Time taken to answer a catalog search",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1},
		},
		[]string{"front_end"},
	)
	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_sent_total",
			Help: "Count of sent bot messages",
		},
		[]string{"type"},
	)
	BroadcastFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_delivery_failures_total",
			Help: "Count of failed broadcast deliveries",
		},
	)
)

// Init registers all collectors.
func Init() {
	prometheus.MustRegister(
		CommandCounter,
		SearchDuration,
		MessagesSent,
		BroadcastFailures,
	)
}

// Serve exposes /metrics on its own port.
func Serve(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		slog.Error("metrics server stopped", "error", err)
	}
}
