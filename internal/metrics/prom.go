package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recipe_box"

var (
	storeWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_writes_total",
			Help:      "Total number of snapshot writes per store",
		},
		[]string{"store"},
	)
	storeWriteBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_write_bytes_total",
			Help:      "Total bytes written per store",
		},
		[]string{"store"},
	)
	storeWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_write_duration_seconds",
			Help:      "Snapshot write latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
		[]string{"store"},
	)
	botCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_commands_total",
			Help:      "Total number of bot commands handled",
		},
		[]string{"command"},
	)
)

// PromRecorder exports store writes as Prometheus metrics.
type PromRecorder struct{}

// RecordWrite implements storage.WriteRecorder.
func (PromRecorder) RecordWrite(_ context.Context, key string, size int, latency time.Duration) error {
	storeWritesTotal.WithLabelValues(key).Inc()
	storeWriteBytes.WithLabelValues(key).Add(float64(size))
	storeWriteDuration.WithLabelValues(key).Observe(latency.Seconds())
	return nil
}

// ObserveCommand counts one handled bot command.
func ObserveCommand(command string) {
	botCommandsTotal.WithLabelValues(command).Inc()
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
