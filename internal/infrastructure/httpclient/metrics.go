package httpclient

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metric names.
const (
	MetricRequestsTotal          = "console_http_requests_total"
	MetricRequestDurationSeconds = "console_http_request_duration_seconds"
)

// Metrics records one sample per pipeline call. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	requestsTotal          *prometheus.CounterVec
	requestDurationSeconds *prometheus.HistogramVec
}

// NewMetrics creates the pipeline metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRequestsTotal,
			Help: "Backend calls issued by the console, by method and outcome.",
		}, []string{"method", "outcome"}),
		requestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricRequestDurationSeconds,
			Help:    "Latency of backend calls that received a response.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	for _, c := range []prometheus.Collector{m.requestsTotal, m.requestDurationSeconds} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering pipeline metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) observe(method string, err error, elapsed time.Duration, responded bool) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, outcome(err)).Inc()
	if responded {
		m.requestDurationSeconds.WithLabelValues(method).Observe(elapsed.Seconds())
	}
}
