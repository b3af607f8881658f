package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "video_gateway"

type Metrics struct {
	Requests         *prometheus.CounterVec
	RelayedBytes     prometheus.Counter
	RelayDuration    prometheus.Histogram
	DownstreamErrors *prometheus.CounterVec
	EventsPublished  prometheus.Counter
	PublishFailures  prometheus.Counter
	EventsDropped    prometheus.Counter

	gatherer prometheus.Gatherer
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Inbound video requests by response status.",
		}, []string{"status"}),
		RelayedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relayed_bytes_total",
			Help:      "Bytes relayed from video storage to clients.",
		}),
		RelayDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "relay_duration_seconds",
			Help:      "Time spent streaming a video body to the client.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		DownstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downstream_errors_total",
			Help:      "Failed fetches from video storage.",
		}, []string{"kind"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "viewed_events_published_total",
			Help:      "Viewed events handed to the broker.",
		}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "viewed_events_failed_total",
			Help:      "Viewed events whose publish attempt failed.",
		}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "viewed_events_dropped_total",
			Help:      "Viewed events dropped because the publish queue was full.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.Requests,
		m.RelayedBytes,
		m.RelayDuration,
		m.DownstreamErrors,
		m.EventsPublished,
		m.PublishFailures,
		m.EventsDropped,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
