// Package metrics exposes Prometheus metrics for the dashboard server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wc_dashboard"

// Label names
const (
	AttrMethod  = "method"
	AttrPath    = "path"
	AttrStatus  = "status"
	AttrInput   = "input"
	AttrOutcome = "outcome"
)

// Recorder owns a private Prometheus registry so tests can create as many
// recorders as they like without colliding on the global one.
type Recorder struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	dispatches      *prometheus.CounterVec
	dispatchLatency *prometheus.HistogramVec
	finals          prometheus.Gauge
	countries       prometheus.Gauge
}

// NewRecorder creates a recorder with all collectors registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{AttrMethod, AttrPath, AttrStatus}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{AttrMethod, AttrPath}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callback_dispatches_total",
			Help:      "Callback dispatches by input component and outcome.",
		}, []string{AttrInput, AttrOutcome}),
		dispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "callback_duration_seconds",
			Help:      "Callback latency by input component.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05},
		}, []string{AttrInput}),
		finals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_finals",
			Help:      "Rows in the finals table.",
		}),
		countries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_countries",
			Help:      "Countries in the win-counts table.",
		}),
	}

	r.registry.MustRegister(
		r.requests,
		r.requestLatency,
		r.dispatches,
		r.dispatchLatency,
		r.finals,
		r.countries,
		prometheus.NewGoCollector(),
	)
	return r
}

// Handler serves the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordHTTPRequest tracks one served request
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.requestLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDispatch tracks one callback dispatch
func (r *Recorder) RecordDispatch(input string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.dispatches.WithLabelValues(input, outcome).Inc()
	r.dispatchLatency.WithLabelValues(input).Observe(duration.Seconds())
}

// SetDatasetSize records the size of the loaded tables
func (r *Recorder) SetDatasetSize(finals, countries int) {
	if r == nil {
		return
	}
	r.finals.Set(float64(finals))
	r.countries.Set(float64(countries))
}
