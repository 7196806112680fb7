// Package metrics exposes Prometheus counters for HTTP traffic and journal writes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what handlers depend on; Nop satisfies it in tests.
type Recorder interface {
	RecordRequest(method string, route string, status int, duration time.Duration)
	RecordJournalWrite(entity string, operation string)
	RecordAuthEvent(event string, outcome string)
}

type Collector struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	journalWrites *prometheus.CounterVec
	authEvents    *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ictus_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ictus_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		journalWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ictus_journal_writes_total",
			Help: "Successful writes to medications, logs and observations.",
		}, []string{"entity", "operation"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ictus_auth_events_total",
			Help: "Registration, login and refresh attempts by outcome.",
		}, []string{"event", "outcome"}),
	}

	reg.MustRegister(c.requests, c.latency, c.journalWrites, c.authEvents)
	return c
}

func (c *Collector) RecordRequest(method string, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordJournalWrite(entity string, operation string) {
	c.journalWrites.WithLabelValues(entity, operation).Inc()
}

func (c *Collector) RecordAuthEvent(event string, outcome string) {
	c.authEvents.WithLabelValues(event, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordJournalWrite(string, string) {}
func (Nop) RecordAuthEvent(string, string) {}
