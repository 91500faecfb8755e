package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/ports"
)

// Metrics owns a private registry so several servers (and tests) can coexist
// in one process.
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.SummaryVec
	cacheLookups *prometheus.CounterVec
	cacheErrors  prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name:       "nstimes_http_request_duration_seconds",
			Help:       "Latency of served HTTP requests",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, []string{"route", "method", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nstimes_price_cache_lookups_total",
			Help: "Price cache lookups by result",
		}, []string{"result"}),
		cacheErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nstimes_price_cache_write_errors_total",
			Help: "Price cache writes that could not be persisted",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.cacheLookups,
		m.cacheErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// InstrumentCache counts hits, misses and persistence failures of c.
func (m *Metrics) InstrumentCache(c ports.PriceCache) ports.PriceCache {
	if c == nil {
		return nil
	}
	return &instrumentedCache{inner: c, metrics: m}
}

type instrumentedCache struct {
	inner   ports.PriceCache
	metrics *Metrics
}

var _ ports.PriceCache = (*instrumentedCache)(nil)

func (c *instrumentedCache) Get(from, to string, class domain.TravelClass) (int, bool) {
	cents, ok := c.inner.Get(from, to, class)
	if ok {
		c.metrics.cacheLookups.WithLabelValues("hit").Inc()
	} else {
		c.metrics.cacheLookups.WithLabelValues("miss").Inc()
	}
	return cents, ok
}

func (c *instrumentedCache) Set(from, to string, class domain.TravelClass, cents int) error {
	err := c.inner.Set(from, to, class, cents)
	if err != nil {
		c.metrics.cacheErrors.Inc()
	}
	return err
}
