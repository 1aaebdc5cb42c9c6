package site

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the site's Prometheus collectors on a private registry.
type Metrics struct {
	Registry        *prometheus.Registry
	ThemeSelections *prometheus.CounterVec
	IndexBuilds     prometheus.Counter
	IndexPosts      prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ThemeSelections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "site",
			Name:      "theme_selections_total",
			Help:      "Theme choices made from the toggle menu.",
		}, []string{"theme"}),
		IndexBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "site",
			Name:      "post_index_builds_total",
			Help:      "Posts index snapshots prepared.",
		}),
		IndexPosts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "site",
			Name:      "post_index_posts",
			Help:      "Posts in the most recent index snapshot.",
		}),
	}
	m.Registry.MustRegister(
		m.ThemeSelections,
		m.IndexBuilds,
		m.IndexPosts,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeIndex(ix PostIndex) {
	m.IndexBuilds.Inc()
	m.IndexPosts.Set(float64(len(ix.Posts)))
}
