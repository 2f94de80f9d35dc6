// Package metrics records tool dispatch outcomes for Prometheus scraping.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tidecloud/tidebridge/pkg/domain"
)

// Collector tracks dispatched tool calls and upstream behavior. It owns its
// registry so embedders and tests can create more than one without colliding
// on the process-global default.
type Collector struct {
	registry  *prometheus.Registry
	toolCalls *prometheus.CounterVec
	upstream  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// NewCollector creates a Collector with all metric families registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tidebridge_tool_calls_total",
				Help: "Total number of dispatched tool calls by outcome",
			},
			[]string{"tool", "outcome"},
		),
		upstream: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tidebridge_upstream_errors_total",
				Help: "Upstream error responses by method and status code",
			},
			[]string{"method", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "tidebridge_upstream_duration_seconds",
				Help: "Duration of upstream calls",
			},
			[]string{"tool"},
		),
	}
	c.registry.MustRegister(c.toolCalls, c.upstream, c.latency)
	return c
}

// Hooks returns dispatch hooks recording one sample per completed call.
// Invocations rejected before dispatch (validation, unknown tool, missing
// credentials) never reach the hooks and are not counted here.
func (c *Collector) Hooks() domain.CallHooks {
	return domain.CallHooks{
		OnResult: func(ctx context.Context, e *domain.CallEvent) {
			outcome := "success"
			if e.Err != nil {
				outcome = "error"
			}
			c.toolCalls.WithLabelValues(e.Tool, outcome).Inc()
			c.latency.WithLabelValues(e.Tool).Observe(e.Duration.Seconds())

			if e.Err != nil && e.Status != 0 {
				c.upstream.WithLabelValues(e.Method, strconv.Itoa(e.Status)).Inc()
			}
		},
	}
}

// Handler serves the collected metrics in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
