// Package metrics is the single source of truth for Prometheus metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "synergy"

// RequestsTotal counts handled HTTP requests.
// Labels:
//   - method: HTTP method
//   - route: the matched route template (e.g. "/api/projects/:project_id")
//   - status: numeric response status
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// AuthFailuresTotal counts requests rejected by the bearer-token middleware.
var AuthFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected for missing or invalid tokens.",
	},
)
