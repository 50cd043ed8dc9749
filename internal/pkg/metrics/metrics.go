// Package metrics defines and registers the custom Prometheus metrics of the
// tracker. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// ── Domain operations ────────────────────────────────────────────────────────

// OperationsTotal counts domain service calls.
// Labels:
//   - entity: "user", "role", "session", "task", "notification"
//   - operation: "create", "update", "delete", "get", "mark_read", ...
//   - result: "ok", "not_found", "invalid_data", "unauthorized", "internal"
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of domain service operations, by entity, operation and result kind.",
	},
	[]string{"entity", "operation", "result"},
)

// ── Notifications ────────────────────────────────────────────────────────────

// NotificationsPublishedTotal counts live-delivery attempts.
// Label:
//   - result: "ok" or "error"
var NotificationsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of notification publish attempts, by result.",
	},
	[]string{"result"},
)
