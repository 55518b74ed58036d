// Package metrics defines the custom Prometheus metrics for the drug
// ordering system. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dos"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad credentials) or "conflict"
//     (session already live)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsActive tracks the number of currently registered sessions as
// seen by this instance (logins minus logouts).
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of currently active sessions.",
	},
)

// OrdersPlacedTotal counts order placement attempts.
// Label:
//   - result: "placed" or "rejected"
var OrdersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of order placement attempts, by result.",
	},
	[]string{"result"},
)

// PasswordChangesTotal counts password change attempts.
// Label:
//   - result: "changed" or "rejected"
var PasswordChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of password change attempts, by result.",
	},
	[]string{"result"},
)
