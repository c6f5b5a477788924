// Package metrics defines and registers the custom Prometheus metrics for the
// service booking API. It is the single source of truth for metric names,
// labels, and help strings; promauto registers everything with the default
// registry at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// BookingsCreatedTotal counts newly created bookings.
// Label:
//   - vehicle_type: "car", "motorcycle", "truck", or "suv"
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by vehicle type.",
	},
	[]string{"vehicle_type"},
)

// StatusChangesTotal counts booking status transitions applied by staff.
// Label:
//   - status: the status the booking was moved to
var StatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_changes_total",
		Help:      "Total number of booking status changes, by resulting status.",
	},
	[]string{"status"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccountsCreatedTotal counts account creations from any path (registration,
// admin-created managers, bootstrap seeding).
// Label:
//   - role: "user", "manager", or "admin"
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)
