// Package metrics defines and registers all custom Prometheus metrics for the
// GreenSpace marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
//
// All metrics register with the default Prometheus registry at package init
// via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "greenspace"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly created booking requests.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of booking requests created.",
	},
)

// BookingTransitionsTotal counts booking status transitions that were applied.
// Label:
//   - status: the status the booking moved to (approved, rejected, completed, cancelled)
var BookingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Total number of booking status transitions applied, by resulting status.",
	},
	[]string{"status"},
)

// BookingConflictsTotal counts booking operations rejected because of state:
// an unavailable plot, an invalid transition, or a lost concurrent approval.
// Label:
//   - reason: short description of the rejection (e.g. "plot_unavailable", "invalid_transition")
var BookingConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Total number of booking operations rejected by state checks.",
	},
	[]string{"reason"},
)

// ── Plot metrics ──────────────────────────────────────────────────────────────

// PlotsCreatedTotal counts newly listed plots.
var PlotsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plots_created_total",
		Help:      "Total number of plots listed.",
	},
)

// ── Verification metrics ──────────────────────────────────────────────────────

// VerificationDecisionsTotal counts admin verification decisions.
// Labels:
//   - entity: "user" or "plot"
//   - decision: "approved" or "rejected"
var VerificationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_decisions_total",
		Help:      "Total number of admin verification decisions, by entity and decision.",
	},
	[]string{"entity", "decision"},
)
