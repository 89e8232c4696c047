// Package metrics defines the custom Prometheus metrics of the reporting API.
// All metrics register with the default registry through promauto, which is
// the registry /metrics serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

const namespace = "carsg"

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsCreatedTotal counts newly filed reports.
// Label:
//   - category: the report category as submitted (e.g. "Theft")
var ReportsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_created_total",
		Help:      "Total number of reports created, by category.",
	},
	[]string{"category"},
)

// ReportStatusChangesTotal counts accepted status writes.
// Label:
//   - status: the status written (e.g. "resolved")
var ReportStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_status_changes_total",
		Help:      "Total number of report status updates, by new status.",
	},
	[]string{"status"},
)

// ── Points metrics ────────────────────────────────────────────────────────────

// PointsAwardedTotal sums points granted or removed through the ledger.
// Label:
//   - source: "resolution" or "manual"
var PointsAwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_ledger_entries_total",
		Help:      "Total number of points ledger entries written, by source.",
	},
	[]string{"source"},
)

// PointsDriftProfiles is the number of profiles whose persisted points differed
// from the derived figure on the last reconciliation run.
var PointsDriftProfiles = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "points_drift_profiles",
		Help:      "Profiles whose persisted points differ from 10 x resolved reports.",
	},
)

// ── Messaging metrics ─────────────────────────────────────────────────────────

// MessagesSentTotal counts chat messages.
// Label:
//   - admin_reply: "true" or "false"
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of chat messages sent.",
	},
	[]string{"admin_reply"},
)

// ── Ingress metrics ───────────────────────────────────────────────────────────

// RateLimitedTotal counts requests rejected by the ingress rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_requests_total",
		Help:      "Total number of requests rejected with 429.",
	},
)

// AuthRejectionsTotal counts requests rejected by the access guard.
// Label:
//   - reason: "unauthorized", "profile_not_found" or "banned"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected during authentication.",
	},
	[]string{"reason"},
)

// ObserveDrift records the outcome of a reconciliation run.
func ObserveDrift(drift []domain.PointsDrift) {
	PointsDriftProfiles.Set(float64(len(drift)))
}
