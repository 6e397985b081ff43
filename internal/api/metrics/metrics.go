// Package metrics defines the custom Prometheus metrics of the onboarding API.
// It is the single source of truth for metric names, labels and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "onboarding"

// ── Account stage metrics ────────────────────────────────────────────────────

// StageResolutionsTotal counts fresh stage computations.
// Label:
//   - stage: the resolved account stage (e.g. "PENDING_REVIEW")
var StageResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stage_resolutions_total",
		Help:      "Total number of account stage computations, by resulting stage.",
	},
	[]string{"stage"},
)

// ApplicationsSubmittedTotal counts finished registration wizards.
// Label:
//   - business_type: "individual" or "corporate"
var ApplicationsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of company applications submitted, by business type.",
	},
	[]string{"business_type"},
)

// ReviewActionsTotal counts successful admin actions.
// Label:
//   - action: the audit action written (e.g. "approve_company")
var ReviewActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_actions_total",
		Help:      "Total number of admin review actions, by action.",
	},
	[]string{"action"},
)

// ── MFA metrics ──────────────────────────────────────────────────────────────

// MFAVerificationsTotal counts second-factor checks.
// Labels:
//   - flow: "setup" or "login"
//   - result: "success", "failure" or "locked"
var MFAVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mfa_verifications_total",
		Help:      "Total number of second-factor verifications, by flow and result.",
	},
	[]string{"flow", "result"},
)

// ── Realtime metrics ─────────────────────────────────────────────────────────

// RealtimeNotificationsTotal counts change notifications applied as invalidations.
// Label:
//   - collection: the collection that changed
var RealtimeNotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_notifications_total",
		Help:      "Total number of change notifications received, by collection.",
	},
	[]string{"collection"},
)

// InvalidationQueueDepth tracks notifications waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var InvalidationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "invalidation_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
