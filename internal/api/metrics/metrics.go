// Package metrics defines and registers all custom Prometheus metrics for
// the church content API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics built with promauto register themselves with the default registry
// at package init; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "church_content"

// ── Post lifecycle metrics ───────────────────────────────────────────────────

// PostsSavedTotal counts lifecycle writes.
// Labels:
//   - op: "create" or "update"
//   - status: the resulting post status ("draft", "scheduled", "published")
var PostsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_saved_total",
		Help:      "Total number of post create/update operations, by op and resulting status.",
	},
	[]string{"op", "status"},
)

// PostsPromotedTotal counts scheduled posts flipped to published by the
// promote-due operation.
var PostsPromotedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_promoted_total",
		Help:      "Total number of scheduled posts promoted to published.",
	},
)

// ── Notification metrics ─────────────────────────────────────────────────────

// NoticesSentTotal counts per-recipient send outcomes.
// Label:
//   - result: "delivered" or "failed"
var NoticesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notices_sent_total",
		Help:      "Total number of per-recipient notice sends, by result.",
	},
	[]string{"result"},
)

// FanoutDuration measures one whole announcement fan-out, from subscriber
// read to receipt write.
var FanoutDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fanout_duration_seconds",
		Help:      "Duration of a full announcement fan-out.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Authorization metrics ────────────────────────────────────────────────────

// AuthDeniedTotal counts gate denials.
// Label:
//   - reason: "unauthenticated" or "unauthorized"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests denied by the authorization gate.",
	},
	[]string{"reason"},
)

// ── Subscriber metrics ───────────────────────────────────────────────────────

// SubscriberChangesTotal counts registry mutations.
// Label:
//   - op: "subscribe" or "unsubscribe"
var SubscriberChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriber_changes_total",
		Help:      "Total number of subscriber registry changes, by operation.",
	},
	[]string{"op"},
)
