// Package metrics provides Prometheus metrics for Daily Check — counters,
// gauges, and histograms for mutation transactions, goal events,
// achievements, and cloud sync.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Mutation Transactions ──────────────────────────────────────────────────

// MutationsApplied counts completed log mutation transactions.
var MutationsApplied = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "dailycheck",
	Name:      "mutations_applied_total",
	Help:      "Total completed log mutation transactions.",
})

// CountsClamped counts decrements that were floored at zero.
var CountsClamped = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "dailycheck",
	Name:      "counts_clamped_total",
	Help:      "Total count updates clamped at zero.",
})

// TxDuration tracks mutation transaction duration in seconds.
var TxDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "dailycheck",
	Name:      "tx_duration_seconds",
	Help:      "Mutation transaction duration in seconds.",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
})

// StoreWriteFailures counts persistence writes that failed after the
// in-memory state had already advanced.
var StoreWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "dailycheck",
	Name:      "store_write_failures_total",
	Help:      "Total failed persistence writes.",
})

// ─── Engagement ─────────────────────────────────────────────────────────────

// GoalEvents counts edge-triggered goal events by kind and period.
var GoalEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dailycheck",
	Name:      "goal_events_total",
	Help:      "Total goal threshold events.",
}, []string{"kind", "period"})

// AchievementsUnlocked counts newly unlocked achievements.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "dailycheck",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// NotificationsSuppressed counts notifications dropped by policy.
var NotificationsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "dailycheck",
	Name:      "notifications_suppressed_total",
	Help:      "Total notifications suppressed by policy.",
}, []string{"reason"})

// ─── Cloud Sync ─────────────────────────────────────────────────────────────

// SyncPushes counts successful cloud sync pushes.
var SyncPushes = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "dailycheck",
	Name:      "sync_pushes_total",
	Help:      "Total successful cloud sync pushes.",
})

// SyncFailures counts failed cloud sync pushes.
var SyncFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "dailycheck",
	Name:      "sync_failures_total",
	Help:      "Total failed cloud sync pushes.",
})
