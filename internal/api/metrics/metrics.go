// Package metrics defines and registers all custom Prometheus metrics for
// the rating platform. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ratetask"

// ── Turn metrics ──────────────────────────────────────────────────────────────

// TurnsSubmittedTotal counts turn submissions by outcome.
// Label:
//   - outcome: "ok", "exhausted", "conflict", or "generation_failed"
var TurnsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "turns_submitted_total",
		Help:      "Total number of turn submissions, labelled by outcome.",
	},
	[]string{"outcome"},
)

// GenerationDuration measures how long one generator call takes.
// Label:
//   - status: "ok" or "error"
var GenerationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Duration of AI response generation calls.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"status"},
)

// GenerationCacheTotal counts generation cache decisions.
// Label:
//   - result: "hit" (cached response reused) or "miss" (generator called)
var GenerationCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_cache_total",
		Help:      "Total number of generation cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Rating metrics ────────────────────────────────────────────────────────────

// RatingsUpsertedTotal counts rating submissions.
// Label:
//   - mode: "created" (first submission) or "updated" (merge onto existing)
var RatingsUpsertedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_upserted_total",
		Help:      "Total number of rating upserts, labelled by mode (created/updated).",
	},
	[]string{"mode"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCompletedTotal counts tasks that reached their terminal completed state.
var TasksCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_completed_total",
		Help:      "Total number of tasks completed.",
	},
)
