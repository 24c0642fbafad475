// Package metrics defines the engine's Prometheus instruments. Recording
// helpers keep call sites one line and keep label vocabulary in one place.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "eligibility_evaluation_duration_seconds",
		Help:    "Time taken to evaluate one case against a rule set.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	decisionStatus = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eligibility_decisions_total",
		Help: "Decision records produced, by overall case status.",
	}, []string{"status"})

	rulesetLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eligibility_ruleset_lookups_total",
		Help: "Rule-set repository lookups, by outcome (hit, miss).",
	}, []string{"outcome"})

	calendarRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eligibility_calendar_refreshes_total",
		Help: "Holiday-calendar refresh attempts, by outcome (ok, error, stale).",
	}, []string{"outcome"})
)

// RecordEvaluation records the latency of one full case evaluation.
func RecordEvaluation(seconds float64) {
	evaluationDuration.Observe(seconds)
}

// RecordDecision counts a produced decision by overall status.
func RecordDecision(status string) {
	decisionStatus.WithLabelValues(status).Inc()
}

// RecordRulesetLookup counts a repository lookup outcome.
func RecordRulesetLookup(outcome string) {
	rulesetLookups.WithLabelValues(outcome).Inc()
}

// RecordCalendarRefresh counts a holiday-calendar refresh outcome.
func RecordCalendarRefresh(outcome string) {
	calendarRefreshes.WithLabelValues(outcome).Inc()
}
