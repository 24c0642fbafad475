package decision

import (
	"time"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/blockers"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/facts"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/grounds"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/notice"
)

// Status is the overall case classification.
type Status string

const (
	// StatusComplete: at least one route is fully available with nothing
	// left to answer.
	StatusComplete Status = "complete"
	// StatusIncomplete: further facts could still change the outcome; the
	// record lists which.
	StatusIncomplete Status = "incomplete"
	// StatusBlocked: every route is disqualified on definite facts.
	StatusBlocked Status = "blocked"
)

// RouteStatus classifies one route within a decision.
type RouteStatus string

const (
	// RouteAvailable: the route can be used now (an eligible ground exists,
	// or the route needs none) and nothing blocks it.
	RouteAvailable RouteStatus = "available"
	// RoutePending: the route is neither usable nor excluded yet; missing
	// facts decide it.
	RoutePending RouteStatus = "pending"
	// RouteBlocked: a blocker or a violated notice floor/cutoff disqualifies
	// the route on definite facts.
	RouteBlocked RouteStatus = "blocked"
	// RouteUnavailable: every ground on the route is definitely ineligible.
	RouteUnavailable RouteStatus = "unavailable"
)

// Request is one evaluation call. Facts may be partial; AsOf defaults to
// the service date when given, otherwise today.
type Request struct {
	Jurisdiction string               `json:"jurisdiction"`
	Product      string               `json:"product"`
	AsOf         dates.Date           `json:"as_of,omitempty"`
	Facts        *facts.CaseFacts     `json:"facts"`
	Service      *notice.ServiceEvent `json:"service,omitempty"`
}

// RouteDecision merges ground recommendations, blockers, and (when a
// service event was supplied) the notice computation for one route.
type RouteDecision struct {
	Route    string                  `json:"route"`
	Title    string                  `json:"title"`
	Status   RouteStatus             `json:"status"`
	Grounds  *grounds.Recommendations `json:"grounds"`
	Blockers []blockers.Result       `json:"blockers,omitempty"`
	Notice   *notice.Result          `json:"notice,omitempty"`
}

// Record is the engine's output: a transient, never-mutated value the
// document-generation and question-flow subsystems consume.
type Record struct {
	ID             string    `json:"id"`
	RuleSetVersion string    `json:"rule_set_version"`
	Jurisdiction   string    `json:"jurisdiction"`
	Product        string    `json:"product"`
	EvaluatedAt    time.Time `json:"evaluated_at"`

	Status Status          `json:"status"`
	Routes []RouteDecision `json:"routes"`

	// UnresolvedFacts is the minimal list of fact paths whose answers would
	// change the outcome, across all routes. Drives follow-up questions.
	UnresolvedFacts []string `json:"unresolved_facts,omitempty"`
}
