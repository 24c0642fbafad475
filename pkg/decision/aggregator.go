// Package decision orchestrates the ground engine, the blocking checker,
// and the notice calculator into one decision record per evaluation call.
//
// The aggregator is stateless between calls and safe for concurrent use;
// the only suspension point is the calendar refresh, bounded by the
// caller's context.
package decision

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/blockers"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/calendar"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/engerrors"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/grounds"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/notice"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/observability/logging"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/observability/metrics"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/repository"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/rules"
)

// Refresher is implemented by calendars that can refresh their holiday data
// from a remote source. Detected by assertion so tests can pass a plain
// table.
type Refresher interface {
	Refresh(ctx context.Context, region string) error
}

// Aggregator is the engine's top-level entry point.
type Aggregator struct {
	repo *repository.Repository
	cal  dates.BusinessCalendar
}

// New builds an Aggregator over the given repository and calendar. The
// production calendar is *calendar.Service; tests may substitute any
// BusinessCalendar.
func New(repo *repository.Repository, cal dates.BusinessCalendar) *Aggregator {
	return &Aggregator{repo: repo, cal: cal}
}

// Evaluate runs one full case evaluation. Partial fact records are normal
// input; the returned record says what can and cannot be decided yet.
//
// Errors follow the engine taxonomy: UnsupportedJurisdictionError when no
// rule set covers the request, ConfigurationError for malformed rule data,
// IncompleteInputError when the notice computation is missing a named fact.
func (a *Aggregator) Evaluate(ctx context.Context, req Request) (*Record, error) {
	start := time.Now()
	defer func() {
		metrics.RecordEvaluation(time.Since(start).Seconds())
	}()

	if req.Facts == nil {
		return nil, engerrors.Incompletef("facts", "a case-fact record is required")
	}

	asOf := req.AsOf
	if asOf.IsZero() && req.Service != nil {
		asOf = req.Service.Date
	}
	if asOf.IsZero() {
		asOf = dates.FromTime(time.Now())
	}

	rs, err := a.repo.Get(req.Jurisdiction, req.Product, asOf)
	if err != nil {
		return nil, err
	}

	// Refresh holiday data opportunistically; a stale calendar is preferred
	// over a failed evaluation, so the error is logged and dropped.
	if refresher, ok := a.cal.(Refresher); ok {
		if err := refresher.Refresh(ctx, rs.Region); err != nil {
			logging.Warnf("Continuing with stale calendar for %s: %v", rs.Region, err)
		}
	}

	rec := &Record{
		ID:             uuid.NewString(),
		RuleSetVersion: rs.Version,
		Jurisdiction:   rs.Jurisdiction,
		Product:        rs.Product,
		EvaluatedAt:    time.Now().UTC(),
	}

	var unresolved []string
	for _, routeSpec := range rs.Routes {
		rd, routeUnresolved, err := a.evaluateRoute(rs, &routeSpec, req)
		if err != nil {
			return nil, err
		}
		rec.Routes = append(rec.Routes, *rd)
		unresolved = append(unresolved, routeUnresolved...)
	}

	rec.Status = overallStatus(rec.Routes)
	if rec.Status != StatusComplete {
		rec.UnresolvedFacts = dedupe(unresolved)
	}

	metrics.RecordDecision(string(rec.Status))
	logging.Infof("Decision %s: %s/%s rule set %s, status %s, %d routes",
		rec.ID, rec.Jurisdiction, rec.Product, rec.RuleSetVersion, rec.Status, len(rec.Routes))
	return rec, nil
}

func (a *Aggregator) evaluateRoute(rs *rules.RuleSet, routeSpec *rules.RouteSpec, req Request) (*RouteDecision, []string, error) {
	rd := &RouteDecision{Route: routeSpec.ID, Title: routeSpec.Title}

	recs, err := grounds.RecommendRoute(rs, req.Facts, routeSpec.ID)
	if err != nil {
		return nil, nil, err
	}
	rd.Grounds = recs

	blks, err := blockers.Check(rs, req.Facts, routeSpec.ID)
	if err != nil {
		return nil, nil, err
	}
	rd.Blockers = blks

	// A route with no declared grounds (a no-fault pathway) needs none; one
	// with grounds needs at least one eligible.
	hasGrounds := len(rs.GroundsForRoute(routeSpec.ID)) > 0
	eligible := !hasGrounds || len(recs.Eligible) > 0
	blocked := blockers.Blocked(blks)

	// Notice dates need a settled ground (or a ground-free route) to pick a
	// notice period from. A route whose grounds are all still pending gets no
	// notice result until the facts arrive; that keeps a partial record a
	// partial answer instead of an error.
	if req.Service != nil && eligible {
		var topGround *rules.GroundRule
		if len(recs.Eligible) > 0 {
			topGround = findGround(rs, routeSpec.ID, recs.Eligible[0].Code)
		}
		nres, err := notice.Compute(rs, routeSpec.ID, topGround, req.Facts, *req.Service, a.cal)
		if err != nil {
			return nil, nil, err
		}
		rd.Notice = nres
		for _, v := range nres.Violations {
			if v.Severity == rules.SeverityBlocking {
				blocked = true
			}
		}
	}

	var unresolved []string
	for _, p := range recs.Pending {
		unresolved = append(unresolved, p.UnresolvedFacts...)
	}
	for _, b := range blks {
		if b.Unverified {
			unresolved = append(unresolved, b.FieldPath)
		}
	}

	switch {
	case blocked:
		rd.Status = RouteBlocked
	case eligible:
		rd.Status = RouteAvailable
	case len(recs.Pending) > 0:
		rd.Status = RoutePending
	default:
		rd.Status = RouteUnavailable
	}
	return rd, unresolved, nil
}

// overallStatus derives the case classification: blocked only when every
// route is blocked; complete when some route is available with nothing
// unanswered on it; incomplete otherwise.
func overallStatus(routes []RouteDecision) Status {
	if len(routes) > 0 {
		allBlocked := true
		for _, rd := range routes {
			if rd.Status != RouteBlocked {
				allBlocked = false
				break
			}
		}
		if allBlocked {
			return StatusBlocked
		}
	}

	for _, rd := range routes {
		if rd.Status != RouteAvailable {
			continue
		}
		if len(rd.Grounds.Pending) > 0 {
			continue
		}
		settled := true
		for _, b := range rd.Blockers {
			if b.Unverified {
				settled = false
				break
			}
		}
		if settled {
			return StatusComplete
		}
	}
	return StatusIncomplete
}

func findGround(rs *rules.RuleSet, route, code string) *rules.GroundRule {
	for i := range rs.Grounds {
		if rs.Grounds[i].Route == route && rs.Grounds[i].Code == code {
			return &rs.Grounds[i]
		}
	}
	return nil
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var out []string
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

var _ Refresher = (*calendar.Service)(nil)
