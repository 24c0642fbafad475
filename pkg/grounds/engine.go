// Package grounds applies the condition evaluator across every ground in a
// rule set and produces ranked, classified recommendations.
//
// The outcome per ground is three-way. Eligible means every condition held;
// ineligible means at least one definitely failed; pending means nothing
// failed but some fact is still unanswered. Pending is the honest middle:
// an incomplete fact set yields a partial answer, never a false negative.
package grounds

import (
	"sort"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/eval"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/facts"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/rules"
)

// Status is the three-way recommendation outcome for one ground.
type Status string

const (
	StatusEligible   Status = "eligible"
	StatusPending    Status = "pending"
	StatusIneligible Status = "ineligible"
)

// Recommendation is the evaluated outcome for one ground rule.
type Recommendation struct {
	Code           string               `json:"code"`
	Route          string               `json:"route"`
	Title          string               `json:"title"`
	Classification rules.Classification `json:"classification"`
	Priority       int                  `json:"priority"`
	Status         Status               `json:"status"`

	// UnresolvedFacts lists the field paths whose answers would settle a
	// pending ground. Empty unless Status is pending.
	UnresolvedFacts []string `json:"unresolved_facts,omitempty"`
}

// Recommendations buckets the evaluated grounds. Eligible is ranked:
// mandatory before discretionary, then declared priority descending, then
// rule code ascending as the stable tie-break. Pending and Ineligible carry
// the same ordering so output is deterministic end to end.
type Recommendations struct {
	Eligible   []Recommendation `json:"eligible"`
	Pending    []Recommendation `json:"pending"`
	Ineligible []Recommendation `json:"ineligible"`
}

// Recommend evaluates every ground in the rule set. An error means a
// malformed condition surfaced from the evaluator (a configuration defect),
// never a property of the case facts.
func Recommend(rs *rules.RuleSet, f *facts.CaseFacts) (*Recommendations, error) {
	return recommend(rs.Grounds, f)
}

// RecommendRoute evaluates only the grounds declared for one route.
func RecommendRoute(rs *rules.RuleSet, f *facts.CaseFacts, route string) (*Recommendations, error) {
	return recommend(rs.GroundsForRoute(route), f)
}

func recommend(groundRules []rules.GroundRule, f *facts.CaseFacts) (*Recommendations, error) {
	out := &Recommendations{}

	for _, g := range groundRules {
		rec := Recommendation{
			Code:           g.Code,
			Route:          g.Route,
			Title:          g.Title,
			Classification: g.Classification,
			Priority:       g.Priority,
		}

		condOutcome, condUnresolved, err := eval.All(g.Conditions, f)
		if err != nil {
			return nil, err
		}
		reqOutcome, reqUnresolved, err := eval.All(g.Requires, f)
		if err != nil {
			return nil, err
		}

		switch {
		case condOutcome == eval.False || reqOutcome == eval.False:
			rec.Status = StatusIneligible
			out.Ineligible = append(out.Ineligible, rec)
		case condOutcome == eval.True && reqOutcome == eval.True:
			rec.Status = StatusEligible
			out.Eligible = append(out.Eligible, rec)
		default:
			rec.Status = StatusPending
			rec.UnresolvedFacts = dedupe(append(condUnresolved, reqUnresolved...))
			out.Pending = append(out.Pending, rec)
		}
	}

	rank(out.Eligible)
	rank(out.Pending)
	rank(out.Ineligible)
	return out, nil
}

// rank orders recommendations: mandatory before discretionary, then
// priority descending, then code ascending. The code tie-break is a
// deliberate design decision so that equal-priority discretionary grounds
// come out in a stable, documented order.
func rank(recs []Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Classification != b.Classification {
			return a.Classification == rules.Mandatory
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Code < b.Code
	})
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
	sort.Strings(out)
	return out
}
