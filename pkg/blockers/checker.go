// Package blockers applies route-level compliance checks: conditions whose
// satisfaction disqualifies (or merely flags) an entire route, independent
// of any ground.
package blockers

import (
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/eval"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/facts"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/rules"
)

// Result is the evaluated outcome of one blocker rule.
type Result struct {
	Route       string         `json:"route"`
	Severity    rules.Severity `json:"severity"`
	Description string         `json:"description"`
	Remediation string         `json:"remediation,omitempty"`

	// Triggered is true when the blocker's condition definitely held.
	Triggered bool `json:"triggered"`
	// Unverified is true when the condition was indeterminate: the route is
	// not disqualified on missing data, but it is flagged as unchecked.
	Unverified bool `json:"unverified"`
	// FieldPath is the condition's fact path, for remediation prompts.
	FieldPath string `json:"field_path"`
}

// Check evaluates every blocker declared for the route and returns a result
// for each one, never short-circuited: the caller gets the complete picture
// in one pass, passed checks included (Triggered and Unverified both false).
// An indeterminate blocking condition degrades to a warning-severity result:
// a route must never be hidden because data happens to be missing, but it is
// still flagged as unverified.
func Check(rs *rules.RuleSet, f *facts.CaseFacts, route string) ([]Result, error) {
	var out []Result
	for _, b := range rs.BlockersForRoute(route) {
		o, err := eval.Evaluate(b.Condition, f)
		if err != nil {
			return nil, err
		}

		res := Result{
			Route:       b.Route,
			Severity:    b.Severity,
			Description: b.Description,
			Remediation: b.Remediation,
			FieldPath:   b.Condition.Field,
		}
		switch o {
		case eval.True:
			res.Triggered = true
		case eval.Indeterminate:
			res.Unverified = true
			if res.Severity == rules.SeverityBlocking {
				res.Severity = rules.SeverityWarning
			}
		}
		out = append(out, res)
	}
	return out, nil
}

// Blocked reports whether any result disqualifies the route: it takes an
// unambiguously triggered blocking-severity result, never indeterminate
// data.
func Blocked(results []Result) bool {
	for _, r := range results {
		if r.Triggered && r.Severity == rules.SeverityBlocking {
			return true
		}
	}
	return false
}
