// Package rules defines the versioned rule-set data model and its YAML
// loading and validation. Rule sets are externally authored configuration
// data with audit metadata; the engine never generates or mutates them.
package rules

import (
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
)

// Operator is a condition comparison operator.
type Operator string

const (
	OpEquals    Operator = "equals"
	OpNotEquals Operator = "not_equals"
	OpGTE       Operator = "gte"
	OpLT        Operator = "lt"
	OpIsTrue    Operator = "is_true"
	OpIsFalse   Operator = "is_false"
	OpIsKnown   Operator = "is_known"
	OpIsUnknown Operator = "is_unknown"
	OpOneOf     Operator = "one_of"
)

// Condition is one declarative check against the case-fact record: a field
// path, an operator, and (for comparison operators) a threshold value.
// Conditions are side-effect-free and total.
type Condition struct {
	Field    string      `yaml:"field" json:"field"`
	Operator Operator    `yaml:"operator" json:"operator"`
	Value    interface{} `yaml:"value,omitempty" json:"value,omitempty"`
}

// Classification splits grounds into those a court must act on and those it
// may weigh.
type Classification string

const (
	Mandatory     Classification = "mandatory"
	Discretionary Classification = "discretionary"
)

// NoticePeriod is a fixed notice duration. Months are added with end-of-month
// clamping; days are plain calendar days. One of the two is set.
type NoticePeriod struct {
	Months int `yaml:"months,omitempty" json:"months,omitempty"`
	Days   int `yaml:"days,omitempty" json:"days,omitempty"`
}

// IsZero reports whether no duration is specified.
func (p NoticePeriod) IsZero() bool { return p.Months == 0 && p.Days == 0 }

// NoticeSpec resolves a ground's minimum notice length: either a fixed
// period, or a selector keyed by the tenancy's rent period.
type NoticeSpec struct {
	NoticePeriod `yaml:",inline"`
	ByRentPeriod map[string]NoticePeriod `yaml:"by_rent_period,omitempty" json:"by_rent_period,omitempty"`
}

// GroundRule is one legal basis for a route. Every condition must hold for
// the ground to be recommended; Requires is an additional gating set (for
// example pre-action steps) evaluated the same way.
type GroundRule struct {
	Code           string         `yaml:"code" json:"code"`
	Route          string         `yaml:"route" json:"route"`
	Title          string         `yaml:"title" json:"title"`
	Classification Classification `yaml:"classification" json:"classification"`
	Priority       int            `yaml:"priority" json:"priority"`
	Notice         NoticeSpec     `yaml:"notice" json:"notice"`
	Conditions     []Condition    `yaml:"conditions" json:"conditions"`
	Requires       []Condition    `yaml:"requires,omitempty" json:"requires,omitempty"`
}

// Severity distinguishes blockers that disqualify a route from those that
// only flag it.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityWarning  Severity = "warning"
)

// BlockerRule disqualifies or flags an entire route when its condition is
// satisfied, independent of any ground.
type BlockerRule struct {
	Route       string    `yaml:"route" json:"route"`
	Severity    Severity  `yaml:"severity" json:"severity"`
	Description string    `yaml:"description" json:"description"`
	Remediation string    `yaml:"remediation,omitempty" json:"remediation,omitempty"`
	Condition   Condition `yaml:"condition" json:"condition"`
}

// RouteSpec declares a route and its notice-timing parameters.
//
// MinNotice is a route-level floor applied on top of any ground-level
// notice spec. EarliestServiceMonths forbids service before that many
// months after tenancy start. RegimeCutoff is the hard calendar date after
// which the route's notice type can no longer be served; LastCourtDate
// caps the court-issue window outright.
type RouteSpec struct {
	ID                    string       `yaml:"id" json:"id"`
	Title                 string       `yaml:"title" json:"title"`
	MinNotice             NoticePeriod `yaml:"min_notice,omitempty" json:"min_notice,omitempty"`
	EarliestServiceMonths int          `yaml:"earliest_service_months,omitempty" json:"earliest_service_months,omitempty"`
	RegimeCutoff          dates.Date   `yaml:"regime_cutoff,omitempty" json:"regime_cutoff,omitempty"`
	ProceedingsWindowMonths int        `yaml:"proceedings_window_months,omitempty" json:"proceedings_window_months,omitempty"`
	LastCourtDate         dates.Date   `yaml:"last_court_date,omitempty" json:"last_court_date,omitempty"`
}

// ServiceRules configures deemed-service arithmetic for the rule set's
// region.
type ServiceRules struct {
	PostalOffsetBusinessDays int    `yaml:"postal_offset_business_days" json:"postal_offset_business_days"`
	SameDayCutoff            string `yaml:"same_day_cutoff" json:"same_day_cutoff"` // "15:04", local to the region
}

// Audit records the human review trail for a rule set.
type Audit struct {
	Source   string     `yaml:"source" json:"source"`
	Reviewer string     `yaml:"reviewer" json:"reviewer"`
	Reviewed dates.Date `yaml:"reviewed" json:"reviewed"`
}

// RuleSet is one immutable, versioned rule set for a (jurisdiction, product)
// pair. At most one rule set may be active for that pair on any given date.
type RuleSet struct {
	Version       string        `yaml:"version" json:"version"`
	Jurisdiction  string        `yaml:"jurisdiction" json:"jurisdiction"`
	Product       string        `yaml:"product" json:"product"`
	Region        string        `yaml:"region" json:"region"`
	EffectiveFrom dates.Date    `yaml:"effective_from" json:"effective_from"`
	EffectiveTo   dates.Date    `yaml:"effective_to,omitempty" json:"effective_to,omitempty"` // zero = currently active
	Audit         Audit         `yaml:"audit" json:"audit"`
	Service       ServiceRules  `yaml:"service" json:"service"`
	Routes        []RouteSpec   `yaml:"routes" json:"routes"`
	Grounds       []GroundRule  `yaml:"grounds" json:"grounds"`
	Blockers      []BlockerRule `yaml:"blockers" json:"blockers"`
}

// ActiveAt reports whether the rule set's effective window covers d. The
// window is inclusive of EffectiveFrom and of EffectiveTo.
func (rs *RuleSet) ActiveAt(d dates.Date) bool {
	if d.Before(rs.EffectiveFrom) {
		return false
	}
	if !rs.EffectiveTo.IsZero() && d.After(rs.EffectiveTo) {
		return false
	}
	return true
}

// Route returns the route spec with the given ID, or nil.
func (rs *RuleSet) Route(id string) *RouteSpec {
	for i := range rs.Routes {
		if rs.Routes[i].ID == id {
			return &rs.Routes[i]
		}
	}
	return nil
}

// GroundsForRoute returns the grounds declared for the given route, in
// declaration order.
func (rs *RuleSet) GroundsForRoute(route string) []GroundRule {
	var out []GroundRule
	for _, g := range rs.Grounds {
		if g.Route == route {
			out = append(out, g)
		}
	}
	return out
}

// BlockersForRoute returns the blockers declared for the given route, in
// declaration order.
func (rs *RuleSet) BlockersForRoute(route string) []BlockerRule {
	var out []BlockerRule
	for _, b := range rs.Blockers {
		if b.Route == route {
			out = append(out, b)
		}
	}
	return out
}
