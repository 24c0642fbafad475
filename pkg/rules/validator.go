package rules

import (
	"fmt"
	"time"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/engerrors"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/facts"
)

// cutoffLayout is the wire format for the same-day service cutoff time.
const cutoffLayout = "15:04"

// Validate checks a parsed rule set structurally: identity fields, effective
// window sanity, enum values, condition well-formedness (valid field paths,
// operator/value agreement), and cross-references between grounds, blockers,
// and routes. Any failure is a ConfigurationError; a rule set is accepted
// whole or not at all.
func Validate(rs *RuleSet) error {
	fail := func(format string, args ...interface{}) error {
		return &engerrors.ConfigurationError{RuleSet: rs.Version, Detail: fmt.Sprintf(format, args...)}
	}

	if rs.Version == "" {
		return fail("version is required")
	}
	if rs.Jurisdiction == "" || rs.Product == "" {
		return fail("jurisdiction and product are required")
	}
	if rs.Region == "" {
		return fail("region is required")
	}
	if rs.EffectiveFrom.IsZero() {
		return fail("effective_from is required")
	}
	if !rs.EffectiveTo.IsZero() && rs.EffectiveTo.Before(rs.EffectiveFrom) {
		return fail("effective_to %s precedes effective_from %s", rs.EffectiveTo, rs.EffectiveFrom)
	}

	if rs.Service.PostalOffsetBusinessDays < 0 {
		return fail("service.postal_offset_business_days must not be negative")
	}
	if rs.Service.SameDayCutoff != "" {
		if _, err := time.Parse(cutoffLayout, rs.Service.SameDayCutoff); err != nil {
			return fail("service.same_day_cutoff %q is not a valid HH:MM time", rs.Service.SameDayCutoff)
		}
	}

	if len(rs.Routes) == 0 {
		return fail("at least one route is required")
	}
	routeIDs := make(map[string]bool, len(rs.Routes))
	for _, r := range rs.Routes {
		if r.ID == "" {
			return fail("route with empty id")
		}
		if routeIDs[r.ID] {
			return fail("duplicate route id %q", r.ID)
		}
		routeIDs[r.ID] = true
		if r.EarliestServiceMonths < 0 || r.ProceedingsWindowMonths < 0 {
			return fail("route %q: negative month window", r.ID)
		}
	}

	groundCodes := make(map[string]bool, len(rs.Grounds))
	for _, g := range rs.Grounds {
		if g.Code == "" {
			return fail("ground with empty code")
		}
		key := g.Route + "/" + g.Code
		if groundCodes[key] {
			return fail("duplicate ground code %q on route %q", g.Code, g.Route)
		}
		groundCodes[key] = true
		if !routeIDs[g.Route] {
			return fail("ground %q references undeclared route %q", g.Code, g.Route)
		}
		if g.Classification != Mandatory && g.Classification != Discretionary {
			return fail("ground %q: classification must be mandatory or discretionary, got %q", g.Code, g.Classification)
		}
		if err := validateNoticeSpec(g.Notice); err != nil {
			return fail("ground %q: %v", g.Code, err)
		}
		if len(g.Conditions) == 0 {
			return fail("ground %q has no conditions", g.Code)
		}
		for _, c := range append(append([]Condition{}, g.Conditions...), g.Requires...) {
			if err := validateCondition(c); err != nil {
				return fail("ground %q: %v", g.Code, err)
			}
		}
	}

	for i, b := range rs.Blockers {
		if !routeIDs[b.Route] {
			return fail("blocker %d references undeclared route %q", i, b.Route)
		}
		if b.Severity != SeverityBlocking && b.Severity != SeverityWarning {
			return fail("blocker %d: severity must be blocking or warning, got %q", i, b.Severity)
		}
		if b.Description == "" {
			return fail("blocker %d: description is required", i)
		}
		if err := validateCondition(b.Condition); err != nil {
			return fail("blocker %d (%s): %v", i, b.Description, err)
		}
	}

	return nil
}

func validateNoticeSpec(n NoticeSpec) error {
	if n.Months < 0 || n.Days < 0 {
		return fmt.Errorf("notice period must not be negative")
	}
	if n.Months > 0 && n.Days > 0 {
		return fmt.Errorf("notice period specifies both months and days")
	}
	if !n.NoticePeriod.IsZero() && len(n.ByRentPeriod) > 0 {
		return fmt.Errorf("notice period specifies both a fixed period and by_rent_period")
	}
	for period, p := range n.ByRentPeriod {
		if !validRentPeriod(period) {
			return fmt.Errorf("notice.by_rent_period key %q is not a rent period", period)
		}
		if p.IsZero() {
			return fmt.Errorf("notice.by_rent_period[%s] has no duration", period)
		}
		if p.Months < 0 || p.Days < 0 {
			return fmt.Errorf("notice.by_rent_period[%s] must not be negative", period)
		}
	}
	if n.IsZero() && len(n.ByRentPeriod) == 0 {
		return fmt.Errorf("notice period is required")
	}
	return nil
}

func validateCondition(c Condition) error {
	if c.Field == "" {
		return fmt.Errorf("condition with empty field path")
	}
	if !facts.ValidPath(c.Field) {
		return fmt.Errorf("condition references unknown fact path %q", c.Field)
	}

	switch c.Operator {
	case OpIsTrue, OpIsFalse, OpIsKnown, OpIsUnknown:
		if c.Value != nil {
			return fmt.Errorf("operator %s on %q takes no value", c.Operator, c.Field)
		}
	case OpEquals, OpNotEquals, OpGTE, OpLT:
		if c.Value == nil {
			return fmt.Errorf("operator %s on %q requires a value", c.Operator, c.Field)
		}
	case OpOneOf:
		list, ok := c.Value.([]interface{})
		if !ok || len(list) == 0 {
			return fmt.Errorf("operator one_of on %q requires a non-empty list", c.Field)
		}
	default:
		return fmt.Errorf("unsupported operator %q on %q", c.Operator, c.Field)
	}
	return nil
}

func validRentPeriod(p string) bool {
	switch p {
	case facts.RentWeekly, facts.RentFortnightly, facts.RentFourWeekly,
		facts.RentMonthly, facts.RentQuarterly, facts.RentAnnually:
		return true
	}
	return false
}
