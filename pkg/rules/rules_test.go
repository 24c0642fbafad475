package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/engerrors"
)

const validRuleSet = `
version: test-2025.1
jurisdiction: england
product: assured_shorthold_tenancy
region: england-and-wales
effective_from: 2025-10-01
audit:
  source: "Housing Act 1988"
  reviewer: "T. Reviewer"
  reviewed: 2025-09-01
service:
  postal_offset_business_days: 2
  same_day_cutoff: "16:30"
routes:
  - id: section_8
    title: "Section 8 notice"
    proceedings_window_months: 12
  - id: section_21
    title: "Section 21 notice"
    min_notice: { months: 2 }
    earliest_service_months: 4
    regime_cutoff: 2026-05-01
grounds:
  - code: "8"
    route: section_8
    title: "Serious rent arrears"
    classification: mandatory
    priority: 100
    notice: { days: 14 }
    conditions:
      - { field: arrears.months_outstanding, operator: gte, value: 2 }
    requires:
      - { field: arrears.continuous, operator: is_true }
  - code: "12"
    route: section_8
    title: "Breach of terms"
    classification: discretionary
    priority: 40
    notice:
      by_rent_period:
        monthly: { days: 14 }
        quarterly: { months: 1 }
    conditions:
      - { field: breach.material, operator: is_true }
blockers:
  - route: section_21
    severity: blocking
    description: "Deposit not protected"
    remediation: "Protect the deposit"
    condition: { field: compliance.deposit_protected, operator: is_false }
`

func TestParseValidRuleSet(t *testing.T) {
	rs, err := Parse([]byte(validRuleSet))
	require.NoError(t, err)

	assert.Equal(t, "test-2025.1", rs.Version)
	assert.Equal(t, "england", rs.Jurisdiction)
	assert.True(t, rs.EffectiveTo.IsZero(), "open-ended window")
	assert.Len(t, rs.Routes, 2)
	assert.Len(t, rs.Grounds, 2)
	assert.Len(t, rs.Blockers, 1)

	require.NotNil(t, rs.Route("section_21"))
	assert.Equal(t, 2, rs.Route("section_21").MinNotice.Months)
	assert.Equal(t, "2026-05-01", rs.Route("section_21").RegimeCutoff.String())
	assert.Nil(t, rs.Route("section_99"))

	g8 := rs.GroundsForRoute("section_8")
	require.Len(t, g8, 2)
	assert.Equal(t, Mandatory, g8[0].Classification)
	assert.Len(t, g8[0].Requires, 1)
	assert.Equal(t, 14, g8[1].Notice.ByRentPeriod["monthly"].Days)

	assert.Len(t, rs.BlockersForRoute("section_21"), 1)
	assert.Empty(t, rs.BlockersForRoute("section_8"))
}

func TestActiveAt(t *testing.T) {
	rs := &RuleSet{
		EffectiveFrom: dates.MustParse("2025-10-01"),
		EffectiveTo:   dates.MustParse("2026-09-30"),
	}
	assert.False(t, rs.ActiveAt(dates.MustParse("2025-09-30")))
	assert.True(t, rs.ActiveAt(dates.MustParse("2025-10-01")))
	assert.True(t, rs.ActiveAt(dates.MustParse("2026-09-30")))
	assert.False(t, rs.ActiveAt(dates.MustParse("2026-10-01")))

	open := &RuleSet{EffectiveFrom: dates.MustParse("2025-10-01")}
	assert.True(t, open.ActiveAt(dates.MustParse("2099-01-01")))
}

func TestValidateRejections(t *testing.T) {
	base := func() *RuleSet {
		rs, err := Parse([]byte(validRuleSet))
		require.NoError(t, err)
		return rs
	}

	tests := []struct {
		name   string
		mutate func(*RuleSet)
	}{
		{"missing version", func(rs *RuleSet) { rs.Version = "" }},
		{"missing region", func(rs *RuleSet) { rs.Region = "" }},
		{"inverted window", func(rs *RuleSet) { rs.EffectiveTo = dates.MustParse("2020-01-01") }},
		{"bad cutoff time", func(rs *RuleSet) { rs.Service.SameDayCutoff = "25:99" }},
		{"duplicate route", func(rs *RuleSet) { rs.Routes = append(rs.Routes, rs.Routes[0]) }},
		{"duplicate ground code", func(rs *RuleSet) { rs.Grounds = append(rs.Grounds, rs.Grounds[0]) }},
		{"ground on unknown route", func(rs *RuleSet) { rs.Grounds[0].Route = "section_99" }},
		{"bad classification", func(rs *RuleSet) { rs.Grounds[0].Classification = "optional" }},
		{"ground without conditions", func(rs *RuleSet) { rs.Grounds[0].Conditions = nil }},
		{"condition on unknown fact", func(rs *RuleSet) { rs.Grounds[0].Conditions[0].Field = "no.such.path" }},
		{"operator without value", func(rs *RuleSet) { rs.Grounds[0].Conditions[0].Value = nil }},
		{"is_true with value", func(rs *RuleSet) { rs.Grounds[0].Requires[0].Value = true }},
		{"unsupported operator", func(rs *RuleSet) { rs.Grounds[0].Conditions[0].Operator = "matches" }},
		{"empty notice", func(rs *RuleSet) { rs.Grounds[0].Notice = NoticeSpec{} }},
		{"months and days", func(rs *RuleSet) { rs.Grounds[0].Notice.NoticePeriod = NoticePeriod{Months: 1, Days: 7} }},
		{"fixed period and by_rent_period", func(rs *RuleSet) {
			rs.Grounds[1].Notice.NoticePeriod = NoticePeriod{Days: 14}
		}},
		{"bad rent period key", func(rs *RuleSet) {
			rs.Grounds[1].Notice.ByRentPeriod["daily"] = NoticePeriod{Days: 7}
		}},
		{"blocker bad severity", func(rs *RuleSet) { rs.Blockers[0].Severity = "fatal" }},
		{"blocker without description", func(rs *RuleSet) { rs.Blockers[0].Description = "" }},
		{"blocker on unknown route", func(rs *RuleSet) { rs.Blockers[0].Route = "section_99" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := base()
			tt.mutate(rs)
			err := Validate(rs)
			require.Error(t, err)
			var cfgErr *engerrors.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("routes: [what"))
	assert.Error(t, err)
}
