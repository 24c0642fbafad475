package eval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/engerrors"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/facts"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/rules"
)

func boolPtr(b bool) *bool         { return &b }
func numPtr(n float64) *float64    { return &n }
func strPtr(s string) *string      { return &s }
func datePtr(s string) *dates.Date { d := dates.MustParse(s); return &d }

func sampleFacts() *facts.CaseFacts {
	return &facts.CaseFacts{
		Tenancy: facts.Tenancy{
			StartDate:  datePtr("2024-01-01"),
			RentAmount: numPtr(1500),
			RentPeriod: strPtr(facts.RentMonthly),
		},
		Arrears: facts.Arrears{
			MonthsOutstanding: numPtr(2),
			Continuous:        boolPtr(true),
		},
		Compliance: facts.Compliance{
			DepositProtected: boolPtr(false),
		},
	}
}

func TestEvaluateOperators(t *testing.T) {
	f := sampleFacts()
	tests := []struct {
		name string
		cond rules.Condition
		want Outcome
	}{
		{"equals number", rules.Condition{Field: "arrears.months_outstanding", Operator: rules.OpEquals, Value: 2}, True},
		{"equals number false", rules.Condition{Field: "arrears.months_outstanding", Operator: rules.OpEquals, Value: 3}, False},
		{"not_equals string", rules.Condition{Field: "tenancy.rent_period", Operator: rules.OpNotEquals, Value: "weekly"}, True},
		{"gte met", rules.Condition{Field: "arrears.months_outstanding", Operator: rules.OpGTE, Value: 2}, True},
		{"gte unmet", rules.Condition{Field: "arrears.months_outstanding", Operator: rules.OpGTE, Value: 2.5}, False},
		{"lt", rules.Condition{Field: "tenancy.rent_amount", Operator: rules.OpLT, Value: 2000}, True},
		{"gte date", rules.Condition{Field: "tenancy.start_date", Operator: rules.OpGTE, Value: "2024-01-01"}, True},
		{"lt date", rules.Condition{Field: "tenancy.start_date", Operator: rules.OpLT, Value: "2024-01-01"}, False},
		{"is_true", rules.Condition{Field: "arrears.continuous", Operator: rules.OpIsTrue}, True},
		{"is_false on explicit false", rules.Condition{Field: "compliance.deposit_protected", Operator: rules.OpIsFalse}, True},
		{"one_of hit", rules.Condition{Field: "tenancy.rent_period", Operator: rules.OpOneOf, Value: []interface{}{"weekly", "monthly"}}, True},
		{"one_of miss", rules.Condition{Field: "tenancy.rent_period", Operator: rules.OpOneOf, Value: []interface{}{"weekly", "quarterly"}}, False},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.cond, f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Every operator except is_known/is_unknown must return Indeterminate for
// an unanswered fact, never a silent false.
func TestUnknownFactIsIndeterminate(t *testing.T) {
	f := &facts.CaseFacts{}
	ops := []rules.Condition{
		{Field: "arrears.months_outstanding", Operator: rules.OpEquals, Value: 2},
		{Field: "arrears.months_outstanding", Operator: rules.OpNotEquals, Value: 2},
		{Field: "arrears.months_outstanding", Operator: rules.OpGTE, Value: 2},
		{Field: "arrears.months_outstanding", Operator: rules.OpLT, Value: 2},
		{Field: "arrears.continuous", Operator: rules.OpIsTrue},
		{Field: "arrears.continuous", Operator: rules.OpIsFalse},
		{Field: "tenancy.rent_period", Operator: rules.OpOneOf, Value: []interface{}{"monthly"}},
	}
	for _, c := range ops {
		got, err := Evaluate(c, f)
		require.NoError(t, err)
		assert.Equal(t, Indeterminate, got, "operator %s", c.Operator)
	}
}

func TestKnownnessOperators(t *testing.T) {
	f := sampleFacts()

	got, err := Evaluate(rules.Condition{Field: "arrears.continuous", Operator: rules.OpIsKnown}, f)
	require.NoError(t, err)
	assert.Equal(t, True, got)

	got, err = Evaluate(rules.Condition{Field: "breach.material", Operator: rules.OpIsKnown}, f)
	require.NoError(t, err)
	assert.Equal(t, False, got)

	got, err = Evaluate(rules.Condition{Field: "breach.material", Operator: rules.OpIsUnknown}, f)
	require.NoError(t, err)
	assert.Equal(t, True, got)
}

// A boolean answered false must produce a definite outcome, never
// Indeterminate.
func TestExplicitFalseIsDefinite(t *testing.T) {
	f := &facts.CaseFacts{
		Compliance: facts.Compliance{DepositProtected: boolPtr(false)},
	}

	got, err := Evaluate(rules.Condition{Field: "compliance.deposit_protected", Operator: rules.OpIsTrue}, f)
	require.NoError(t, err)
	assert.Equal(t, False, got)

	got, err = Evaluate(rules.Condition{Field: "compliance.deposit_protected", Operator: rules.OpIsFalse}, f)
	require.NoError(t, err)
	assert.Equal(t, True, got)
}

func TestMalformedConditionsAreConfigurationErrors(t *testing.T) {
	f := sampleFacts()
	bad := []rules.Condition{
		{Field: "no.such.path", Operator: rules.OpIsTrue},
		{Field: "arrears.months_outstanding", Operator: rules.OpEquals, Value: "two"},
		{Field: "tenancy.rent_period", Operator: rules.OpGTE, Value: 2},
		{Field: "arrears.months_outstanding", Operator: "matches", Value: 2},
		{Field: "tenancy.start_date", Operator: rules.OpGTE, Value: 20240101},
		{Field: "arrears.continuous", Operator: rules.OpOneOf, Value: "true"},
	}
	for _, c := range bad {
		_, err := Evaluate(c, f)
		require.Error(t, err, "condition %+v", c)
		var cfgErr *engerrors.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr), "condition %+v should be a ConfigurationError, got %v", c, err)
	}
}

func TestAll(t *testing.T) {
	f := sampleFacts()

	// All true.
	out, unresolved, err := All([]rules.Condition{
		{Field: "arrears.months_outstanding", Operator: rules.OpGTE, Value: 2},
		{Field: "arrears.continuous", Operator: rules.OpIsTrue},
	}, f)
	require.NoError(t, err)
	assert.Equal(t, True, out)
	assert.Empty(t, unresolved)

	// One indeterminate: combined indeterminate, path reported.
	out, unresolved, err = All([]rules.Condition{
		{Field: "arrears.months_outstanding", Operator: rules.OpGTE, Value: 2},
		{Field: "breach.material", Operator: rules.OpIsTrue},
	}, f)
	require.NoError(t, err)
	assert.Equal(t, Indeterminate, out)
	assert.Equal(t, []string{"breach.material"}, unresolved)

	// A definite false wins over indeterminates.
	out, unresolved, err = All([]rules.Condition{
		{Field: "breach.material", Operator: rules.OpIsTrue},
		{Field: "arrears.months_outstanding", Operator: rules.OpGTE, Value: 10},
	}, f)
	require.NoError(t, err)
	assert.Equal(t, False, out)
	assert.Empty(t, unresolved)

	// Empty set evaluates true.
	out, _, err = All(nil, f)
	require.NoError(t, err)
	assert.Equal(t, True, out)
}
