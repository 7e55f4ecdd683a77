package querycheck

import (
	"fmt"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(v any) Accessor {
	return func(string) (any, bool) { return v, true }
}

func absent(string) (any, bool) { return nil, false }

func TestRuleChaining(t *testing.T) {
	intRule := NewRule("query", "foo").IsInteger().GreaterThan(5).LessThan(10).Equal(7)
	floatRule := NewRule("query", "bar").IsFloat().GreaterThan(5.5).LessThan(10.5).Equal(7.5)

	tests := []struct {
		rule   *Rule
		in     any
		passed bool
	}{
		{rule: intRule, in: 4, passed: false},
		{rule: intRule, in: 11, passed: false},
		{rule: intRule, in: 6, passed: false},
		{rule: intRule, in: "oranges", passed: false},
		{rule: intRule, in: 7, passed: true},
		{rule: intRule, in: "7", passed: true},
		{rule: floatRule, in: 4.5, passed: false},
		{rule: floatRule, in: 11.5, passed: false},
		{rule: floatRule, in: 6.5, passed: false},
		{rule: floatRule, in: "oranges", passed: false},
		{rule: floatRule, in: 7.5, passed: true},
		{rule: floatRule, in: "7.5", passed: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s:%v", tt.rule.Key(), tt.in), func(t *testing.T) {
			assert.Equal(t, tt.passed, tt.rule.Check(value(tt.in)).Passed)
		})
	}
}

func TestRuleNotFound(t *testing.T) {
	calls := 0
	rule := NewRule("objectType", "noExist").
		Equal("15").
		LessThan(20).
		Add("spy", By(func(any) error {
			calls++
			return nil
		}, ""))

	res := rule.Check(absent)
	assert.False(t, res.Passed)
	assert.Equal(t, "objectType of noExist was not found", res.ErrorMessage())
	assert.Equal(t, []string{"querycheck_not_found"}, res.Codes())
	assert.Zero(t, calls, "no check may run for a missing key")

	res = rule.Check(value(nil))
	assert.False(t, res.Passed)
	assert.Zero(t, calls)

	rule.Check(value("15"))
	assert.Equal(t, 1, calls)
}

func TestRuleReplaceAndReset(t *testing.T) {
	rule := NewRule("objectType", "keyName")
	assert.Zero(t, rule.Len())

	rule.Equal(5)
	rule.GreaterThan(4)
	assert.Equal(t, 2, rule.Len())

	rule.Equal(6)
	assert.Equal(t, 2, rule.Len())
	assert.Equal(t, []string{CheckEqual, CheckGreaterThan}, rule.Names())

	res := rule.Check(value(6))
	assert.True(t, res.Passed)
	assert.Empty(t, res.ErrorMessage())
	assert.False(t, rule.Check(value(5)).Passed, "the replaced check must not be used")

	rule.Reset()
	assert.Zero(t, rule.Len())
	assert.True(t, rule.Check(value("anything")).Passed)
}

func TestRuleCustomReplace(t *testing.T) {
	rule := NewRule("query", "k")
	rule.Add("custom", By(func(any) error { return fmt.Errorf("first") }, ""))
	rule.Add("custom", By(func(any) error { return fmt.Errorf("second") }, ""))

	res := rule.Check(value("v"))
	assert.Equal(t, 1, rule.Len())
	assert.Equal(t, "second", res.ErrorMessage())
}

func TestEqual(t *testing.T) {
	ruleInt := NewRule("integer", "formInput").Equal(5)
	ruleFloat := NewRule("float", "formInput").Equal(5.0)
	ruleString := NewRule("string", "formInput").Equal("5.0")

	tests := []struct {
		name   string
		rule   *Rule
		in     any
		passed bool
	}{
		{"int vs 5.9", ruleInt, 5.9, false},
		{"float vs 5.1", ruleFloat, 5.1, false},
		{"string vs 5.1", ruleString, 5.1, false},
		{"string vs string 5.1", ruleString, "5.1", false},
		{"string vs string 5", ruleString, "5", false},
		{"int vs 5", ruleInt, 5, true},
		{"int vs string 5", ruleInt, "5", true},
		{"float vs 5", ruleFloat, 5, true},
		{"string vs 5", ruleString, 5, true},
		{"string vs string 5.0", ruleString, "5.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.passed, tt.rule.Check(value(tt.in)).Passed)
		})
	}

	assert.Equal(t, "Value of integer formInput is not equal to 5", ruleInt.Check(value(6)).ErrorMessage())
}

func TestThresholds(t *testing.T) {
	tests := []struct {
		name   string
		rule   *Rule
		in     any
		passed bool
	}{
		{"gt equal number", NewRule("q", "k").GreaterThan(5), 5.0, false},
		{"gt equal string", NewRule("q", "k").GreaterThan(5), "5.0", false},
		{"gt below number", NewRule("q", "k").GreaterThan(5), 4.9, false},
		{"gt below string", NewRule("q", "k").GreaterThan(5), "4.9", false},
		{"gt non numeric", NewRule("q", "k").GreaterThan(-1000), "abc", false},
		{"gt above number", NewRule("q", "k").GreaterThan(5), 5.1, true},
		{"gt above string", NewRule("q", "k").GreaterThan(5), "5.1", true},
		{"gt numeric prefix", NewRule("q", "k").GreaterThan(5), "6kg", true},
		{"lt equal number", NewRule("q", "k").LessThan(5), 5.0, false},
		{"lt equal string", NewRule("q", "k").LessThan(5), "5.0", false},
		{"lt above number", NewRule("q", "k").LessThan(5), 5.1, false},
		{"lt above string", NewRule("q", "k").LessThan(5), "5.1", false},
		{"lt non numeric", NewRule("q", "k").LessThan(1000), "abc", false},
		{"lt below number", NewRule("q", "k").LessThan(5), 4.9, true},
		{"lt below string", NewRule("q", "k").LessThan(5), "4.9", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.passed, tt.rule.Check(value(tt.in)).Passed)
		})
	}
}

func TestNumberChecks(t *testing.T) {
	integer := NewRule("integer", "formInput").IsInteger()
	float := NewRule("float", "formInput").IsFloat()

	tests := []struct {
		name   string
		rule   *Rule
		in     any
		passed bool
	}{
		{"int word", integer, "one", false},
		{"int leading text", integer, "oranges 40", false},
		{"int trailing text", integer, "40abc", false},
		{"int fraction", integer, 40.5, false},
		{"int string fraction", integer, "40.5", false},
		{"int string", integer, "40", true},
		{"int number", integer, 40, true},
		{"int whole fraction", integer, "40.0", true},
		{"int padded", integer, " 7", true},
		{"float word", float, "one", false},
		{"float leading text", float, "oranges 40", false},
		{"float trailing text", float, "40abc", false},
		{"float empty", float, "", false},
		{"float string", float, "40", true},
		{"float number", float, 40.1, true},
		{"float exponent", float, "1e3", true},
		{"float bare fraction", float, ".5", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.passed, tt.rule.Check(value(tt.in)).Passed)
		})
	}
}

func TestRuleCollectsEveryFailure(t *testing.T) {
	rule := NewRule("query", "height").IsFloat().GreaterThan(50).LessThan(300)

	res := rule.Check(value("notfloat"))
	require.False(t, res.Passed)
	assert.Equal(t, []string{
		"querycheck_not_float",
		"querycheck_not_greater_than",
		"querycheck_not_less_than",
	}, res.Codes())
	assert.Equal(t, "Value of query height is not a float\n"+
		"Value of query height is not greater than 50\n"+
		"Value of query height is not less than 300", res.ErrorMessage())
	assert.Error(t, res.Err())
}

func TestRuleParameter(t *testing.T) {
	rule := NewRule("query", "height").
		IsFloat().
		GreaterThan(50).
		LessThan(300).
		Describe("Height in centimetres.").
		Example(170)

	p, err := rule.Parameter()
	require.NoError(t, err)
	assert.Equal(t, "height", p.Name)
	assert.Equal(t, openapi3.ParameterInQuery, p.In)
	assert.True(t, p.Required)
	assert.Equal(t, 170, p.Example)
	assert.Equal(t, "Height in centimetres. Must be greater than 50. Must be less than 300.", p.Description)

	schema := p.Schema.Value
	assert.True(t, schema.Type.Is(openapi3.TypeNumber))
	require.NotNil(t, schema.Min)
	require.NotNil(t, schema.Max)
	assert.Equal(t, 50.0, *schema.Min)
	assert.Equal(t, 300.0, *schema.Max)

	p, err = NewRule("query", "mode").Equal("fast").Parameter()
	require.NoError(t, err)
	assert.True(t, p.Schema.Value.Type.Is(openapi3.TypeString))
	assert.Equal(t, []any{"fast"}, p.Schema.Value.Enum)
}
