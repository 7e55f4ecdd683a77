package querycheck_test

import (
	"net/url"
	"testing"

	v "github.com/Gobd/querycheck"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestValidatorCount(t *testing.T) {
	src := v.QuerySource(mustURL(t, "http://test.example.com:8080/path?first=1&second=2&third=third"))

	for _, n := range []int{2, 4} {
		res := v.New().RequireCount(n).Validate(src)
		assert.False(t, res.Passed, "count %d", n)
		assert.Equal(t, []string{"querycheck_count"}, res.Codes())
	}

	assert.True(t, v.New().RequireCount(3).Validate(src).Passed)
	assert.True(t, v.New().RequireCount(4).ClearCount().Validate(src).Passed)
}

func TestValidatorRules(t *testing.T) {
	src := v.QuerySource(mustURL(t, "http://test.example.com:8080/path?first=1&second=2&third=third"))

	tests := []struct {
		name    string
		declare func(val *v.Validator)
		passed  bool
	}{
		{
			name: "missing query",
			declare: func(val *v.Validator) {
				val.RequireQuery("fourth")
			},
			passed: false,
		},
		{
			name: "query exists but rule does not match",
			declare: func(val *v.Validator) {
				val.RequireQuery("third").IsInteger()
			},
			passed: false,
		},
		{
			name: "one of several rules fails",
			declare: func(val *v.Validator) {
				val.RequireQuery("third").Equal("third")
				val.RequireQuery("second").GreaterThan(0).LessThan(3).IsInteger()
				val.RequireQuery("first").GreaterThan(5)
			},
			passed: false,
		},
		{
			name: "rules match but count does not",
			declare: func(val *v.Validator) {
				val.RequireQuery("third").Equal("third")
				val.RequireQuery("second").GreaterThan(0).LessThan(3).IsInteger()
				val.RequireQuery("first").GreaterThan(0)
				val.RequireCount(1)
			},
			passed: false,
		},
		{
			name: "single rule matches",
			declare: func(val *v.Validator) {
				val.RequireQuery("second").GreaterThan(0).LessThan(3).IsInteger()
			},
			passed: true,
		},
		{
			name: "all rules match",
			declare: func(val *v.Validator) {
				val.RequireQuery("third").Equal("third")
				val.RequireQuery("second").GreaterThan(0).LessThan(3).IsInteger()
				val.RequireQuery("first").GreaterThan(0)
			},
			passed: true,
		},
		{
			name: "rules and count match",
			declare: func(val *v.Validator) {
				val.RequireQuery("third").Equal("third")
				val.RequireQuery("second").GreaterThan(0).LessThan(3).IsInteger()
				val.RequireQuery("first").GreaterThan(0)
				val.RequireCount(3)
			},
			passed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val := v.New()
			tt.declare(val)
			assert.Equal(t, tt.passed, val.Validate(src).Passed)
		})
	}
}

func TestValidatorAggregates(t *testing.T) {
	val := v.New().RequireCount(2)
	val.RequireQuery("height").IsFloat().GreaterThan(50).LessThan(300)
	val.RequireQuery("weight").IsFloat().GreaterThan(20).LessThan(300)

	res := val.Validate(v.QuerySource(mustURL(t, "/?height=30&badquery=x")))
	require.False(t, res.Passed)
	assert.Equal(t, "Value of query height is not greater than 50\n"+
		"query of weight was not found", res.ErrorMessage())

	res = val.Validate(v.QuerySource(mustURL(t, "/?height=notfloat&weight=notfloat&badquery=x")))
	assert.Equal(t, []string{
		"querycheck_not_float", "querycheck_not_greater_than", "querycheck_not_less_than",
		"querycheck_not_float", "querycheck_not_greater_than", "querycheck_not_less_than",
		"querycheck_count",
	}, res.Codes())
	assert.Contains(t, res.ErrorMessage(), "There should be exactly 2 queries")
}

func TestValidatorDuplicateKeys(t *testing.T) {
	val := v.New()
	val.RequireQuery("n").GreaterThan(10)
	val.RequireQuery("n").LessThan(5)

	assert.Len(t, val.Rules(), 2)
	res := val.Validate(v.MapSource{"n": 7})
	assert.Equal(t, []string{"querycheck_not_greater_than", "querycheck_not_less_than"}, res.Codes())
}

func TestQuerySource(t *testing.T) {
	tests := []struct {
		raw string
		len int
	}{
		{"/", 1},
		{"/?", 1},
		{"/?a=1", 1},
		{"/?a=1&a=2", 2},
		{"/?a=1&b=2&c", 3},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.len, v.QuerySource(mustURL(t, tt.raw)).Len())
		})
	}

	src := v.QuerySource(mustURL(t, "/?a=1&a=2&empty="))
	got, ok := src.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "1", got)
	got, ok = src.Lookup("empty")
	assert.True(t, ok)
	assert.Equal(t, "", got)
	_, ok = src.Lookup("missing")
	assert.False(t, ok)
}

func TestQuerySourceCountProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 1, 8).Draw(t, "keys")
		q := url.Values{}
		for _, k := range keys {
			q.Add(k, "1")
		}
		u := &url.URL{Path: "/", RawQuery: q.Encode()}
		if got := v.QuerySource(u).Len(); got != len(keys) {
			t.Fatalf("Len() = %d, want %d for %q", got, len(keys), u.RawQuery)
		}
	})
}

func TestMapSourceAndFloat(t *testing.T) {
	src := v.MapSource{"height": "170", "weight": 70.5, "bad": "x"}
	assert.Equal(t, 3, src.Len())

	h, err := v.Float(src, "height")
	require.NoError(t, err)
	assert.Equal(t, 170.0, h)

	w, err := v.Float(src, "weight")
	require.NoError(t, err)
	assert.Equal(t, 70.5, w)

	_, err = v.Float(src, "bad")
	assert.Error(t, err)
	_, err = v.Float(src, "missing")
	assert.Error(t, err)
}

func TestUnknownKeys(t *testing.T) {
	val := v.New()
	val.RequireQuery("height")
	val.RequireQuery("weight")

	got := val.UnknownKeys(url.Values{"height": {"1"}, "zeta": {"1"}, "alpha": {"2"}})
	assert.Equal(t, []string{"alpha", "zeta"}, got)
	assert.Empty(t, val.UnknownKeys(url.Values{"weight": {"1"}}))
}

func TestValidatorParameters(t *testing.T) {
	val := v.New().RequireCount(2)
	val.RequireQuery("height").IsFloat().GreaterThan(50).LessThan(300).Example(170)
	val.RequireQuery("weight").IsInteger()

	params, err := val.Parameters()
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, "height", params[0].Value.Name)
	assert.True(t, params[1].Value.Schema.Value.Type.Is(openapi3.TypeInteger))
}
