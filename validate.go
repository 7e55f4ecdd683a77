package querycheck

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// Validator aggregates Rules and an optional exact-count constraint into one
// verdict. Rules are evaluated in declaration order; declaring the same key
// twice yields two independent rules.
type Validator struct {
	rules []*Rule
	count *int
}

// New returns a Validator with no rules and no count constraint.
func New() *Validator {
	return &Validator{}
}

// DeclareKey appends a new Rule for key and returns it for chaining.
func (v *Validator) DeclareKey(subject, key string) *Rule {
	r := NewRule(subject, key)
	v.rules = append(v.rules, r)
	return r
}

// RequireQuery declares a URL query parameter.
func (v *Validator) RequireQuery(name string) *Rule {
	return v.DeclareKey("query", name)
}

// RequireCount requires the source to hold exactly n entries.
func (v *Validator) RequireCount(n int) *Validator {
	v.count = &n
	return v
}

// ClearCount removes the count constraint.
func (v *Validator) ClearCount() *Validator {
	v.count = nil
	return v
}

// Rules returns the declared rules in declaration order.
func (v *Validator) Rules() []*Rule {
	return append([]*Rule(nil), v.rules...)
}

// Validate evaluates every rule against src, then the count constraint.
// Failures never stop evaluation; all of them are collected in the result.
func (v *Validator) Validate(src Source) Result {
	var errs []error
	for _, r := range v.rules {
		res := r.Check(src.Lookup)
		if !res.Passed {
			errs = append(errs, res.Errors...)
		}
	}

	if v.count != nil && src.Len() != *v.count {
		errs = append(errs, ErrCount.SetParams(map[string]any{"want": *v.count}))
	}

	return newResult(errs)
}

// UnknownKeys returns the keys of values that no rule declares, sorted.
func (v *Validator) UnknownKeys(values url.Values) []string {
	declared := make(map[string]bool, len(v.rules))
	for _, r := range v.rules {
		declared[r.key] = true
	}

	var unknown []string
	for k := range values {
		if !declared[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// Parameters documents every declared rule as an OpenAPI query parameter.
func (v *Validator) Parameters() (openapi3.Parameters, error) {
	params := make(openapi3.Parameters, 0, len(v.rules))
	for _, r := range v.rules {
		p, err := r.Parameter()
		if err != nil {
			return nil, err
		}
		if err := p.Validate(context.Background()); err != nil {
			return nil, fmt.Errorf("invalid parameter %s: %w", r.key, err)
		}
		params = append(params, &openapi3.ParameterRef{Value: p})
	}
	return params, nil
}
