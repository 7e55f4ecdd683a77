package querycheck

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Rule is an ordered set of named checks bound to one lookup key.
//
// Checks are kept in registration order. Registering a check under a name
// that already exists replaces the earlier check in place, so chaining the
// same method twice never accumulates duplicates.
type Rule struct {
	subject string
	key     string
	names   []string
	checks  map[string]Check

	desc    string
	example any
}

// NewRule returns an empty rule for key. subject labels the kind of value in
// error messages (e.g. "query").
func NewRule(subject, key string) *Rule {
	return &Rule{
		subject: subject,
		key:     key,
		checks:  map[string]Check{},
	}
}

// Subject returns the label used for the key in error messages.
func (r *Rule) Subject() string { return r.subject }

// Key returns the key the rule looks up.
func (r *Rule) Key() string { return r.key }

// Len returns the number of distinct registered check names.
func (r *Rule) Len() int { return len(r.names) }

// Names returns the registered check names in registration order.
func (r *Rule) Names() []string {
	return append([]string(nil), r.names...)
}

// Add registers c under name, replacing any check already registered under
// the same name.
func (r *Rule) Add(name string, c Check) *Rule {
	if _, ok := r.checks[name]; !ok {
		r.names = append(r.names, name)
	}
	r.checks[name] = c
	return r
}

// Equal requires the value to loosely equal value (see [LooseEqual]).
func (r *Rule) Equal(value any) *Rule {
	return r.Add(CheckEqual, equalCheck{r.subject, r.key, value})
}

// GreaterThan requires the value, parsed as a float, to be strictly greater
// than n. Values that do not parse never pass.
func (r *Rule) GreaterThan(n float64) *Rule {
	return r.Add(CheckGreaterThan, thresholdCheck{r.subject, r.key, n, true})
}

// LessThan requires the value, parsed as a float, to be strictly less than n.
// Values that do not parse never pass.
func (r *Rule) LessThan(n float64) *Rule {
	return r.Add(CheckLessThan, thresholdCheck{r.subject, r.key, n, false})
}

// IsInteger requires the value to parse as an integer with nothing left
// over, so "40" and 40 pass while "40abc" and 40.5 fail.
func (r *Rule) IsInteger() *Rule {
	return r.Add(CheckInteger, numberCheck{r.subject, r.key, true})
}

// IsFloat requires the value to parse fully as a floating-point number, so
// "40" and "40.1" pass while "oranges 40" fails.
func (r *Rule) IsFloat() *Rule {
	return r.Add(CheckFloat, numberCheck{r.subject, r.key, false})
}

// Describe sets the documentation text of the key. It is not a check.
func (r *Rule) Describe(desc string) *Rule {
	r.desc = desc
	return r
}

// Example sets the documented example value of the key. It is not a check.
func (r *Rule) Example(ex any) *Rule {
	r.example = ex
	return r
}

// Reset removes every registered check.
func (r *Rule) Reset() {
	r.names = nil
	r.checks = map[string]Check{}
}

// Check evaluates the rule against lookup.
//
// An absent (or nil) value fails with a single not-found error and no check
// runs. Otherwise every check runs and every failure is collected.
func (r *Rule) Check(lookup Accessor) Result {
	value, ok := lookup(r.key)
	if !ok || value == nil {
		return Result{Errors: []error{ErrNotFound.SetParams(map[string]any{
			"subject": r.subject,
			"key":     r.key,
		})}}
	}

	var errs []error
	for _, name := range r.names {
		if err := r.checks[name].Validate(value); err != nil {
			errs = append(errs, err)
		}
	}
	return newResult(errs)
}

// Parameter documents the rule as a required OpenAPI query parameter.
func (r *Rule) Parameter() (*openapi3.Parameter, error) {
	p := openapi3.NewQueryParameter(r.key).
		WithRequired(true).
		WithSchema(openapi3.NewStringSchema())
	p.Description = r.desc
	p.Example = r.example

	for _, name := range r.names {
		if err := r.checks[name].Describe(r.key, p); err != nil {
			return nil, fmt.Errorf("describe %s check of %s: %w", name, r.key, err)
		}
	}
	return p, nil
}
