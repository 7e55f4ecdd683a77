package querycheck

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Names under which the built-in checks are registered on a [Rule].
// Registering a check under an existing name replaces it.
const (
	CheckEqual       = "equal"
	CheckGreaterThan = "greaterThan"
	CheckLessThan    = "lessThan"
	CheckInteger     = "isInteger"
	CheckFloat       = "isFloat"
)

type (
	// RuleFunc is a function type that validates a value and returns an error if invalid.
	RuleFunc func(value any) error

	// Check is a single predicate registered on a Rule. Validate receives the
	// looked-up value and returns nil when it passes. Describe documents the
	// check on the OpenAPI query parameter of the rule's key.
	Check interface {
		Validate(value any) error
		Describe(key string, param *openapi3.Parameter) error
	}

	// Accessor looks up a value by key. The second result is false when the
	// key is absent from the underlying source.
	Accessor func(key string) (any, bool)
)

// By wraps a RuleFunc into a Check. desc is appended to the parameter
// description when the rule is documented.
func By(f RuleFunc, desc string) Check {
	return &inlineCheck{
		Rule: validation.By(validation.RuleFunc(f)),
		describe: func(_ string, p *openapi3.Parameter) error {
			appendDescription(p, desc)
			return nil
		},
	}
}

// inlineCheck pairs an ozzo rule with the function documenting it.
type inlineCheck struct {
	validation.Rule
	describe func(key string, p *openapi3.Parameter) error
}

func (c *inlineCheck) Describe(key string, p *openapi3.Parameter) error {
	if c.describe == nil {
		return nil
	}
	return c.describe(key, p)
}

func appendDescription(p *openapi3.Parameter, desc string) {
	if desc == "" {
		return
	}
	if p.Description != "" {
		p.Description += " "
	}
	p.Description += desc
}
