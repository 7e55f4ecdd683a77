package querycheck

import (
	"fmt"
	"math"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// equalCheck passes when the value loosely equals want.
type equalCheck struct {
	subject, key string
	want         any
}

func (c equalCheck) Validate(value any) error {
	if value != nil && LooseEqual(value, c.want) {
		return nil
	}
	return ErrNotEqual.SetParams(map[string]any{
		"subject": c.subject,
		"key":     c.key,
		"want":    FormatValue(c.want),
	})
}

func (c equalCheck) Describe(_ string, p *openapi3.Parameter) error {
	p.Schema.Value.Enum = []any{c.want}
	return nil
}

// thresholdCheck passes when the value, parsed as a float, is strictly
// beyond threshold.
type thresholdCheck struct {
	subject, key string
	threshold    float64
	greater      bool
}

func (c thresholdCheck) Validate(value any) error {
	f := ParseFloatPrefix(value)
	if c.greater && f > c.threshold || !c.greater && f < c.threshold {
		return nil
	}
	tmpl := ErrNotLessThan
	if c.greater {
		tmpl = ErrNotGreaterThan
	}
	return tmpl.SetParams(map[string]any{
		"subject":   c.subject,
		"key":       c.key,
		"threshold": FormatValue(c.threshold),
	})
}

func (c thresholdCheck) Describe(_ string, p *openapi3.Parameter) error {
	if math.IsNaN(c.threshold) || math.IsInf(c.threshold, 0) {
		return fmt.Errorf("threshold %v cannot be documented", c.threshold)
	}
	t := c.threshold
	if c.greater {
		p.Schema.Value.Min = &t
		appendDescription(p, "Must be greater than "+FormatValue(t)+".")
	} else {
		p.Schema.Value.Max = &t
		appendDescription(p, "Must be less than "+FormatValue(t)+".")
	}
	return nil
}

// numberCheck passes when the value round-trips through integer or float
// parsing to a loosely equal value.
type numberCheck struct {
	subject, key string
	integer      bool
}

func (c numberCheck) Validate(value any) error {
	if c.integer {
		if LooseEqual(ParseIntPrefix(value), value) {
			return nil
		}
		return ErrNotInteger.SetParams(c.params())
	}
	if LooseEqual(ParseFloatPrefix(value), value) {
		return nil
	}
	return ErrNotFloat.SetParams(c.params())
}

func (c numberCheck) params() map[string]any {
	return map[string]any{"subject": c.subject, "key": c.key}
}

func (c numberCheck) Describe(_ string, p *openapi3.Parameter) error {
	if c.integer {
		p.Schema.Value.Type = &openapi3.Types{openapi3.TypeInteger}
		p.Schema.Value.Format = ""
		return nil
	}
	p.Schema.Value.Type = &openapi3.Types{openapi3.TypeNumber}
	p.Schema.Value.Format = "double"
	return nil
}

var (
	_ Check           = equalCheck{}
	_ Check           = thresholdCheck{}
	_ Check           = numberCheck{}
	_ validation.Rule = numberCheck{}
)
