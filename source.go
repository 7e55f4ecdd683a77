package querycheck

import (
	"fmt"
	"math"
	"net/url"
	"strings"
)

// Source is a key-value collection a Validator can check.
type Source interface {
	// Lookup returns the value of key and whether it is present.
	Lookup(key string) (any, bool)
	// Len returns the number of entries, for the count constraint.
	Len() int
}

type querySource struct {
	values url.Values
	raw    string
}

// QuerySource exposes the query of u. Lookup returns the first value of a
// parameter as a string.
//
// Len counts entries by splitting the raw query on "&", so repeated keys
// count once per occurrence and an empty query counts as one entry.
func QuerySource(u *url.URL) Source {
	return querySource{values: u.Query(), raw: u.RawQuery}
}

func (s querySource) Lookup(key string) (any, bool) {
	if !s.values.Has(key) {
		return nil, false
	}
	return s.values.Get(key), true
}

func (s querySource) Len() int {
	return len(strings.Split(s.raw, "&"))
}

// MapSource is a Source backed by a map. Len is the number of keys.
type MapSource map[string]any

func (m MapSource) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapSource) Len() int { return len(m) }

// Float returns the value of key parsed with [ParseFloatPrefix]. Call it
// after a successful validation with IsFloat to extract typed input.
func Float(src Source, key string) (float64, error) {
	v, ok := src.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("%s: not found", key)
	}
	f := ParseFloatPrefix(v)
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%s: %q is not a number", key, FormatValue(v))
	}
	return f, nil
}
