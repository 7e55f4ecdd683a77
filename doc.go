// Package querycheck validates key-value sources, such as URL query strings,
// against declarative per-key rules before a handler runs.
//
// Declare one [Rule] per key on a [Validator] and chain the checks it must
// pass:
//
//	v := querycheck.New().RequireCount(2)
//	v.RequireQuery("height").IsFloat().GreaterThan(50).LessThan(300)
//	v.RequireQuery("weight").IsFloat().GreaterThan(20).LessThan(300)
//
// Then validate a request:
//
//	res := v.Validate(querycheck.QuerySource(r.URL))
//	if !res.Passed {
//	    http.Error(w, res.ErrorMessage(), http.StatusUnprocessableEntity)
//	}
//
// Every rule is evaluated and every failing check is reported. A missing key
// reports a single "was not found" error and skips that rule's checks.
//
// Value comparisons use loose coercion (see [LooseEqual]): the string "5.0"
// equals the number 5, while two strings compare as text.
//
// Validators and rules are mutable builders. Create them per request and do
// not share them between goroutines.
package querycheck
