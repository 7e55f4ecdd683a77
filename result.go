package querycheck

import (
	"errors"
	"strings"
)

// Result is the outcome of evaluating a Rule or a Validator. Errors holds
// every failure in evaluation order; Passed is true only when it is empty.
type Result struct {
	Passed bool
	Errors []error
}

func newResult(errs []error) Result {
	return Result{Passed: len(errs) == 0, Errors: errs}
}

// ErrorMessage joins every failure message, one per line.
func (r Result) ErrorMessage() string {
	msgs := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns nil when the result passed, or all failures joined.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}
	return errors.Join(r.Errors...)
}

// Codes returns the validation code of every failure in order.
func (r Result) Codes() []string {
	codes := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		codes = append(codes, ErrorCode(err))
	}
	return codes
}
