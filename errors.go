package querycheck

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Error templates for failed checks. Each rendered error is a
// [validation.Error] whose Code identifies the failing constraint.
var (
	ErrNotFound       = validation.NewError("querycheck_not_found", "{{.subject}} of {{.key}} was not found")
	ErrNotEqual       = validation.NewError("querycheck_not_equal", "Value of {{.subject}} {{.key}} is not equal to {{.want}}")
	ErrNotGreaterThan = validation.NewError("querycheck_not_greater_than", "Value of {{.subject}} {{.key}} is not greater than {{.threshold}}")
	ErrNotLessThan    = validation.NewError("querycheck_not_less_than", "Value of {{.subject}} {{.key}} is not less than {{.threshold}}")
	ErrNotInteger     = validation.NewError("querycheck_not_integer", "Value of {{.subject}} {{.key}} is not an integer")
	ErrNotFloat       = validation.NewError("querycheck_not_float", "Value of {{.subject}} {{.key}} is not a float")
	ErrCount          = validation.NewError("querycheck_count", "There should be exactly {{.want}} queries")
)

// ErrorCode returns the validation code carried by err, or "" when err is not
// a [validation.Error].
func ErrorCode(err error) string {
	if ve, ok := err.(validation.Error); ok {
		return ve.Code()
	}
	return ""
}
