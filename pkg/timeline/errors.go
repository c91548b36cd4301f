package timeline

import "fmt"

const (
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldDateRange = "date_range"
	FieldProject   = "project"
)

// ValidationError reports bad request input. It is always detected before any upstream call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsDateRange reports whether the error concerns the requested period.
func (e *ValidationError) IsDateRange() bool {
	return e.Field == FieldStartDate || e.Field == FieldEndDate || e.Field == FieldDateRange
}

type NotFoundError struct {
	Project string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Project '%s' not found", e.Project)
}

// ParseError marks malformed upstream data, not a user mistake.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time format: %s", e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
