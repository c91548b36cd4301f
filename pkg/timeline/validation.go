package timeline

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const maxProjectNameLength = 100

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Period renders the range as "YYYY-MM-DD to YYYY-MM-DD".
func (r DateRange) Period() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
}

// Span returns the number of days between start and end, so a single day spans 0.
func (r DateRange) Span() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// ParseDateRange parses two YYYY-MM-DD dates and rejects ranges where start is after end or
// whose span exceeds maxPeriodDays.
func ParseDateRange(startDate, endDate string, maxPeriodDays int) (DateRange, error) {
	start, err := parseDate(FieldStartDate, startDate)
	if err != nil {
		return DateRange{}, err
	}
	end, err := parseDate(FieldEndDate, endDate)
	if err != nil {
		return DateRange{}, err
	}

	r := DateRange{Start: start, End: end}
	if start.After(end) {
		return DateRange{}, &ValidationError{Field: FieldDateRange, Message: "Start date must be before or equal to end date"}
	}
	if r.Span() > maxPeriodDays {
		return DateRange{}, &ValidationError{Field: FieldDateRange, Message: fmt.Sprintf("Date range cannot exceed %d days", maxPeriodDays)}
	}
	return r, nil
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Message: "Invalid date format. Use YYYY-MM-DD"}
	}
	return date, nil
}

// ValidateProjectName rejects blank names and names longer than 100 characters. The name
// itself is matched as given.
func ValidateProjectName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &ValidationError{Field: FieldProject, Message: "Project name cannot be empty"}
	}
	if utf8.RuneCountInString(trimmed) > maxProjectNameLength {
		return &ValidationError{Field: FieldProject, Message: fmt.Sprintf("Project name too long (max %d characters)", maxProjectNameLength)}
	}
	return nil
}
