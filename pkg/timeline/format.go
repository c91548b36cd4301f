package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const clockLayout = "15:04"

// ApplyTimezoneOffset shifts a UTC instant into the configured static offset.
func ApplyTimezoneOffset(instant time.Time, offsetHours float64) time.Time {
	offsetSeconds := int(math.Round(offsetHours * 3600))
	return instant.In(time.FixedZone("", offsetSeconds))
}

// ParseTimestamp parses an upstream RFC 3339 timestamp (fractional seconds optional) and
// returns it in local time.
func ParseTimestamp(value string, offsetHours float64) (time.Time, error) {
	instant, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.WithField("timeString", value).Errorf("Failed to parse time: %v", err)
		return time.Time{}, &ParseError{Value: value, Err: err}
	}
	return ApplyTimezoneOffset(instant, offsetHours), nil
}

// FormatClock renders a local time as zero-padded 24h "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// FormatDurationHMS renders the whole seconds between start and end as "HH:MM:SS".
// Hours are not wrapped at 24.
func FormatDurationHMS(start, end time.Time) string {
	totalSeconds := int64(end.Sub(start) / time.Second)
	return formatHMS(totalSeconds/3600, (totalSeconds%3600)/60, totalSeconds%60)
}

// HoursBetween returns the span in hours rounded to one decimal place.
func HoursBetween(start, end time.Time) float64 {
	return roundTenth(end.Sub(start).Seconds() / 3600)
}

// FormatHoursFuzzy renders hours as "Hh Mm". Minutes are truncated, not rounded, so
// 18.2 becomes "18h 11m" because of the binary representation of 18.2.
func FormatHoursFuzzy(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatSessionHMS renders fractional hours as "HH:MM:SS", truncating at every level.
func FormatSessionHMS(hours float64) string {
	h := int(hours)
	// explicit conversion keeps the product rounded before the subtraction below (no FMA)
	minutes := float64((hours - float64(h)) * 60)
	m := int(minutes)
	s := int((minutes - float64(m)) * 60)
	return formatHMS(int64(h), int64(m), int64(s))
}

// ParseSessionHours converts an "HH:MM:SS" duration back to fractional hours.
func ParseSessionHours(duration string) (float64, error) {
	parts := strings.Split(duration, ":")
	if len(parts) != 3 {
		return 0, &ParseError{Value: duration, Err: fmt.Errorf("expected HH:MM:SS")}
	}
	values := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, &ParseError{Value: duration, Err: err}
		}
		values[i] = v
	}
	return float64(values[0]) + float64(values[1])/60 + float64(values[2])/3600, nil
}

func formatHMS(h, m, s int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// roundTenth rounds to one decimal place using the exact binary value with ties to even,
// so 1.75 -> 1.8 and 0.25 -> 0.2.
func roundTenth(value float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 1, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}
