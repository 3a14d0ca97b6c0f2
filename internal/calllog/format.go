package calllog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts for the edit form fields (dd/MM/yyyy, hh:mm a).
const (
	DateLayout     = "02/01/2006"
	TimeLayout     = "03:04 PM"
	DateTimeLayout = DateLayout + " " + TimeLayout

	// ListLayout is used by list rows (MMM dd, yyyy hh:mm a).
	ListLayout = "Jan 02, 2006 03:04 PM"
)

var singleDigit = regexp.MustCompile(`\b\d\b`)

// ParseDateTime combines the form date and time strings into one instant
// in loc (Local when nil). Single-digit day, month, hour and minute
// components are accepted ("1/2/2024", "9:05 AM"). No time zone
// normalization is applied.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	combined := strings.TrimSpace(date) + " " + strings.ToUpper(strings.TrimSpace(clock))
	combined = singleDigit.ReplaceAllStringFunc(combined, func(d string) string { return "0" + d })
	t, err := time.ParseInLocation(DateTimeLayout, combined, loc)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date/time", Value: combined, Err: err}
	}
	return t, nil
}

// FormatDate renders t as dd/MM/yyyy.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// FormatTime renders t as hh:mm a.
func FormatTime(t time.Time) string { return t.Format(TimeLayout) }

// FormatClock renders seconds as HH:mm:ss for the duration field.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FormatDuration renders seconds compactly for list rows: 01:02:03,
// 02:03 or 5s.
func FormatDuration(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%02d:%02d", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
