package timeutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clock24Pattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
	clock12Pattern = regexp.MustCompile(`(?i)^(1[012]|[1-9]):([0-5][0-9]) ?(am|pm)$`)
)

// TimeOfDay is a wall-clock hour/minute pair.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// On anchors the time of day to the calendar day of the given instant, in
// that instant's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// ParseTimeOfDay parses a wall-clock time. Strict 24-hour "H:MM" is tried
// first, then 12-hour "H:MM am|pm" with a case-insensitive meridiem and an
// optional single space before it. Returns ok=false when neither matches.
func ParseTimeOfDay(text string) (TimeOfDay, bool) {
	if match := clock24Pattern.FindStringSubmatch(text); match != nil {
		hour, _ := strconv.Atoi(match[1])
		minute, _ := strconv.Atoi(match[2])
		return TimeOfDay{Hour: hour, Minute: minute}, true
	}

	match := clock12Pattern.FindStringSubmatch(text)
	if match == nil {
		return TimeOfDay{}, false
	}
	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	if hour == 12 {
		hour = 0
	}
	if strings.EqualFold(match[3], "pm") {
		hour += 12
	}
	return TimeOfDay{Hour: hour, Minute: minute}, true
}

// DayLayout is the textual form of a calendar day used in JQL clauses and
// the --date flag.
const DayLayout = "2006-01-02"

// ParseDay parses a "YYYY-MM-DD" day in the local zone. Empty input means
// today.
func ParseDay(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Today(), nil
	}
	return time.ParseInLocation(DayLayout, text, time.Local)
}

// Today returns midnight of the current day in the local zone.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// SameDay reports whether two instants fall on the same calendar day,
// compared in the reference instant's location.
func SameDay(reference, other time.Time) bool {
	other = other.In(reference.Location())
	return reference.Year() == other.Year() &&
		reference.Month() == other.Month() &&
		reference.Day() == other.Day()
}
