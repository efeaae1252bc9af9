package ledger

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateRange is an inclusive calendar date range at day granularity
type DateRange struct {
	Start time.Time
	End   time.Time
}

var (
	lastNDaysPattern     = regexp.MustCompile(`^(?:last|past)\s+(\d+)\s+days?$`)
	lastNDaysScanPattern = regexp.MustCompile(`(?:last|past)\s+(\d+)\s+days?`)
)

// ResolveDatePhrase resolves a named relative date phrase against the
// reference date. Resolution is anchored only to the reference date so the
// same phrase on the same anchor always yields the same range. Unknown
// phrases return false; the caller treats that as "no date constraint".
//
// Weeks start on Monday. Current periods ("this week", "this month", "this
// year") run from the period start through the reference date, not the full
// calendar period. "last week" is the 7-day window ending the day before the
// current week's start; "last month" is the full previous calendar month;
// "past month" is the trailing 30 days.
func ResolveDatePhrase(phrase string, ref time.Time) (DateRange, bool) {
	ref = dateOnly(ref)
	p := normalize(phrase)

	if m := lastNDaysPattern.FindStringSubmatch(p); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return DateRange{}, false
		}
		return DateRange{Start: ref.AddDate(0, 0, -n), End: ref}, true
	}

	switch p {
	case "today":
		return DateRange{Start: ref, End: ref}, true
	case "yesterday":
		d := ref.AddDate(0, 0, -1)
		return DateRange{Start: d, End: d}, true
	case "this week":
		return DateRange{Start: weekStart(ref), End: ref}, true
	case "last week", "past week", "previous week":
		end := weekStart(ref).AddDate(0, 0, -1)
		return DateRange{Start: end.AddDate(0, 0, -6), End: end}, true
	case "this month":
		return DateRange{Start: monthStart(ref), End: ref}, true
	case "last month", "previous month":
		start := monthStart(ref).AddDate(0, -1, 0)
		return DateRange{Start: start, End: start.AddDate(0, 1, -1)}, true
	case "past month":
		return DateRange{Start: ref.AddDate(0, 0, -30), End: ref}, true
	case "this year":
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: start, End: ref}, true
	case "last year", "past year", "previous year":
		start := time.Date(ref.Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: start, End: start.AddDate(1, 0, -1)}, true
	}

	return DateRange{}, false
}

// dateOnly truncates a timestamp to UTC midnight
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekStart returns the Monday of the week containing t
func weekStart(t time.Time) time.Time {
	t = dateOnly(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// monthStart returns the first day of the month containing t
func monthStart(t time.Time) time.Time {
	t = dateOnly(t)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// KnownDatePhrase reports whether the phrase resolves against some anchor.
// Useful for extraction, where a candidate phrase should only be consumed
// from the query when it is actually recognized.
func KnownDatePhrase(phrase string) bool {
	_, ok := ResolveDatePhrase(phrase, time.Now())
	return ok
}

// datePhraseMarkers are the surface forms scanned for in free text, longest
// first so "last month" wins over "month".
var datePhraseMarkers = []string{
	"previous month", "previous week", "previous year",
	"this month", "last month", "past month",
	"this week", "last week", "past week",
	"this year", "last year", "past year",
	"yesterday", "today",
}

// ExtractDatePhrase scans free text for a recognized date phrase and returns
// it, or false when the text names none. "last 30 days" style phrases are
// matched anywhere in the text.
func ExtractDatePhrase(text string) (string, bool) {
	t := normalize(text)
	if m := lastNDaysScanPattern.FindString(t); m != "" {
		return m, true
	}
	for _, marker := range datePhraseMarkers {
		if strings.Contains(t, marker) {
			return marker, true
		}
	}
	return "", false
}
