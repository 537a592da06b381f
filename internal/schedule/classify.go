// Package schedule classifies exam dates and times relative to now and merges
// an application with its schedule row.
//
// Every function in this package is total: unparseable or missing input
// resolves to a safe default instead of an error, and nothing here performs
// I/O. Calendar days and clock times are interpreted in now.Location().
package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/exam-tracker/internal/domain"
)

var (
	// monthDayYear matches "Jan 24, 2025".
	monthDayYear = regexp.MustCompile(`^([A-Za-z]{3})\s+(\d{1,2}),\s+(\d{4})$`)

	// clockTime matches "9:00 AM", "1:30pm" and similar.
	clockTime = regexp.MustCompile(`(?i)(\d+):(\d+)\s*(am|pm)`)

	monthAbbrevs = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

	// genericLayouts are tried, in order, when the short month form does not match.
	genericLayouts = []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006/1/2",
		"Jan 2, 2006",
		"January 2, 2006",
		"Jan 2 2006",
		"2 Jan 2006",
		"Monday, January 2, 2006",
		time.RFC1123,
	}
)

// IsSentinel reports whether s means "no value": empty, "N/A" or "-".
func IsSentinel(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == domain.NotAvailable || s == "-"
}

// ClassifyDate reports whether dateStr names a calendar day before, equal to,
// or after the day of now. Sentinels and unparseable input classify as future.
func ClassifyDate(dateStr string, now time.Time) domain.DateStatus {
	if IsSentinel(dateStr) {
		return domain.DateFuture
	}
	day, ok := parseDay(strings.TrimSpace(dateStr), now.Location())
	if !ok {
		return domain.DateFuture
	}

	today := startOfDay(now)
	switch {
	case day.Before(today):
		return domain.DatePast
	case day.Equal(today):
		return domain.DateToday
	default:
		return domain.DateFuture
	}
}

// ClassifyTime reports whether the clock time in timeStr has already passed
// today. For a range such as "1:30 pm - 4:30 pm" only the start is evaluated.
// The exam's own date plays no part; sentinels and unparseable input classify
// as future.
func ClassifyTime(timeStr string, now time.Time) domain.DateStatus {
	if IsSentinel(timeStr) {
		return domain.DateFuture
	}

	start := timeStr
	if i := strings.Index(timeStr, "-"); i >= 0 {
		start = timeStr[:i]
	}
	m := clockTime.FindStringSubmatch(strings.TrimSpace(start))
	if m == nil {
		return domain.DateFuture
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.DateFuture
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return domain.DateFuture
	}

	switch period := strings.ToUpper(m[3]); {
	case period == "PM" && hours < 12:
		hours += 12
	case period == "AM" && hours == 12:
		hours = 0
	}

	examTime := time.Date(now.Year(), now.Month(), now.Day(), hours, minutes, 0, 0, now.Location())
	if now.After(examTime) {
		return domain.DatePast
	}
	return domain.DateFuture
}

// parseDay tries the supported date forms in order and returns midnight of
// the parsed calendar day in loc.
func parseDay(s string, loc *time.Location) (time.Time, bool) {
	if m := monthDayYear.FindStringSubmatch(s); m != nil {
		if idx := indexOf(monthAbbrevs, m[1]); idx >= 0 {
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			return time.Date(year, time.Month(idx+1), day, 0, 0, 0, 0, loc), true
		}
	}

	for _, layout := range genericLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return startOfDay(t.In(loc)), true
		}
	}

	parts := strings.Split(s, "/")
	if len(parts) == 3 {
		month, okM := leadingInt(parts[0])
		day, okD := leadingInt(parts[1])
		year, okY := leadingInt(parts[2])
		if okM && okD && okY && month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
		}
	}

	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// leadingInt parses the run of digits at the start of s (after spaces),
// ignoring anything that follows, e.g. "15 (moved)" → 15.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
