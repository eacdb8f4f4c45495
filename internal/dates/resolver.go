// Package dates resolves relative and absolute date expressions into UTC
// ranges for calendar queries.
//
// Relative expressions ("today", "next week") are resolved against "now" in
// the requested IANA timezone, because today in Tokyo and today in Berlin
// are different UTC ranges. The resulting UTC range is what gets cached;
// display-timezone formatting happens at the response boundary only.
package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/dante4567/openwebui-sub000/internal/apperr"
)

// Query is the resolved date range for one request. Warning is set when the
// requested timezone was invalid and UTC was substituted.
type Query struct {
	StartUTC time.Time
	EndUTC   time.Time
	Location *time.Location
	Timezone string
	Warning  string
}

// MaxDaysAhead bounds the days_ahead parameter.
const MaxDaysAhead = 365

// ParseTimezone parses an IANA timezone identifier. An invalid name returns
// UTC plus an error so callers can degrade instead of failing.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// Resolve turns the raw request parameters into a UTC range.
//
// Each expression resolves to a half-open [start, end) range in the
// requested zone: a day for "today"/"tomorrow"/"yesterday"/"YYYY-MM-DD", a
// Monday-based week for "next week"/"last week". The query start is the
// start expression's range start; the end is the end expression's range
// start when given (so 2025-10-20..2025-10-27 is exactly seven days), else
// start plus daysAhead calendar days, else the start expression's own range
// end.
func Resolve(startExpr, endExpr string, daysAhead int, tz string, now time.Time) (Query, error) {
	loc, tzErr := ParseTimezone(tz)
	q := Query{Location: loc, Timezone: loc.String()}
	if tzErr != nil {
		q.Warning = fmt.Sprintf("invalid timezone %q, using UTC", tz)
	}

	if daysAhead != 0 && (daysAhead < 1 || daysAhead > MaxDaysAhead) {
		return Query{}, apperr.Validation("days_ahead must be between 1 and %d", MaxDaysAhead)
	}

	nowLoc := now.In(loc)
	if startExpr == "" {
		startExpr = "today"
	}
	startRange, err := resolveExpr(startExpr, nowLoc, loc)
	if err != nil {
		return Query{}, err
	}

	start := startRange.start
	var end time.Time
	switch {
	case endExpr != "":
		endRange, err := resolveExpr(endExpr, nowLoc, loc)
		if err != nil {
			return Query{}, err
		}
		end = endRange.start
	case daysAhead > 0:
		end = start.AddDate(0, 0, daysAhead)
	default:
		end = startRange.end
	}

	if !end.After(start) {
		return Query{}, apperr.Validation("end_date must be after start_date")
	}

	q.StartUTC = start.UTC()
	q.EndUTC = end.UTC()
	return q, nil
}

type dayRange struct {
	start time.Time
	end   time.Time
}

func resolveExpr(expr string, nowLoc time.Time, loc *time.Location) (dayRange, error) {
	switch strings.ToLower(strings.TrimSpace(expr)) {
	case "today":
		d := startOfDay(nowLoc, loc)
		return dayRange{d, d.AddDate(0, 0, 1)}, nil
	case "tomorrow":
		d := startOfDay(nowLoc, loc).AddDate(0, 0, 1)
		return dayRange{d, d.AddDate(0, 0, 1)}, nil
	case "yesterday":
		d := startOfDay(nowLoc, loc).AddDate(0, 0, -1)
		return dayRange{d, d.AddDate(0, 0, 1)}, nil
	case "next week":
		m := startOfWeek(nowLoc, loc).AddDate(0, 0, 7)
		return dayRange{m, m.AddDate(0, 0, 7)}, nil
	case "last week":
		m := startOfWeek(nowLoc, loc).AddDate(0, 0, -7)
		return dayRange{m, m.AddDate(0, 0, 7)}, nil
	}

	s := strings.TrimSpace(expr)
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		return dayRange{d, d.AddDate(0, 0, 1)}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		// A full timestamp anchors the range at that instant and extends to
		// the end of its calendar day in the requested zone.
		tl := t.In(loc)
		return dayRange{tl, startOfDay(tl, loc).AddDate(0, 0, 1)}, nil
	}
	return dayRange{}, apperr.Validation(
		"unrecognized date %q: use YYYY-MM-DD, RFC3339, today, tomorrow, yesterday, next week or last week", expr)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// startOfWeek returns the Monday 00:00 of t's week.
func startOfWeek(t time.Time, loc *time.Location) time.Time {
	d := startOfDay(t, loc)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
