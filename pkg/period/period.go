// Package period models shop business dates and the half-open date ranges
// used by reports. Dates are calendar days in the shop timezone, encoded as
// YYYY-MM-DD so they sort and compare as plain strings in any SQL dialect.
package period

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date is a calendar day, for example "2026-10-18"
type Date string

// ParseDate validates s and returns it as a Date
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date(t.Format(layout)), nil
}

// DateOf returns the calendar day of t in loc
func DateOf(t time.Time, loc *time.Location) Date {
	return Date(t.In(loc).Format(layout))
}

// Time returns midnight of d in loc
func (d Date) Time(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(layout, string(d), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays shifts d by n days (n may be negative)
func (d Date) AddDays(n int) Date {
	t, err := time.Parse(layout, string(d))
	if err != nil {
		return d
	}
	return Date(t.AddDate(0, 0, n).Format(layout))
}

func (d Date) String() string {
	return string(d)
}

func (d Date) IsZero() bool {
	return d == ""
}

// Range is the half-open interval [Start, End) of business dates
type Range struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Contains reports whether d falls inside the range
func (r Range) Contains(d Date) bool {
	return d >= r.Start && d < r.End
}

// Day covers exactly one business date
func Day(d Date) Range {
	return Range{Start: d, End: d.AddDays(1)}
}

// Today covers the business date of now in loc
func Today(now time.Time, loc *time.Location) Range {
	return Day(DateOf(now, loc))
}

// Month covers the calendar month containing now in loc
func Month(now time.Time, loc *time.Location) Range {
	local := now.In(loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Range{
		Start: Date(first.Format(layout)),
		End:   Date(first.AddDate(0, 1, 0).Format(layout)),
	}
}

// Kind names one of the supported report ranges
type Kind string

const (
	KindToday  Kind = "today"
	KindMonth  Kind = "month"
	KindCustom Kind = "custom"
)

// Resolve builds the range for kind. custom requires a date.
func Resolve(kind Kind, custom string, now time.Time, loc *time.Location) (Range, error) {
	switch kind {
	case "", KindToday:
		return Today(now, loc), nil
	case KindMonth:
		return Month(now, loc), nil
	case KindCustom:
		d, err := ParseDate(custom)
		if err != nil {
			return Range{}, err
		}
		return Day(d), nil
	default:
		return Range{}, fmt.Errorf("unknown range %q", kind)
	}
}

// Calendar turns the wall clock into business dates. Only the HTTP edge
// consults it; everything below takes explicit dates.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc, now: time.Now}
}

// WithClock returns a copy of c reading time from now
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	return &Calendar{loc: c.loc, now: now}
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

func (c *Calendar) Now() time.Time {
	return c.now()
}

// Today is the current business date
func (c *Calendar) Today() Date {
	return DateOf(c.now(), c.loc)
}

// DateOr parses s, defaulting to today when s is empty
func (c *Calendar) DateOr(s string) (Date, error) {
	if s == "" {
		return c.Today(), nil
	}
	return ParseDate(s)
}

// Resolve builds the named range relative to the current time
func (c *Calendar) Resolve(kind Kind, custom string) (Range, error) {
	return Resolve(kind, custom, c.now(), c.loc)
}
