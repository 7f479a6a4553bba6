package models

import (
	"time"

	"ptofunds/reconcile/internal/dateutils"
)

// Date is a calendar date with explicit absence. A missing or unparseable
// source field yields an invalid Date rather than a zero time, so scorers can
// distinguish "no data" from "January 1, year 1".
type Date struct {
	t     time.Time
	valid bool
}

// DateFrom builds a valid Date from a time.Time, truncated to the day.
func DateFrom(t time.Time) Date {
	return Date{t: dateutils.Truncate(t), valid: true}
}

// ParseDate parses a date string using the common formats. An empty or
// unparseable string yields an invalid Date, never an error.
func ParseDate(s string) Date {
	t, _, err := dateutils.ParseDate(s)
	if err != nil {
		return Date{}
	}
	return DateFrom(t)
}

// MustDate parses an ISO date string and panics on failure. Test helper.
func MustDate(s string) Date {
	t, err := time.Parse(dateutils.DateLayoutISO, s)
	if err != nil {
		panic(err)
	}
	return DateFrom(t)
}

// Valid reports whether the date carries a value.
func (d Date) Valid() bool {
	return d.valid
}

// Time returns the underlying time. Only meaningful when Valid.
func (d Date) Time() time.Time {
	return d.t
}

// DaysApart returns the absolute whole-day gap to another date.
// The second return value is false when either date is missing.
func (d Date) DaysApart(other Date) (int, bool) {
	if !d.valid || !other.valid {
		return 0, false
	}
	return dateutils.DaysBetween(d.t, other.t), true
}

// String returns the ISO representation, or "" for a missing date.
func (d Date) String() string {
	if !d.valid {
		return ""
	}
	return dateutils.ToISODate(d.t)
}

// UnmarshalCSV implements gocsv unmarshalling. Malformed dates degrade to an
// invalid Date instead of failing the row, so one bad record never aborts a
// batch load.
func (d *Date) UnmarshalCSV(s string) error {
	*d = ParseDate(s)
	return nil
}

// MarshalCSV implements gocsv marshalling.
func (d Date) MarshalCSV() (string, error) {
	return d.String(), nil
}

// MarshalJSON renders the date as an ISO string, or null when missing.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.valid {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}
