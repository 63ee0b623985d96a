package selection

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedDate is returned when a date string cannot be parsed.
var ErrMalformedDate = errors.New("malformed date")

// isoLayout is the canonical output form. The parse layout drops zero padding
// so that "2005-3-5" and "2005-03-05" denote the same day.
const (
	isoLayout   = "2006-01-02"
	parseLayout = "2006-1-2"
)

// CalendarDate is a calendar day. The zero value means "no date".
type CalendarDate struct {
	t time.Time
}

// NewDate builds a date from its components, normalising overflow the way
// time.Date does.
func NewDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-M-D with optional zero padding. 0001-01-01 is
// rejected because it coincides with the zero value.
func ParseDate(s string) (CalendarDate, error) {
	t, err := time.Parse(parseLayout, strings.TrimSpace(s))
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	if t.IsZero() {
		return CalendarDate{}, fmt.Errorf("%w: %q is reserved for no date", ErrMalformedDate, s)
	}
	return CalendarDate{t: t}, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) CalendarDate {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime takes the calendar day of t in t's location.
func FromTime(t time.Time) CalendarDate {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// IsZero reports whether d is absent.
func (d CalendarDate) IsZero() bool { return d.t.IsZero() }

func (d CalendarDate) Year() int         { return d.t.Year() }
func (d CalendarDate) Month() time.Month { return d.t.Month() }
func (d CalendarDate) Day() int          { return d.t.Day() }

// Time returns midnight UTC of the day.
func (d CalendarDate) Time() time.Time { return d.t }

// AddDays returns the date n days later (earlier for negative n).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return CalendarDate{t: d.t.AddDate(0, 0, n)}
}

// Compare orders dates chronologically: -1 if d is before o, +1 if after.
func (d CalendarDate) Compare(o CalendarDate) int {
	return d.t.Compare(o.t)
}

// Before, After and Equal compare whole days.
func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }
func (d CalendarDate) After(o CalendarDate) bool  { return d.Compare(o) > 0 }
func (d CalendarDate) Equal(o CalendarDate) bool  { return d.Compare(o) == 0 }

// String returns the ISO form, or "" for the zero date.
func (d CalendarDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(isoLayout)
}

// Display formats the date as dd.mm.yyyy.
func (d CalendarDate) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("02.01.2006")
}

// MarshalJSON writes the ISO form, or null for the zero date.
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts null, "" or any form ParseDate accepts.
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = CalendarDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = CalendarDate{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
