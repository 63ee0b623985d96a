// Package calendar tracks which month the calendar is showing.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"TradingAssistant/internal/selection"
)

// ErrInvalidYear is returned when a year falls outside the navigable span.
var ErrInvalidYear = errors.New("year out of range")

// Default navigation bounds.
const (
	DefaultMinYear = 1999
	DefaultMaxYear = 2100
)

// Cursor is the month shown by the calendar. Moving it never touches the
// date selection.
type Cursor struct {
	Year    int
	Month   time.Month
	MinYear int
	MaxYear int
}

// NewCursor returns a cursor on the given month, clamped into bounds.
func NewCursor(year int, month time.Month, minYear, maxYear int) *Cursor {
	if minYear == 0 {
		minYear = DefaultMinYear
	}
	if maxYear == 0 {
		maxYear = DefaultMaxYear
	}
	c := &Cursor{Year: year, Month: month, MinYear: minYear, MaxYear: maxYear}
	if c.Month < time.January || c.Month > time.December {
		c.Month = time.January
	}
	if c.Year < minYear {
		c.Year = minYear
	}
	if c.Year > maxYear {
		c.Year = maxYear
	}
	return c
}

// ChangeMonth moves by delta months, carrying into the year. Only SetYear is
// bounded; month stepping may walk past the year limits.
func (c *Cursor) ChangeMonth(delta int) {
	t := time.Date(c.Year, c.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	c.Year, c.Month = t.Year(), t.Month()
}

// SetYear jumps to year, keeping the month. Out of range years are rejected.
func (c *Cursor) SetYear(year int) error {
	if year < c.MinYear || year > c.MaxYear {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidYear, year, c.MinYear, c.MaxYear)
	}
	c.Year = year
	return nil
}

// JumpTo shows the month containing d.
func (c *Cursor) JumpTo(d selection.CalendarDate) {
	if d.IsZero() {
		return
	}
	c.Year = d.Year()
	c.Month = d.Month()
}

// Title returns e.g. "March 2005".
func (c *Cursor) Title() string {
	return fmt.Sprintf("%s %d", c.Month, c.Year)
}

// Days returns the number of days in the shown month.
func (c *Cursor) Days() int {
	return time.Date(c.Year, c.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOf returns the date of day in the shown month.
func (c *Cursor) DateOf(day int) (selection.CalendarDate, error) {
	if day < 1 || day > c.Days() {
		return selection.CalendarDate{}, fmt.Errorf("%w: day %d of %s", selection.ErrMalformedDate, day, c.Title())
	}
	return selection.NewDate(c.Year, c.Month, day), nil
}

// Dates lists every date of the shown month in order.
func (c *Cursor) Dates() []selection.CalendarDate {
	n := c.Days()
	out := make([]selection.CalendarDate, n)
	for i := 0; i < n; i++ {
		out[i] = selection.NewDate(c.Year, c.Month, i+1)
	}
	return out
}

