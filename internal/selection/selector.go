// Package selection turns individual calendar clicks into an ordered,
// inclusive date range.
package selection

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned by Restore for states that break the
// selection invariants.
var ErrInvalidState = errors.New("invalid selection state")

// Phase is the shape of a selection.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhasePartial
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhasePartial:
		return "partial"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is a snapshot of the selection. End is never set without Start and,
// when both are set, Start <= End.
type State struct {
	Start CalendarDate `json:"start_date"`
	End   CalendarDate `json:"end_date"`
}

// Phase classifies the state.
func (s State) Phase() Phase {
	switch {
	case s.Start.IsZero():
		return PhaseEmpty
	case s.End.IsZero():
		return PhasePartial
	default:
		return PhaseComplete
	}
}

func (s State) validate() error {
	if s.Start.IsZero() && !s.End.IsZero() {
		return fmt.Errorf("%w: end %s without start", ErrInvalidState, s.End)
	}
	if !s.End.IsZero() && s.End.Before(s.Start) {
		return fmt.Errorf("%w: start %s after end %s", ErrInvalidState, s.Start, s.End)
	}
	return nil
}

// Range is an inclusive span of days with Start <= End.
type Range struct {
	Start CalendarDate
	End   CalendarDate
}

// Contains reports whether d lies within the range, bounds included.
func (r Range) Contains(d CalendarDate) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days counts the days in the range, bounds included.
func (r Range) Days() int {
	return int(r.End.Time().Sub(r.Start.Time()).Hours()/24) + 1
}

func (r Range) String() string {
	return r.Start.String() + ".." + r.End.String()
}

// Mark is how a calendar renderer should highlight a day cell.
type Mark int

const (
	MarkNone Mark = iota
	MarkSelected
	MarkInRange
)

// Selector is the date-range selection state machine. It is not safe for
// concurrent use; the owning controller serializes events.
type Selector struct {
	state State
}

// New returns an empty selector.
func New() *Selector {
	return &Selector{}
}

// Restore rebuilds a selector from a persisted state.
func Restore(st State) (*Selector, error) {
	if err := st.validate(); err != nil {
		return nil, err
	}
	return &Selector{state: st}, nil
}

// Select applies one click:
//
//	empty    + d        -> partial(d)
//	partial  + d>=start -> complete(start, d)
//	partial  + d<start  -> complete(d, start)
//	complete + d        -> partial(d), the previous range is dropped
//
// A zero d is ignored.
func (s *Selector) Select(d CalendarDate) State {
	if d.IsZero() {
		return s.state
	}
	switch s.state.Phase() {
	case PhaseEmpty, PhaseComplete:
		s.state = State{Start: d}
	case PhasePartial:
		if d.Before(s.state.Start) {
			s.state = State{Start: d, End: s.state.Start}
		} else {
			s.state.End = d
		}
	}
	return s.state
}

// SelectString parses raw and selects it. Malformed input leaves the state
// unchanged.
func (s *Selector) SelectString(raw string) (State, error) {
	d, err := ParseDate(raw)
	if err != nil {
		return s.state, err
	}
	return s.Select(d), nil
}

// Reset clears the selection.
func (s *Selector) Reset() State {
	s.state = State{}
	return s.state
}

// State returns the current selection.
func (s *Selector) State() State {
	return s.state
}

// Range returns the selected range once both ends are chosen.
func (s *Selector) Range() (Range, bool) {
	if s.state.Phase() != PhaseComplete {
		return Range{}, false
	}
	return Range{Start: s.state.Start, End: s.state.End}, true
}

// IsInRange reports whether d falls inside a complete selection.
func (s *Selector) IsInRange(d CalendarDate) bool {
	r, ok := s.Range()
	return ok && r.Contains(d)
}

// Mark classifies a day cell: endpoints are selected, interior days of a
// complete range are in range.
func (s *Selector) Mark(d CalendarDate) Mark {
	switch {
	case !s.state.Start.IsZero() && d.Equal(s.state.Start):
		return MarkSelected
	case !s.state.End.IsZero() && d.Equal(s.state.End):
		return MarkSelected
	case s.IsInRange(d):
		return MarkInRange
	default:
		return MarkNone
	}
}
