package controller

import (
	"fmt"

	"TradingAssistant/internal/calendar"
	"TradingAssistant/internal/model"
	"TradingAssistant/internal/selection"
	"TradingAssistant/internal/session"
)

// Snapshot captures the controller state for the session store.
func (c *Controller) Snapshot() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.sel.State()
	return session.State{
		StartDate: st.Start,
		EndDate:   st.End,
		Year:      c.cursor.Year,
		Month:     c.cursor.Month,
		Interval:  c.interval,
		AutoTime:  c.window.Auto,
		StartTime: c.window.Start,
		EndTime:   c.window.End,
	}
}

// Restore loads a persisted state. Nothing changes when the state is
// invalid. A zero Year keeps the current calendar position.
func (c *Controller) Restore(st session.State) error {
	sel, err := selection.Restore(selection.State{Start: st.StartDate, End: st.EndDate})
	if err != nil {
		return fmt.Errorf("restore selection: %w", err)
	}
	iv := st.Interval
	if iv == "" {
		iv = model.DefaultInterval
	}
	if iv, err = model.ParseInterval(string(iv)); err != nil {
		return fmt.Errorf("restore interval: %w", err)
	}
	window := model.TimeWindow{Start: st.StartTime, End: st.EndTime, Auto: st.AutoTime}
	if window.Start == "" || window.End == "" {
		window.Start, window.End = model.SessionOpen, model.SessionClose
	}
	if !window.Auto {
		if err := window.Validate(); err != nil {
			return fmt.Errorf("restore time window: %w", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel = sel
	c.interval = iv
	c.window = window
	if st.Year != 0 {
		c.cursor = calendar.NewCursor(st.Year, st.Month, c.cursor.MinYear, c.cursor.MaxYear)
	}
	return nil
}
