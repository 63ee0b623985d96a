package model

import (
	"errors"
	"fmt"
	"time"
)

// Regular session bounds used when the time window is automatic.
const (
	SessionOpen  = "09:30"
	SessionClose = "16:00"
)

// ErrInvalidTimeWindow is returned for malformed or inverted manual windows.
var ErrInvalidTimeWindow = errors.New("invalid time window")

// TimeWindow is the intraday slice of each day covered by an analysis.
type TimeWindow struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
	Auto  bool   `json:"use_auto_time"`
}

// AutoWindow returns the regular trading session window.
func AutoWindow() TimeWindow {
	return TimeWindow{Start: SessionOpen, End: SessionClose, Auto: true}
}

// Effective resolves the window that is actually sent: auto windows always
// cover the regular session regardless of the stored manual times.
func (w TimeWindow) Effective() TimeWindow {
	if w.Auto {
		return AutoWindow()
	}
	return w
}

// Validate checks HH:MM formatting and that the window is not empty.
func (w TimeWindow) Validate() error {
	eff := w.Effective()
	start, err := time.Parse("15:04", eff.Start)
	if err != nil {
		return fmt.Errorf("%w: start %q", ErrInvalidTimeWindow, eff.Start)
	}
	end, err := time.Parse("15:04", eff.End)
	if err != nil {
		return fmt.Errorf("%w: end %q", ErrInvalidTimeWindow, eff.End)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: %s is not before %s", ErrInvalidTimeWindow, eff.Start, eff.End)
	}
	return nil
}

// Offsets returns the window bounds as offsets from midnight.
func (w TimeWindow) Offsets() (start, end time.Duration, err error) {
	if err := w.Validate(); err != nil {
		return 0, 0, err
	}
	eff := w.Effective()
	s, _ := time.Parse("15:04", eff.Start)
	e, _ := time.Parse("15:04", eff.End)
	return time.Duration(s.Hour())*time.Hour + time.Duration(s.Minute())*time.Minute,
		time.Duration(e.Hour())*time.Hour + time.Duration(e.Minute())*time.Minute, nil
}

// AnalysisRequest is the body of the backend analysis call.
type AnalysisRequest struct {
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Interval    Interval `json:"interval"`
	UseAutoTime bool     `json:"use_auto_time"`
}

// Window returns the request's time window.
func (r AnalysisRequest) Window() TimeWindow {
	return TimeWindow{Start: r.StartTime, End: r.EndTime, Auto: r.UseAutoTime}
}

// Period is the analysed date span echoed back by the backend.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AnalysisResponse is the backend analysis result. On failure only Success
// and Error are meaningful.
type AnalysisResponse struct {
	Success           bool     `json:"success"`
	Error             string   `json:"error,omitempty"`
	ModelCount        int      `json:"model_count"`
	HistoricalCount   int      `json:"historical_count"`
	Period            Period   `json:"period"`
	ModelCandles      []Candle `json:"model_candles"`
	HistoricalCandles []Candle `json:"historical_candles"`
}

// AvailableDates is the span of data the backend can analyse.
type AvailableDates struct {
	MinDate string `json:"min_date"`
	MaxDate string `json:"max_date"`
	Error   string `json:"error,omitempty"`
}
