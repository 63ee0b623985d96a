// Package controller is the trading assistant's UI controller: it turns
// user events into selection changes and analysis runs.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"TradingAssistant/internal/calendar"
	"TradingAssistant/internal/chart"
	"TradingAssistant/internal/logger"
	"TradingAssistant/internal/metrics"
	"TradingAssistant/internal/model"
	"TradingAssistant/internal/notifier"
	"TradingAssistant/internal/recorder"
	"TradingAssistant/internal/selection"
)

var (
	// ErrInvalidRange is returned when an analysis is requested before both
	// ends of the range are chosen.
	ErrInvalidRange = errors.New("please select start and end dates")
	// ErrBusy is returned while another analysis is in flight.
	ErrBusy = errors.New("an analysis is already running")
)

// Notification texts.
const (
	msgSuccess = "Analysis completed successfully!"
	msgError   = "Error: "
)

// Analyzer is a data source able to run analyses.
type Analyzer interface {
	Name() string
	AvailableDates(ctx context.Context) (*model.AvailableDates, error)
	Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResponse, error)
}

// Options wires a Controller. Nil collaborators are replaced by no-ops.
type Options struct {
	Analyzer Analyzer
	View     chart.View
	Notifier notifier.Notifier
	Recorder recorder.Recorder
	Logger   *logger.Logger
	MinYear  int
	MaxYear  int
	Now      func() time.Time
}

// Controller owns one selection, one calendar cursor and the analysis
// settings. Its methods are safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	sel      *selection.Selector
	cursor   *calendar.Cursor
	interval model.Interval
	window   model.TimeWindow
	last     *Result

	busy atomic.Bool

	analyzer Analyzer
	view     chart.View
	notify   notifier.Notifier
	rec      recorder.Recorder
	log      *logger.Logger
	now      func() time.Time
}

// Result is the outcome of a successful analysis run.
type Result struct {
	Request    model.AnalysisRequest
	Response   *model.AnalysisResponse
	Indicators *model.SeriesIndicators
	Signal     *model.Signal
	Report     string
	Took       time.Duration
}

// New creates a controller with an empty selection, the calendar on the
// current month, the default interval and the automatic time window.
func New(opts Options) (*Controller, error) {
	if opts.Analyzer == nil {
		return nil, errors.New("controller: analyzer is required")
	}
	if opts.View == nil {
		opts.View = chart.MultiView{}
	}
	if opts.Notifier == nil {
		opts.Notifier = notifier.Noop{}
	}
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	now := opts.Now()
	return &Controller{
		sel:      selection.New(),
		cursor:   calendar.NewCursor(now.Year(), now.Month(), opts.MinYear, opts.MaxYear),
		interval: model.DefaultInterval,
		window:   model.AutoWindow(),
		analyzer: opts.Analyzer,
		view:     opts.View,
		notify:   opts.Notifier,
		rec:      opts.Recorder,
		log:      opts.Logger.Named("controller"),
		now:      opts.Now,
	}, nil
}

// Source names the analyzer in use.
func (c *Controller) Source() string { return c.analyzer.Name() }

// ClickDate feeds one calendar click into the selection. Malformed dates
// leave the selection unchanged.
func (c *Controller) ClickDate(raw string) (selection.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.sel.SelectString(raw)
	if err != nil {
		c.log.Warn("rejected date click", zap.String("raw", raw), zap.Error(err))
		return st, err
	}
	metrics.Selections.WithLabelValues(st.Phase().String()).Inc()
	c.log.Debug("date clicked",
		zap.String("date", raw),
		zap.String("phase", st.Phase().String()),
		zap.String("start", st.Start.String()),
		zap.String("end", st.End.String()),
	)
	return st, nil
}

// ResetSelection clears the selected dates.
func (c *Controller) ResetSelection() selection.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Reset()
}

// IsInRange reports whether raw lies inside the complete selection.
func (c *Controller) IsInRange(raw string) (bool, error) {
	d, err := selection.ParseDate(raw)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.IsInRange(d), nil
}

// Selection returns the current selection.
func (c *Controller) Selection() selection.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.State()
}

// ChangeMonth moves the calendar by delta months. The selection is kept.
func (c *Controller) ChangeMonth(delta int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor.ChangeMonth(delta)
	return c.cursor.Title()
}

// SetYear moves the calendar to year, keeping the month and the selection.
func (c *Controller) SetYear(year int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.cursor.SetYear(year); err != nil {
		return c.cursor.Title(), err
	}
	return c.cursor.Title(), nil
}

// Calendar returns a copy of the calendar cursor.
func (c *Controller) Calendar() calendar.Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.cursor
}

// SelectInterval picks the candle interval for the next run.
func (c *Controller) SelectInterval(raw string) (model.Interval, error) {
	iv, err := model.ParseInterval(raw)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = iv
	return iv, nil
}

// SetAutoTime toggles the automatic session window. Manual times are kept
// for when it is switched off again.
func (c *Controller) SetAutoTime(auto bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window.Auto = auto
}

// SetTimes stores a manual HH:MM window and switches automatic time off.
func (c *Controller) SetTimes(start, end string) error {
	w := model.TimeWindow{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = w
	return nil
}

// Bootstrap asks the analyzer for the available dates and shows the month
// of the earliest one. Failures only cost the positioning.
func (c *Controller) Bootstrap(ctx context.Context) (*model.AvailableDates, error) {
	dates, err := c.analyzer.AvailableDates(ctx)
	if err != nil {
		c.log.Warn("failed to load available dates", zap.Error(err))
		return nil, err
	}
	if d, err := selection.ParseDate(dates.MinDate); err == nil {
		c.mu.Lock()
		c.cursor.JumpTo(d)
		c.mu.Unlock()
	} else if dates.MinDate != "" {
		c.log.Warn("ignoring malformed min_date", zap.String("min_date", dates.MinDate))
	}
	return dates, nil
}

// Request builds the analysis request for the current state.
func (c *Controller) Request() (model.AnalysisRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestLocked()
}

func (c *Controller) requestLocked() (model.AnalysisRequest, error) {
	r, ok := c.sel.Range()
	if !ok {
		return model.AnalysisRequest{}, ErrInvalidRange
	}
	w := c.window.Effective()
	return model.AnalysisRequest{
		StartDate:   r.Start.String(),
		EndDate:     r.End.String(),
		StartTime:   w.Start,
		EndTime:     w.End,
		Interval:    c.interval,
		UseAutoTime: w.Auto,
	}, nil
}

// Last returns the most recent successful result, if any.
func (c *Controller) Last() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Busy reports whether an analysis is in flight.
func (c *Controller) Busy() bool { return c.busy.Load() }

// Summary describes the selection the way the date panel shows it.
func (c *Controller) Summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summary(c.sel.State())
}

// Summary describes a selection state for display.
func Summary(st selection.State) string {
	switch st.Phase() {
	case selection.PhaseComplete:
		return fmt.Sprintf("Selected period: %s → %s", st.Start.Display(), st.End.Display())
	case selection.PhasePartial:
		return "Selected date: " + st.Start.Display()
	default:
		return "Select dates in the calendar"
	}
}

// Status is a read-only view of the controller for status displays.
type Status struct {
	Summary  string
	Phase    selection.Phase
	Month    string
	Interval model.Interval
	Window   model.TimeWindow
	Source   string
	Busy     bool
}

// Status collects the current state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.sel.State()
	return Status{
		Summary:  Summary(st),
		Phase:    st.Phase(),
		Month:    c.cursor.Title(),
		Interval: c.interval,
		Window:   c.window.Effective(),
		Source:   c.analyzer.Name(),
		Busy:     c.busy.Load(),
	}
}
