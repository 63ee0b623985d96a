// Package demo is an offline Analyzer that fabricates plausible candles.
package demo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"TradingAssistant/internal/logger"
	"TradingAssistant/internal/model"
	"TradingAssistant/internal/selection"
)

// Defaults mirror the demo page: 1.5 s of fake latency, prices around 100-120.
const (
	DefaultLatency    = 1500 * time.Millisecond
	DefaultMaxCandles = 500
	DefaultMinDate    = "2000-01-03"
	DefaultMaxDate    = "2100-12-31"
)

// Options configures a Source. Zero values use the defaults, except that a
// zero Latency means none and a zero Seed seeds from the clock.
type Options struct {
	Latency    time.Duration
	MaxCandles int
	Seed       int64
	MinDate    string
	MaxDate    string
	Logger     *logger.Logger
}

// Source implements the Analyzer capability without any network.
type Source struct {
	latency    time.Duration
	maxCandles int
	minDate    string
	maxDate    string
	log        *logger.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// New creates a demo source.
func New(opts Options) *Source {
	if opts.Latency < 0 {
		opts.Latency = 0
	}
	if opts.MaxCandles <= 0 {
		opts.MaxCandles = DefaultMaxCandles
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.MinDate == "" {
		opts.MinDate = DefaultMinDate
	}
	if opts.MaxDate == "" {
		opts.MaxDate = DefaultMaxDate
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Source{
		latency:    opts.Latency,
		maxCandles: opts.MaxCandles,
		minDate:    opts.MinDate,
		maxDate:    opts.MaxDate,
		log:        opts.Logger.Named("demo"),
		rnd:        rand.New(rand.NewSource(opts.Seed)),
	}
}

func (s *Source) Name() string { return "demo" }

// AvailableDates returns the fixed demo span.
func (s *Source) AvailableDates(_ context.Context) (*model.AvailableDates, error) {
	return &model.AvailableDates{MinDate: s.minDate, MaxDate: s.maxDate}, nil
}

// Analyze waits for the simulated latency, then returns a random-walk
// historical series and a jittered model series over the requested range.
func (s *Source) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResponse, error) {
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	times, err := s.slots(req)
	if err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, errors.New("demo: no candles in the requested window")
	}

	s.mu.Lock()
	historical := s.walk(times)
	modelled := s.jitter(historical)
	s.mu.Unlock()

	s.log.Debug("generated demo series",
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate),
		zap.Int("candles", len(historical)),
	)

	return &model.AnalysisResponse{
		Success:           true,
		ModelCount:        len(modelled),
		HistoricalCount:   len(historical),
		Period:            model.Period{Start: req.StartDate, End: req.EndDate},
		ModelCandles:      modelled,
		HistoricalCandles: historical,
	}, nil
}

// slots lists the candle open times of the request, keeping the most recent
// maxCandles.
func (s *Source) slots(req model.AnalysisRequest) ([]time.Time, error) {
	start, err := selection.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("demo: start date: %w", err)
	}
	end, err := selection.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("demo: end date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("demo: start %s after end %s", start, end)
	}
	from, to, err := req.Window().Offsets()
	if err != nil {
		return nil, err
	}
	step := req.Interval.Duration()
	if step == 0 {
		step = model.DefaultInterval.Duration()
	}

	var out []time.Time
	for d := start; !d.After(end); d = d.AddDays(1) {
		day := d.Time()
		if step >= 24*time.Hour {
			out = append(out, day.Add(from))
			continue
		}
		for off := from; off < to; off += step {
			out = append(out, day.Add(off))
		}
	}
	if len(out) > s.maxCandles {
		out = out[len(out)-s.maxCandles:]
	}
	return out, nil
}

func (s *Source) walk(times []time.Time) []model.Candle {
	out := make([]model.Candle, len(times))
	price := 100 + s.rnd.Float64()*20
	for i, t := range times {
		open := price
		close := math.Max(1, open+(s.rnd.Float64()-0.5)*10)
		out[i] = model.Candle{
			Time:  model.CandleTime{Time: t},
			Open:  round2(open),
			High:  round2(math.Max(open, close) + s.rnd.Float64()*5),
			Low:   round2(math.Max(0.01, math.Min(open, close)-s.rnd.Float64()*5)),
			Close: round2(close),
		}
		price = close
	}
	return out
}

// jitter derives the model series: open/close move up to ±5 %, high/low up
// to ±2.5 %, then high/low are widened to still bound the body.
func (s *Source) jitter(src []model.Candle) []model.Candle {
	out := make([]model.Candle, len(src))
	for i, c := range src {
		j := model.Candle{
			Time:  c.Time,
			Open:  c.Open * (1 + (s.rnd.Float64()-0.5)*0.1),
			Close: c.Close * (1 + (s.rnd.Float64()-0.5)*0.1),
			High:  c.High * (1 + (s.rnd.Float64()-0.5)*0.05),
			Low:   c.Low * (1 + (s.rnd.Float64()-0.5)*0.05),
		}
		j.High = math.Max(j.High, math.Max(j.Open, j.Close))
		j.Low = math.Min(j.Low, math.Min(j.Open, j.Close))
		j.Open, j.High, j.Low, j.Close = round2(j.Open), round2(j.High), round2(j.Low), round2(j.Close)
		out[i] = j
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
