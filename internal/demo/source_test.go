package demo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradingAssistant/internal/model"
)

func request(start, end string, iv model.Interval) model.AnalysisRequest {
	return model.AnalysisRequest{
		StartDate:   start,
		EndDate:     end,
		StartTime:   model.SessionOpen,
		EndTime:     model.SessionClose,
		Interval:    iv,
		UseAutoTime: true,
	}
}

func TestAnalyze_SessionSlots(t *testing.T) {
	src := New(Options{Latency: 0, Seed: 42})
	resp, err := src.Analyze(context.Background(), request("2005-03-07", "2005-03-08", model.Interval1h))
	require.NoError(t, err)

	// 09:30 .. 15:30 hourly is 7 candles per day.
	assert.Equal(t, 14, resp.HistoricalCount)
	assert.Equal(t, 14, resp.ModelCount)
	assert.True(t, resp.Success)
	assert.Equal(t, model.Period{Start: "2005-03-07", End: "2005-03-08"}, resp.Period)

	first := resp.HistoricalCandles[0].Time.Time
	assert.Equal(t, time.Date(2005, 3, 7, 9, 30, 0, 0, time.UTC), first)
	last := resp.HistoricalCandles[13].Time.Time
	assert.Equal(t, time.Date(2005, 3, 8, 15, 30, 0, 0, time.UTC), last)
}

func TestAnalyze_CandlesAreConsistent(t *testing.T) {
	src := New(Options{Seed: 7})
	resp, err := src.Analyze(context.Background(), request("2005-03-01", "2005-03-31", model.Interval15m))
	require.NoError(t, err)

	for i, series := range [][]model.Candle{resp.HistoricalCandles, resp.ModelCandles} {
		for _, c := range series {
			assert.GreaterOrEqual(t, c.High, c.Open, "series %d", i)
			assert.GreaterOrEqual(t, c.High, c.Close, "series %d", i)
			assert.LessOrEqual(t, c.Low, c.Open, "series %d", i)
			assert.LessOrEqual(t, c.Low, c.Close, "series %d", i)
			assert.Greater(t, c.Low, 0.0)
		}
	}
	assert.Len(t, resp.HistoricalCandles, DefaultMaxCandles)
}

func TestAnalyze_Daily(t *testing.T) {
	src := New(Options{Seed: 1})
	resp, err := src.Analyze(context.Background(), request("2005-03-05", "2005-03-10", model.Interval1d))
	require.NoError(t, err)
	assert.Equal(t, 6, resp.HistoricalCount)
}

func TestAnalyze_SameSeedSameData(t *testing.T) {
	req := request("2005-03-05", "2005-03-10", model.Interval3h)
	a, err := New(Options{Seed: 99}).Analyze(context.Background(), req)
	require.NoError(t, err)
	b, err := New(Options{Seed: 99}).Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a.HistoricalCandles, b.HistoricalCandles)
	assert.Equal(t, a.ModelCandles, b.ModelCandles)
}

func TestAnalyze_HonoursContext(t *testing.T) {
	src := New(Options{Latency: time.Minute, Seed: 1})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := src.Analyze(ctx, request("2005-03-05", "2005-03-10", model.Interval1h))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAnalyze_BadRequest(t *testing.T) {
	src := New(Options{Seed: 1})
	_, err := src.Analyze(context.Background(), request("2005-03-10", "2005-03-05", model.Interval1h))
	assert.Error(t, err)

	req := request("2005-03-05", "2005-03-10", model.Interval1h)
	req.UseAutoTime = false
	req.StartTime, req.EndTime = "16:00", "09:30"
	_, err = src.Analyze(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrInvalidTimeWindow)
}

func TestAvailableDates(t *testing.T) {
	dates, err := New(Options{MinDate: "2005-01-03"}).AvailableDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2005-01-03", dates.MinDate)
	assert.Equal(t, DefaultMaxDate, dates.MaxDate)
}
