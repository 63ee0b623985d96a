package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradingAssistant/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{BaseURL: srv.URL + "/", APIKey: "secret", MaxRetryElapsed: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestAnalyze_Success(t *testing.T) {
	var got model.AnalysisRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/analyze", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"model_count":1,"historical_count":1,
			"period":{"start":"2005-03-05","end":"2005-03-10"},
			"model_candles":[{"time":"2005-03-05 09:30:00","open":1,"high":2,"low":0.5,"close":1.5}],
			"historical_candles":[{"time":"2005-03-05 09:30:00","open":1,"high":2,"low":0.5,"close":1.2}]}`))
	})

	req := model.AnalysisRequest{
		StartDate: "2005-03-05", EndDate: "2005-03-10",
		StartTime: "09:30", EndTime: "16:00",
		Interval: model.Interval15m, UseAutoTime: true,
	}
	resp, err := c.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, req, got)
	assert.Equal(t, 1, resp.ModelCount)
	assert.Equal(t, "2005-03-10", resp.Period.End)
	assert.Equal(t, 1.2, resp.HistoricalCandles[0].Close)
}

func TestAnalyze_SuccessFalseIsRequestError(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"success":false,"error":"no data for range"}`))
	})

	_, err := c.Analyze(context.Background(), model.AnalysisRequest{})
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "no data for range", reqErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAnalyze_ServerErrorNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	_, err := c.Analyze(context.Background(), model.AnalysisRequest{})
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, "boom", reqErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "analyze must be sent exactly once")
}

func TestAnalyze_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)
	_, err = c.Analyze(context.Background(), model.AnalysisRequest{})
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.NotNil(t, reqErr.Err)
}

func TestAvailableDates_RetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/available-dates", r.URL.Path)
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"min_date":"2005-01-03","max_date":"2005-12-30"}`))
	})

	dates, err := c.AvailableDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2005-01-03", dates.MinDate)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestAvailableDates_ClientErrorIsPermanent(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.AvailableDates(context.Background())
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAvailableDates_BodyError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"database offline"}`))
	})
	_, err := c.AvailableDates(context.Background())
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "database offline", reqErr.Message)
}
