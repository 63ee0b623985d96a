// Package client talks to the backend analysis endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"TradingAssistant/internal/logger"
	"TradingAssistant/internal/model"
)

const (
	analyzePath        = "/api/analyze"
	availableDatesPath = "/api/available-dates"
)

// RequestError is returned when the backend could not be reached, answered
// with a non-2xx status, or reported success=false.
type RequestError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RequestError) Unwrap() error { return e.Err }

// Options configures a Client.
type Options struct {
	BaseURL  string
	APIKey   string
	ProxyURL string
	Timeout  time.Duration
	// MaxRetryElapsed bounds the retries of idempotent requests.
	MaxRetryElapsed time.Duration
	Logger          *logger.Logger
	HTTPClient      *http.Client
}

// Client is the live Analyzer backed by the REST API.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client

	maxRetryElapsed time.Duration
	log             *logger.Logger
}

// New creates a client with optional proxy support.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("client: base url is required")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetryElapsed <= 0 {
		opts.MaxRetryElapsed = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	hc := opts.HTTPClient
	if hc == nil {
		transport := &http.Transport{}
		if opts.ProxyURL != "" {
			if u, err := url.Parse(opts.ProxyURL); err == nil {
				transport.Proxy = http.ProxyURL(u)
			}
		}
		hc = &http.Client{Timeout: opts.Timeout, Transport: transport}
	}

	return &Client{
		BaseURL:         strings.TrimRight(opts.BaseURL, "/"),
		APIKey:          opts.APIKey,
		HTTP:            hc,
		maxRetryElapsed: opts.MaxRetryElapsed,
		log:             opts.Logger.Named("client"),
	}, nil
}

func (c *Client) Name() string { return "live" }

// Analyze posts the request once. It is never retried: a run maps to
// exactly one backend call.
func (c *Client) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode analysis request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	var out model.AnalysisResponse
	if err := c.do(httpReq, "analyze", &out); err != nil {
		return nil, err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "analysis failed"
		}
		return nil, &RequestError{Op: "analyze", Message: msg}
	}

	c.log.Info("analysis received",
		zap.Int("model_count", out.ModelCount),
		zap.Int("historical_count", out.HistoricalCount),
		zap.Duration("took", time.Since(start)),
	)
	return &out, nil
}

// AvailableDates fetches the dates for which data exists. The GET is
// idempotent, so transport errors and 5xx answers are retried with
// exponential backoff.
func (c *Client) AvailableDates(ctx context.Context) (*model.AvailableDates, error) {
	var out model.AvailableDates

	op := func() error {
		req, err := c.newRequest(ctx, http.MethodGet, availableDatesPath, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		out = model.AvailableDates{}
		err = c.do(req, "available dates", &out)
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode >= 400 && reqErr.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = c.maxRetryElapsed

	notify := func(err error, delay time.Duration) {
		c.log.Warn("available dates retry", zap.Duration("delay", delay), zap.Error(err))
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, &RequestError{Op: "available dates", Message: out.Error}
	}
	return &out, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessage extracts {"error": "..."} from a failed response, falling
// back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
