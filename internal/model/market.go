package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Candle represents a single OHLC bar as exchanged with the analysis backend.
type Candle struct {
	Time  CandleTime `json:"time"`
	Open  float64    `json:"open"`
	High  float64    `json:"high"`
	Low   float64    `json:"low"`
	Close float64    `json:"close"`
}

// Direction reports whether the bar closed above, below or at its open.
func (c Candle) Direction() int {
	switch {
	case c.Close > c.Open:
		return 1
	case c.Close < c.Open:
		return -1
	default:
		return 0
	}
}

// CandleTime is a bar timestamp that tolerates the formats backends emit.
type CandleTime struct {
	time.Time
}

var candleTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseCandleTime parses a textual bar timestamp. Zone-less values are UTC.
func ParseCandleTime(s string) (CandleTime, error) {
	for _, layout := range candleTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return CandleTime{t}, nil
		}
	}
	return CandleTime{}, fmt.Errorf("unrecognised candle time %q", s)
}

func (t CandleTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}

func (t *CandleTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("candle time: %w", err)
		}
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCandleTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Closes extracts close prices in series order.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
