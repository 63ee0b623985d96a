package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Interval is a candle bucket size understood by the analysis backend.
type Interval string

const (
	Interval15m Interval = "15min"
	Interval30m Interval = "30min"
	Interval1h  Interval = "1h"
	Interval90m Interval = "1.5h"
	Interval3h  Interval = "3h"
	Interval1d  Interval = "1d"
)

// DefaultInterval is preselected until the user picks another one.
const DefaultInterval = Interval15m

// ErrInvalidInterval is returned for interval names outside the supported set.
var ErrInvalidInterval = errors.New("invalid interval")

var intervals = []struct {
	Interval Interval
	Duration time.Duration
	Label    string
}{
	{Interval15m, 15 * time.Minute, "15 min"},
	{Interval30m, 30 * time.Minute, "30 min"},
	{Interval1h, time.Hour, "1 hour"},
	{Interval90m, 90 * time.Minute, "1.5 hours"},
	{Interval3h, 3 * time.Hour, "3 hours"},
	{Interval1d, 24 * time.Hour, "1 day"},
}

// Intervals lists the supported intervals from finest to coarsest.
func Intervals() []Interval {
	out := make([]Interval, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.Interval
	}
	return out
}

// ParseInterval validates a user supplied interval name.
func ParseInterval(s string) (Interval, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, iv := range intervals {
		if string(iv.Interval) == s {
			return iv.Interval, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidInterval, s)
}

// Duration returns the bucket length, or zero for unknown intervals.
func (i Interval) Duration() time.Duration {
	for _, iv := range intervals {
		if iv.Interval == i {
			return iv.Duration
		}
	}
	return 0
}

// Label returns a human readable name.
func (i Interval) Label() string {
	for _, iv := range intervals {
		if iv.Interval == i {
			return iv.Label
		}
	}
	return string(i)
}
