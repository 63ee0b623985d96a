// Package session persists the controller state between CLI invocations.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"TradingAssistant/internal/model"
	"TradingAssistant/internal/selection"
)

// State is everything the user has chosen so far. A zero Year means the
// calendar has never been positioned.
type State struct {
	StartDate selection.CalendarDate `json:"start_date"`
	EndDate   selection.CalendarDate `json:"end_date"`
	Year      int                    `json:"year"`
	Month     time.Month             `json:"month"`
	Interval  model.Interval         `json:"interval"`
	AutoTime  bool                   `json:"auto_time"`
	StartTime string                 `json:"start_time"`
	EndTime   string                 `json:"end_time"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Fresh returns the state of a first start: nothing selected, default
// interval, automatic session window.
func Fresh() State {
	return State{
		Interval:  model.DefaultInterval,
		AutoTime:  true,
		StartTime: model.SessionOpen,
		EndTime:   model.SessionClose,
	}
}

// LoadState reads the state from a JSON file. Returns a fresh state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			st := Fresh()
			return &st, nil
		}
		return nil, err
	}
	st := Fresh()
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", filePath, err)
	}
	return &st, nil
}

// SaveState writes the state to a JSON file, creating its directory.
func SaveState(filePath string, st *State) error {
	st.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
