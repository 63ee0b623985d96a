package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"), nil)
	require.NoError(t, err)
	defer r.Close()

	base := time.Date(2005, 3, 10, 12, 0, 0, 0, time.UTC)
	first := &Run{
		Timestamp: base,
		Source:    "demo",
		StartDate: "2005-03-05", EndDate: "2005-03-10",
		StartTime: "09:30", EndTime: "16:00",
		Interval: "15min", AutoTime: true,
		Success: true, ModelCount: 26, HistoricalCount: 26,
		Action: "BUY", TotalScore: 1.3,
	}
	require.NoError(t, r.RecordRun(first))
	assert.NotEmpty(t, first.ID)

	second := &Run{Timestamp: base.Add(time.Minute), Source: "live", Error: "status 500"}
	require.NoError(t, r.RecordRun(second))

	runs, err := r.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second.ID, runs[0].ID)
	assert.False(t, runs[0].Success)
	assert.Equal(t, "status 500", runs[0].Error)

	got := runs[1]
	assert.Equal(t, first.ID, got.ID)
	assert.True(t, got.Timestamp.Equal(base))
	assert.True(t, got.AutoTime)
	assert.True(t, got.Success)
	assert.Equal(t, "2005-03-05", got.StartDate)
	assert.Equal(t, 26, got.HistoricalCount)
	assert.Equal(t, "BUY", got.Action)
	assert.InDelta(t, 1.3, got.TotalScore, 1e-9)

	runs, err = r.RecentRuns(1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteRecorder_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	r, err := NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	require.NoError(t, r.RecordRun(&Run{Source: "demo", Success: true}))
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	defer r.Close()
	runs, err := r.RecentRuns(0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()
	assert.NoError(t, rec.RecordRun(&Run{}))
	runs, err := rec.RecentRuns(5)
	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, rec.Close())
}
