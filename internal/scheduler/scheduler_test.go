package scheduler

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradingAssistant/internal/controller"
	"TradingAssistant/internal/demo"
	"TradingAssistant/internal/model"
	"TradingAssistant/internal/recorder"
	"TradingAssistant/internal/session"
)

type captureNotifier struct{ sent []model.Notification }

func (c *captureNotifier) Notify(_ context.Context, n model.Notification) error {
	c.sent = append(c.sent, n)
	return nil
}

func newTestScheduler(t *testing.T) (*Scheduler, *captureNotifier, *recorder.SQLiteRecorder) {
	t.Helper()
	dir := t.TempDir()
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(dir, "runs.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })

	notes := &captureNotifier{}
	ctl, err := controller.New(controller.Options{
		Analyzer: demo.New(demo.Options{Seed: 5}),
		Notifier: notes,
		Recorder: rec,
	})
	require.NoError(t, err)

	sm, err := session.NewManager(filepath.Join(dir, "session.json"), nil)
	require.NoError(t, err)
	return NewScheduler(context.Background(), ctl, sm, rec, nil), notes, rec
}

func TestRegisterAll(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	require.NoError(t, s.RegisterAll("0 0 17 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)
	assert.Error(t, s.RegisterAll("every day"))
}

func TestHandleCommand_SelectAndRun(t *testing.T) {
	s, notes, rec := newTestScheduler(t)

	reply := s.HandleCommand(context.Background(), "/run")
	assert.Equal(t, "⚠️ please select start and end dates", reply)
	assert.Empty(t, notes.sent)

	reply = s.HandleCommand(context.Background(), "/select 2005-03-10")
	assert.Contains(t, reply, "Selected date: 10.03.2005")
	reply = s.HandleCommand(context.Background(), "/select 2005-03-07")
	assert.Contains(t, reply, "Selected period: 07.03.2005 → 10.03.2005")
	assert.Contains(t, reply, "Interval: 15 min | Window: 09:30-16:00 (auto)")

	// The selection is persisted for the CLI.
	st := s.Sessions.State()
	assert.Equal(t, "2005-03-07", st.StartDate.String())

	assert.Equal(t, "", s.HandleCommand(context.Background(), "/run"))
	require.Len(t, notes.sent, 1)
	assert.Equal(t, model.LevelSuccess, notes.sent[0].Level)

	runs, err := rec.RecentRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	reply = s.HandleCommand(context.Background(), "/history")
	assert.Contains(t, reply, "[demo] 2005-03-07 → 2005-03-10 15min")
}

func TestHandleCommand_Misc(t *testing.T) {
	s, _, _ := newTestScheduler(t)

	assert.Equal(t, "Usage: /select YYYY-MM-DD", s.HandleCommand(context.Background(), "/select"))
	assert.Contains(t, s.HandleCommand(context.Background(), "/select someday"), "malformed date")
	assert.Contains(t, s.HandleCommand(context.Background(), "/reset"), "Select dates in the calendar")
	assert.Equal(t, helpText, s.HandleCommand(context.Background(), "hello"))
	assert.True(t, strings.HasPrefix(s.HandleCommand(context.Background(), "/status"), "📅"))
}

func TestWatchTask(t *testing.T) {
	s, notes, _ := newTestScheduler(t)
	s.RunNow()
	assert.Empty(t, notes.sent, "nothing selected, nothing sent")

	_, err := s.Controller.ClickDate("2005-03-07")
	require.NoError(t, err)
	_, err = s.Controller.ClickDate("2005-03-08")
	require.NoError(t, err)
	s.RunNow()
	require.Len(t, notes.sent, 1)
	assert.Equal(t, model.LevelSuccess, notes.sent[0].Level)
	assert.Equal(t, controller.Summary(s.Controller.Selection()), "Selected period: 07.03.2005 → 08.03.2005")
}
