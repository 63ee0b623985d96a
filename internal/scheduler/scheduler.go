package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"TradingAssistant/internal/controller"
	"TradingAssistant/internal/logger"
	"TradingAssistant/internal/notifier"
	"TradingAssistant/internal/recorder"
	"TradingAssistant/internal/session"
)

const helpText = "Available commands:\n" +
	"• /run: analyse the selected period\n" +
	"• /status: show the current selection\n" +
	"• /select YYYY-MM-DD: click a calendar date\n" +
	"• /reset: clear the selection\n" +
	"• /history: list recent runs"

// Scheduler runs the analysis on a cron schedule and serves chat commands
// against the same controller.
type Scheduler struct {
	Cron       *cron.Cron
	Controller *controller.Controller
	Sessions   *session.Manager
	Recorder   recorder.Recorder
	Ctx        context.Context

	log *logger.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, ctl *controller.Controller, sm *session.Manager, rec recorder.Recorder, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Controller: ctl,
		Sessions:   sm,
		Recorder:   rec,
		Ctx:        ctx,
		log:        log.Named("scheduler"),
	}
}

// RegisterAll registers the periodic analysis task.
func (s *Scheduler) RegisterAll(watchCron string) error {
	if _, err := s.Cron.AddFunc(watchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", zap.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunNow executes the watch task immediately.
func (s *Scheduler) RunNow() {
	s.watchTask()
}

func (s *Scheduler) watchTask() {
	s.log.Info("running watch task")
	_, err := s.Controller.RunAnalysis(s.Ctx)
	switch {
	case err == nil:
	case errors.Is(err, controller.ErrInvalidRange), errors.Is(err, controller.ErrBusy):
		s.log.Warn("watch task skipped", zap.Error(err))
	default:
		// Already notified by the controller.
		s.log.Error("watch task failed", zap.Error(err))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	name, arg, _ := strings.Cut(strings.TrimSpace(command), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/run":
		_, err := s.Controller.RunAnalysis(ctx)
		if errors.Is(err, controller.ErrInvalidRange) || errors.Is(err, controller.ErrBusy) {
			return "⚠️ " + err.Error()
		}
		// Results and failures are delivered by the notifier.
		return ""
	case "/status":
		return s.status()
	case "/select":
		if arg == "" {
			return "Usage: /select YYYY-MM-DD"
		}
		if _, err := s.Controller.ClickDate(arg); err != nil {
			return "⚠️ " + err.Error()
		}
		s.persist()
		return s.status()
	case "/reset":
		s.Controller.ResetSelection()
		s.persist()
		return s.status()
	case "/history":
		runs, err := s.Recorder.RecentRuns(5)
		if err != nil {
			s.log.Error("load run history", zap.Error(err))
			return "⚠️ history unavailable"
		}
		return notifier.FormatRunHistory(runs)
	default:
		return helpText
	}
}

func (s *Scheduler) status() string {
	st := s.Controller.Status()
	text := notifier.FormatStatus(st.Summary, s.Sessions.State().UpdatedAt)
	w := st.Window
	text += fmt.Sprintf("Interval: %s | Window: %s-%s", st.Interval.Label(), w.Start, w.End)
	if w.Auto {
		text += " (auto)"
	}
	if st.Busy {
		text += "\n⏳ analysis running"
	}
	return text
}

func (s *Scheduler) persist() {
	if err := s.Sessions.Save(s.Controller.Snapshot()); err != nil {
		s.log.Error("save session", zap.Error(err))
	}
}
