package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"TradingAssistant/internal/chart"
	"TradingAssistant/internal/client"
	"TradingAssistant/internal/config"
	"TradingAssistant/internal/controller"
	"TradingAssistant/internal/demo"
	"TradingAssistant/internal/logger"
	"TradingAssistant/internal/notifier"
	"TradingAssistant/internal/recorder"
	"TradingAssistant/internal/session"
)

var (
	cfgFile  string
	source   string
	noChart  bool
	reports  bool
	chartOut string
)

// app bundles everything a command needs.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	ctl      *controller.Controller
	sessions *session.Manager
	rec      recorder.Recorder
	telegram *notifier.TelegramNotifier
}

var a = &app{}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func main() {
	root := &cobra.Command{
		Use:           "assistant",
		Short:         "Trading assistant: pick a period, run the analysis, read the signal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			// First start: show the month the data begins in.
			if a.sessions.State().Year == 0 {
				if _, err := a.ctl.Bootstrap(cmd.Context()); err == nil {
					return a.persist()
				}
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigPath(), "path to config file")
	root.PersistentFlags().StringVar(&source, "source", "", "data source override: demo or live")
	root.PersistentFlags().BoolVar(&noChart, "no-chart", false, "do not draw the chart in the terminal")
	root.PersistentFlags().BoolVar(&reports, "report", true, "print the analysis report after a run")
	root.PersistentFlags().StringVar(&chartOut, "chart-file", "", "write the chart config as JSON to this file")

	root.AddCommand(
		selectCmd(),
		resetCmd(),
		monthCmd(),
		yearCmd(),
		intervalCmd(),
		timeCmd(),
		statusCmd(),
		datesCmd(),
		runCmd(),
		historyCmd(),
		watchCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) init() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if source != "" {
		cfg.Source = source
	}
	if chartOut != "" {
		cfg.Session.ChartFile = chartOut
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	a.cfg = cfg

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, DevMode: cfg.Log.Dev, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = log

	analyzer, err := a.newAnalyzer()
	if err != nil {
		return err
	}
	log.Info("data source", zap.String("source", analyzer.Name()))

	a.rec = a.newRecorder()

	sm, err := session.NewManager(cfg.Session.StateFile, log)
	if err != nil {
		return fmt.Errorf("init session: %w", err)
	}
	a.sessions = sm

	notifiers := notifier.Multi{notifier.NewConsoleNotifier(os.Stdout, reports)}
	if cfg.TelegramEnabled() {
		a.telegram = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		notifiers = append(notifiers, a.telegram)
	}

	var views chart.MultiView
	if !noChart {
		views = append(views, &chart.TerminalView{Out: os.Stdout})
	}
	if cfg.Session.ChartFile != "" {
		views = append(views, &chart.JSONView{Path: cfg.Session.ChartFile})
	}

	ctl, err := controller.New(controller.Options{
		Analyzer: analyzer,
		View:     views,
		Notifier: notifiers,
		Recorder: a.rec,
		Logger:   log,
		MinYear:  cfg.Calendar.MinYear,
		MaxYear:  cfg.Calendar.MaxYear,
	})
	if err != nil {
		return fmt.Errorf("init controller: %w", err)
	}
	if err := ctl.Restore(sm.State()); err != nil {
		log.Warn("ignoring stored session", zap.Error(err))
	}
	a.ctl = ctl
	return nil
}

func (a *app) newAnalyzer() (controller.Analyzer, error) {
	if a.cfg.Source == config.SourceLive {
		c, err := client.New(client.Options{
			BaseURL:  a.cfg.API.BaseURL,
			APIKey:   a.cfg.API.APIKey,
			ProxyURL: a.cfg.Proxy,
			Timeout:  a.cfg.API.Timeout,
			Logger:   a.log,
		})
		if err != nil {
			return nil, fmt.Errorf("init api client: %w", err)
		}
		return c, nil
	}
	return demo.New(demo.Options{
		Latency:    a.cfg.Demo.Latency,
		MaxCandles: a.cfg.Demo.MaxCandles,
		Seed:       a.cfg.Demo.Seed,
		MinDate:    a.cfg.Demo.MinDate,
		MaxDate:    a.cfg.Demo.MaxDate,
		Logger:     a.log,
	}), nil
}

func (a *app) newRecorder() recorder.Recorder {
	if a.cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(a.cfg.Database.SQLitePath, a.log)
	if err != nil {
		a.log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	return sr
}

// persist writes the controller state back to the session file.
func (a *app) persist() error {
	if err := a.sessions.Save(a.ctl.Snapshot()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *app) close() {
	if a.rec != nil {
		if err := a.rec.Close(); err != nil && a.log != nil {
			a.log.Warn("close recorder", zap.Error(err))
		}
	}
	if a.log != nil {
		a.log.Sync()
	}
}
