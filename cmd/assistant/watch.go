package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"TradingAssistant/internal/metrics"
	"TradingAssistant/internal/scheduler"
)

const shutdownTimeout = 5 * time.Second

func watchCmd() *cobra.Command {
	var runNow bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the analysis on a schedule and answer Telegram commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("RUN_ON_START") == "true" {
				runNow = true
			}
			return a.watch(cmd.Context(), runNow)
		},
	}
	cmd.Flags().BoolVar(&runNow, "run-now", false, "run the analysis once right after start")
	return cmd
}

// watch blocks until ctx is cancelled by a signal or a server fails.
func (a *app) watch(ctx context.Context, runNow bool) error {
	metrics.Register()

	sched := scheduler.NewScheduler(ctx, a.ctl, a.sessions, a.rec, a.log)
	if err := sched.RegisterAll(a.cfg.Schedule.WatchCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           newRouter(a.ctl.Busy),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		a.log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if a.telegram != nil {
		g.Go(func() error {
			a.telegram.StartPolling(ctx, sched.HandleCommand)
			return nil
		})
		a.log.Info("telegram polling started")
	}

	if runNow {
		a.log.Info("running the analysis now")
		go sched.RunNow()
	}

	a.log.Info("assistant is watching, press Ctrl+C to stop",
		zap.String("cron", a.cfg.Schedule.WatchCron),
		zap.String("source", a.ctl.Source()),
	)
	err := g.Wait()
	a.log.Info("shutdown complete")
	return err
}

// newRouter serves prometheus metrics and a liveness probe.
func newRouter(busy func() bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if busy() {
			_, _ = w.Write([]byte(`{"status":"ok","analysis":"running"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok","analysis":"idle"}`))
	})
	return r
}
