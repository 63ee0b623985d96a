package controller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"TradingAssistant/internal/calculator"
	"TradingAssistant/internal/metrics"
	"TradingAssistant/internal/model"
	"TradingAssistant/internal/notifier"
	"TradingAssistant/internal/recorder"
	"TradingAssistant/internal/strategy"
)

// RunAnalysis sends the current selection to the analyzer once. It refuses
// to start without a complete range or while another run is in flight.
// Failures are reported through the notifier and never touch the selection.
func (c *Controller) RunAnalysis(ctx context.Context) (*Result, error) {
	req, err := c.Request()
	if err != nil {
		metrics.RejectedRuns.WithLabelValues("range").Inc()
		return nil, err
	}
	if err := req.Window().Validate(); err != nil {
		metrics.RejectedRuns.WithLabelValues("window").Inc()
		return nil, err
	}
	if !c.busy.CompareAndSwap(false, true) {
		metrics.RejectedRuns.WithLabelValues("busy").Inc()
		return nil, ErrBusy
	}
	defer c.busy.Store(false)

	source := c.analyzer.Name()
	log := c.log.With(
		zap.String("source", source),
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate),
		zap.String("interval", string(req.Interval)),
	)
	log.Info("analysis started")

	// Latency needs the monotonic reading of time.Now; c.now only stamps the record.
	start := time.Now()
	resp, err := c.analyzer.Analyze(ctx, req)
	took := time.Since(start)
	metrics.AnalysisLatency.WithLabelValues(source).Observe(took.Seconds())

	run := &recorder.Run{
		Timestamp: c.now(),
		Source:    source,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Interval:  string(req.Interval),
		AutoTime:  req.UseAutoTime,
	}

	if err == nil {
		err = c.view.Render(resp)
		if err != nil {
			log.Error("failed to render chart", zap.Error(err))
		}
	}
	if err != nil {
		metrics.AnalysisRuns.WithLabelValues(source, "error").Inc()
		log.Error("analysis failed", zap.Error(err), zap.Duration("took", took))
		run.Error = err.Error()
		c.record(run)
		c.send(ctx, model.Notification{Level: model.LevelError, Message: msgError + err.Error()})
		return nil, err
	}

	res := &Result{Request: req, Response: resp, Took: took}
	if ind, ierr := calculator.Indicators(resp.HistoricalCandles, resp.ModelCandles); ierr == nil {
		res.Indicators = ind
		res.Signal = strategy.Evaluate(ind)
	} else {
		log.Warn("no indicators for result", zap.Error(ierr))
	}
	res.Report = notifier.FormatAnalysisReport(resp, res.Indicators, res.Signal)

	run.Success = true
	run.ModelCount = resp.ModelCount
	run.HistoricalCount = resp.HistoricalCount
	if res.Signal != nil {
		run.Action = string(res.Signal.Tier.Action)
		run.TotalScore = res.Signal.TotalScore
	}
	c.record(run)

	c.mu.Lock()
	c.last = res
	c.mu.Unlock()

	metrics.AnalysisRuns.WithLabelValues(source, "success").Inc()
	log.Info("analysis finished",
		zap.Int("model_count", resp.ModelCount),
		zap.Int("historical_count", resp.HistoricalCount),
		zap.String("action", run.Action),
		zap.Duration("took", took),
	)

	msg := msgSuccess
	if source == "demo" {
		msg += " (demo)"
	}
	c.send(ctx, model.Notification{Level: model.LevelSuccess, Message: msg, Report: res.Report})
	return res, nil
}

func (c *Controller) record(run *recorder.Run) {
	if err := c.rec.RecordRun(run); err != nil {
		c.log.Error("failed to record run", zap.Error(err))
	}
}

// send delivers a notification. Delivery problems are logged, not returned.
func (c *Controller) send(ctx context.Context, n model.Notification) {
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	if err := c.notify.Notify(ctx, n); err != nil {
		metrics.NotifyErrors.WithLabelValues("all").Inc()
		c.log.Warn("failed to deliver notification", zap.Error(err))
	}
}
