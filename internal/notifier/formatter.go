package notifier

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"TradingAssistant/internal/calculator"
	"TradingAssistant/internal/model"
	"TradingAssistant/internal/recorder"
)

// FormatNotification renders a notification as a Telegram HTML message.
func FormatNotification(n model.Notification) string {
	var icon string
	switch n.Level {
	case model.LevelSuccess:
		icon = "✅"
	case model.LevelError:
		icon = "❌"
	default:
		icon = "ℹ️"
	}
	msg := fmt.Sprintf("%s %s", icon, escapeHTML(n.Message))
	if n.Report != "" {
		msg += "\n\n" + n.Report
	}
	return msg
}

// FormatAnalysisReport formats an analysis result and its signal.
func FormatAnalysisReport(resp *model.AnalysisResponse, ind *model.SeriesIndicators, signal *model.Signal) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>TradingAssistant analysis</b> | %s → %s\n\n", resp.Period.Start, resp.Period.End))
	b.WriteString(fmt.Sprintf("Model candles: %d | Historical candles: %d\n", resp.ModelCount, resp.HistoricalCount))

	if ind != nil {
		b.WriteString(fmt.Sprintf("Last close: %s | Model close: %s (%+.1f%%)\n",
			model.FormatPrice(ind.LastClose), model.FormatPrice(ind.ModelLastClose),
			calculator.Drift(ind.ModelLastClose, ind.LastClose)))
		b.WriteString(fmt.Sprintf("Range: %s .. %s | SMA20: %s | RSI14: %.0f\n\n",
			model.FormatPrice(ind.Low), model.FormatPrice(ind.High),
			model.FormatPrice(ind.SMA20), ind.RSI14))
	}

	if signal != nil {
		b.WriteString("📈 <b>Factors:</b>\n")
		for _, f := range signal.Factors {
			b.WriteString(fmt.Sprintf("  %s(%s): %+.1f (×%.2f) = %+.3f\n",
				f.Name, f.Commentary, f.RawScore, f.Weight, f.Weighted))
		}
		b.WriteString("  ─────────────────\n")
		b.WriteString(fmt.Sprintf("  Total: %+.3f\n\n", signal.TotalScore))
		b.WriteString(fmt.Sprintf("💡 <b>Action:</b> %s, %s (%s)\n",
			signal.Tier.Action, signal.Tier.Action.Text(), signal.Tier.Label))
		if signal.WarningMsg != "" {
			b.WriteString(fmt.Sprintf("\n⚠️ %s\n", escapeHTML(signal.WarningMsg)))
		}
	}

	return b.String()
}

// FormatRunHistory lists recorded runs, newest first.
func FormatRunHistory(runs []recorder.Run) string {
	if len(runs) == 0 {
		return "No analysis runs recorded yet"
	}
	var b strings.Builder
	b.WriteString("🗂 <b>Recent runs</b>\n\n")
	for _, r := range runs {
		status := "ok"
		if !r.Success {
			status = "failed: " + escapeHTML(r.Error)
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s → %s %s",
			r.Timestamp.Format("2006-01-02 15:04"), r.Source, r.StartDate, r.EndDate, r.Interval))
		if r.Action != "" {
			b.WriteString(" " + r.Action)
		}
		b.WriteString(" (" + status + ")\n")
	}
	return b.String()
}

// FormatStatus formats the controller summary line and when it was saved.
func FormatStatus(summary string, updatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("📅 <b>Status</b>\n\n")
	b.WriteString(escapeHTML(summary))
	b.WriteString("\n")
	if !updatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Updated: %s\n", updatedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }

var htmlTag = regexp.MustCompile(`</?[a-z]+>`)

// StripHTML removes the tags the formatters emit and undoes escaping,
// for plain text channels.
func StripHTML(s string) string {
	s = htmlTag.ReplaceAllString(s, "")
	return strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&").Replace(s)
}
