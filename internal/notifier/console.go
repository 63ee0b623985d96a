package notifier

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"TradingAssistant/internal/model"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#71BC78"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc3545"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B9BD5"))
)

// ConsoleNotifier prints one styled line per notification, followed by the
// report when there is one.
type ConsoleNotifier struct {
	mu      sync.Mutex
	out     io.Writer
	reports bool
}

// NewConsoleNotifier writes to out. When reports is false only the headline
// is printed.
func NewConsoleNotifier(out io.Writer, reports bool) *ConsoleNotifier {
	return &ConsoleNotifier{out: out, reports: reports}
}

func (c *ConsoleNotifier) Notify(_ context.Context, n model.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var line string
	switch n.Level {
	case model.LevelSuccess:
		line = successStyle.Render("✔ " + n.Message)
	case model.LevelError:
		line = errorStyle.Render("✖ " + n.Message)
	default:
		line = infoStyle.Render("• " + n.Message)
	}
	if _, err := fmt.Fprintln(c.out, line); err != nil {
		return fmt.Errorf("console notify: %w", err)
	}
	if c.reports && n.Report != "" {
		if _, err := fmt.Fprintln(c.out, StripHTML(n.Report)); err != nil {
			return fmt.Errorf("console notify: %w", err)
		}
	}
	return nil
}
