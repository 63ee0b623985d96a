package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"

	"TradingAssistant/internal/model"
)

var (
	modelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#71BC78"))
	historicalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d"))
	legendStyle     = lipgloss.NewStyle().Bold(true)
)

// TerminalView draws the close prices of both series as braille lines.
type TerminalView struct {
	Out    io.Writer
	Width  int
	Height int
}

func (v *TerminalView) Render(resp *model.AnalysisResponse) error {
	s, err := Draw(resp, v.Width, v.Height)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(v.Out, s)
	return err
}

// Draw renders the chart to a string. Width and height default to 80x20.
func Draw(resp *model.AnalysisResponse, width, height int) (string, error) {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 20
	}
	hist := resp.HistoricalCandles
	mod := resp.ModelCandles
	n := max(len(hist), len(mod))
	if n == 0 {
		return "", errors.New("chart: no candles to draw")
	}

	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	for _, series := range [][]model.Candle{hist, mod} {
		for _, c := range series {
			minPrice = math.Min(minPrice, c.Close)
			maxPrice = math.Max(maxPrice, c.Close)
		}
	}
	margin := (maxPrice - minPrice) * 0.05
	if margin == 0 {
		margin = math.Max(maxPrice*0.01, 1)
	}

	labels := hist
	if len(mod) > len(hist) {
		labels = mod
	}
	xLabel := func(_ int, value float64) string {
		idx := int(math.Round(value))
		if idx < 0 || idx >= len(labels) {
			return ""
		}
		return labels[idx].Time.Format("02.01.06")
	}
	yLabel := func(_ int, value float64) string {
		return model.FormatPrice(value)
	}

	lc := linechart.New(width, height,
		0, math.Max(float64(n-1), 1),
		minPrice-margin, maxPrice+margin,
		linechart.WithXYSteps(4, 5),
		linechart.WithXLabelFormatter(xLabel),
		linechart.WithYLabelFormatter(yLabel),
		linechart.WithStyles(lipgloss.Style{}, lipgloss.Style{}, historicalStyle),
	)

	drawSeries(&lc, hist, historicalStyle)
	drawSeries(&lc, mod, modelStyle)
	lc.DrawXYAxisAndLabel()

	var b strings.Builder
	b.WriteString(legendStyle.Render(fmt.Sprintf("%s %s → %s", "Close prices", resp.Period.Start, resp.Period.End)))
	b.WriteString("\n")
	b.WriteString(modelStyle.Render("━ " + ModelLabel))
	b.WriteString("  ")
	b.WriteString(historicalStyle.Render("━ " + HistoricalLabel))
	b.WriteString("\n")
	b.WriteString(lc.View())
	return b.String(), nil
}

func drawSeries(lc *linechart.Model, candles []model.Candle, style lipgloss.Style) {
	if len(candles) == 1 {
		p := canvas.Float64Point{X: 0, Y: candles[0].Close}
		lc.DrawBrailleLineWithStyle(p, p, style)
		return
	}
	for i := 0; i < len(candles)-1; i++ {
		p1 := canvas.Float64Point{X: float64(i), Y: candles[i].Close}
		p2 := canvas.Float64Point{X: float64(i + 1), Y: candles[i+1].Close}
		lc.DrawBrailleLineWithStyle(p1, p2, style)
	}
}
