// Package chart turns analysis results into chart datasets and renders them.
package chart

import (
	"TradingAssistant/internal/model"
)

// Dataset labels.
const (
	ModelLabel      = "Model"
	HistoricalLabel = "Historical data"
)

// Point is one candlestick in chart form. X is the candle time in epoch
// milliseconds.
type Point struct {
	X int64   `json:"x"`
	O float64 `json:"o"`
	H float64 `json:"h"`
	L float64 `json:"l"`
	C float64 `json:"c"`
}

// Colors picks the candle color by direction.
type Colors struct {
	Up        string `json:"up"`
	Down      string `json:"down"`
	Unchanged string `json:"unchanged"`
}

// Dataset is a labelled candle series with its styling.
type Dataset struct {
	Label           string  `json:"label"`
	Data            []Point `json:"data"`
	Color           Colors  `json:"color"`
	BorderColor     string  `json:"borderColor"`
	BorderWidth     float64 `json:"borderWidth"`
	BackgroundColor string  `json:"backgroundColor"`
}

// TimeAxis is the x axis: one tick per day.
type TimeAxis struct {
	Type          string `json:"type"`
	Unit          string `json:"unit"`
	DisplayFormat string `json:"displayFormat"`
}

// PriceAxis is the y axis.
type PriceAxis struct {
	Position   string `json:"position"`
	Title      string `json:"title"`
	TickPrefix string `json:"tickPrefix"`
	TickDigits int    `json:"tickDigits"`
}

// Config is the full candlestick chart description.
type Config struct {
	Type     string    `json:"type"`
	Datasets []Dataset `json:"datasets"`
	X        TimeAxis  `json:"x"`
	Y        PriceAxis `json:"y"`
}

// BuildConfig converts an analysis result into a two-dataset candlestick
// chart. The model series is drawn solid, the historical one faded.
func BuildConfig(resp *model.AnalysisResponse) Config {
	return Config{
		Type: "candlestick",
		Datasets: []Dataset{
			{
				Label: ModelLabel,
				Data:  points(resp.ModelCandles),
				Color: Colors{
					Up:        "#71BC78",
					Down:      "#dc3545",
					Unchanged: "#6c757d",
				},
				BorderColor:     "#71BC78",
				BorderWidth:     1,
				BackgroundColor: "rgba(113, 188, 120, 0.1)",
			},
			{
				Label: HistoricalLabel,
				Data:  points(resp.HistoricalCandles),
				Color: Colors{
					Up:        "rgba(113, 188, 120, 0.3)",
					Down:      "rgba(220, 53, 69, 0.3)",
					Unchanged: "rgba(108, 117, 125, 0.3)",
				},
				BorderColor:     "rgba(113, 188, 120, 0.5)",
				BorderWidth:     0.5,
				BackgroundColor: "rgba(113, 188, 120, 0.05)",
			},
		},
		X: TimeAxis{Type: "time", Unit: "day", DisplayFormat: "dd.MM.yy"},
		Y: PriceAxis{Position: "left", Title: "Price ($)", TickPrefix: "$", TickDigits: 2},
	}
}

func points(candles []model.Candle) []Point {
	out := make([]Point, len(candles))
	for i, c := range candles {
		out[i] = Point{X: c.Time.UnixMilli(), O: c.Open, H: c.High, L: c.Low, C: c.Close}
	}
	return out
}

// Tooltip returns the hover lines for a point of the named dataset.
func Tooltip(label string, p Point) []string {
	return []string{
		label,
		"Open: " + model.FormatPrice(p.O),
		"High: " + model.FormatPrice(p.H),
		"Low: " + model.FormatPrice(p.L),
		"Close: " + model.FormatPrice(p.C),
	}
}
