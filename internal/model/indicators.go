package model

// SeriesIndicators holds the statistics computed over an analysis result.
type SeriesIndicators struct {
	LastClose      float64
	ModelLastClose float64
	SMA20          float64
	RSI14          float64
	High           float64
	Low            float64
	Position       float64 // 0.0 ~ 1.0 within [Low, High]
}
