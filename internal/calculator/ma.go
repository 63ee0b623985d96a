package calculator

import (
	"errors"

	"TradingAssistant/internal/model"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateCloseSMA returns the SMA of candle closes, shrinking the period to
// the available bars when the series is short.
func CalculateCloseSMA(candles []model.Candle, period int) (float64, error) {
	if len(candles) == 0 {
		return 0, errors.New("no candles provided")
	}
	if period > len(candles) {
		period = len(candles)
	}
	return CalculateSMA(model.Closes(candles), period)
}

// Drift returns the relative change from base to value in percent.
func Drift(value, base float64) float64 {
	if base == 0 {
		return 0
	}
	return (value - base) / base * 100
}
