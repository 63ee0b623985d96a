package calculator

import (
	"errors"
	"math"

	"TradingAssistant/internal/model"
)

// CalculateRange returns the highest high and lowest low of the series.
func CalculateRange(bars []model.Candle) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// CalculatePosition returns where price sits within [low, high] (0.0~1.0).
func CalculatePosition(price, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (price - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// Indicators computes the summary statistics of an analysis result. Missing
// pieces fall back to neutral values.
func Indicators(historical, modelled []model.Candle) (*model.SeriesIndicators, error) {
	if len(historical) == 0 {
		return nil, errors.New("no historical candles")
	}
	ind := &model.SeriesIndicators{LastClose: historical[len(historical)-1].Close}
	ind.ModelLastClose = ind.LastClose
	if len(modelled) > 0 {
		ind.ModelLastClose = modelled[len(modelled)-1].Close
	}

	if sma, err := CalculateCloseSMA(historical, 20); err == nil {
		ind.SMA20 = sma
	} else {
		ind.SMA20 = ind.LastClose
	}

	rsi, err := CalculateRSI(historical, 14)
	if err != nil {
		rsi = 50
	}
	ind.RSI14 = rsi

	ind.High, ind.Low, _ = CalculateRange(historical)
	if pos, err := CalculatePosition(ind.LastClose, ind.High, ind.Low); err == nil {
		ind.Position = pos
	} else {
		ind.Position = 0.5
	}
	return ind, nil
}
