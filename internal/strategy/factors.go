package strategy

import (
	"fmt"

	"TradingAssistant/internal/calculator"
	"TradingAssistant/internal/model"
)

// scoreModelDrift compares the modelled close with the last real close.
// Weight: 0.60
func scoreModelDrift(ind *model.SeriesIndicators) model.FactorScore {
	if ind.LastClose == 0 {
		return model.FactorScore{Name: "Model drift", Weight: 0.60, Commentary: "no historical close"}
	}
	drift := calculator.Drift(ind.ModelLastClose, ind.LastClose)

	var score float64
	switch {
	case drift >= 5:
		score = 2.0
	case drift >= 2:
		score = 1.5
	case drift >= 1:
		score = 1.0
	case drift > -1:
		score = 0
	case drift > -2:
		score = -1.0
	case drift > -5:
		score = -1.5
	default:
		score = -2.0
	}

	return model.FactorScore{
		Name:       "Model drift",
		RawScore:   score,
		Weight:     0.60,
		Weighted:   score * 0.60,
		Commentary: fmt.Sprintf("drift %+.1f%%", drift),
	}
}

// scoreRSI scores the RSI(14) of the historical series.
// Weight: 0.20
func scoreRSI(ind *model.SeriesIndicators) model.FactorScore {
	rsi := ind.RSI14
	var score float64
	switch {
	case rsi <= 25:
		score = 2.0
	case rsi <= 35:
		score = 1.0
	case rsi <= 45:
		score = 0.5
	case rsi <= 55:
		score = 0
	case rsi <= 65:
		score = -0.5
	case rsi <= 75:
		score = -1.0
	default:
		score = -2.0
	}

	return model.FactorScore{
		Name:       "RSI",
		RawScore:   score,
		Weight:     0.20,
		Weighted:   score * 0.20,
		Commentary: fmt.Sprintf("RSI=%.0f", rsi),
	}
}

// scoreSMADeviation scores how far the last close sits from SMA20.
// Weight: 0.20
func scoreSMADeviation(ind *model.SeriesIndicators) model.FactorScore {
	if ind.SMA20 == 0 {
		return model.FactorScore{Name: "SMA20 deviation", Weight: 0.20, Commentary: "SMA20 unavailable"}
	}
	deviation := calculator.Drift(ind.LastClose, ind.SMA20)

	var score float64
	switch {
	case deviation <= -10:
		score = 2.0
	case deviation <= -5:
		score = 1.0
	case deviation <= -2:
		score = 0.5
	case deviation < 2:
		score = 0
	case deviation < 5:
		score = -0.5
	case deviation < 10:
		score = -1.0
	default:
		score = -2.0
	}

	return model.FactorScore{
		Name:       "SMA20 deviation",
		RawScore:   score,
		Weight:     0.20,
		Weighted:   score * 0.20,
		Commentary: fmt.Sprintf("deviation %+.1f%%", deviation),
	}
}
