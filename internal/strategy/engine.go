package strategy

import "TradingAssistant/internal/model"

// Tiers maps a total score to an action, highest threshold first.
var Tiers = []struct {
	MinScore float64
	Tier     model.ActionTier
}{
	{1.0, model.ActionTier{Label: "strong growth", Action: model.ActionBuy}},
	{0.5, model.ActionTier{Label: "growth", Action: model.ActionBuy}},
	{-0.49, model.ActionTier{Label: "flat", Action: model.ActionHold}},
	{-1.0, model.ActionTier{Label: "decline", Action: model.ActionSell}},
}

// DefaultTier is the tier for scores below every threshold.
var DefaultTier = model.ActionTier{Label: "strong decline", Action: model.ActionSell}

// mapTier maps a total score to an ActionTier.
func mapTier(totalScore float64) model.ActionTier {
	for _, t := range Tiers {
		if totalScore >= t.MinScore {
			return t.Tier
		}
	}
	return DefaultTier
}

// Evaluate scores the indicators of an analysis result and maps the total to
// an action.
func Evaluate(ind *model.SeriesIndicators) *model.Signal {
	f1 := scoreModelDrift(ind)
	f2 := scoreRSI(ind)
	f3 := scoreSMADeviation(ind)

	factors := []model.FactorScore{f1, f2, f3}
	totalScore := f1.Weighted + f2.Weighted + f3.Weighted

	signal := &model.Signal{
		Factors:    factors,
		TotalScore: totalScore,
		Tier:       mapTier(totalScore),
	}

	switch {
	case ind.RSI14 > 85:
		signal.WarningMsg = "RSI > 85: historical series is overbought"
	case ind.RSI14 < 15:
		signal.WarningMsg = "RSI < 15: historical series is oversold"
	}
	return signal
}
