package model

// Action is the summary recommendation derived from an analysis result.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Text returns the user facing description of the action.
func (a Action) Text() string {
	switch a {
	case ActionBuy:
		return "Noticeable growth"
	case ActionSell:
		return "Noticeable decline"
	case ActionHold:
		return "Neither buy nor sell"
	default:
		return "Something went wrong"
	}
}

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string
	RawScore   float64
	Weight     float64
	Weighted   float64
	Commentary string
}

// ActionTier maps a total score range to an action.
type ActionTier struct {
	Label  string
	Action Action
}

// Signal is the final output of the strategy engine.
type Signal struct {
	Factors    []FactorScore
	TotalScore float64
	Tier       ActionTier
	WarningMsg string
}
