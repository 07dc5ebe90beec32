package models

// Rule fields understood by the backtester.
const (
	FieldEdge     = "edge"
	FieldEntropy  = "entropy"
	FieldDrawdown = "drawdown"
)

// Rule operators.
const (
	OpGTE = ">="
	OpLTE = "<="
)

// Rule is a single threshold comparison against a signal.
type Rule struct {
	Field string  `json:"field"`
	Op    string  `json:"op"`
	Value float64 `json:"value"`
}

// Eval compares v against the rule threshold. Unknown operators never match.
func (r Rule) Eval(v float64) bool {
	switch r.Op {
	case OpGTE:
		return v >= r.Value
	case OpLTE:
		return v <= r.Value
	default:
		return false
	}
}

// StrategySpec describes a long/flat rule set. Enter rules are ANDed, exit rules ORed.
type StrategySpec struct {
	Arena        string
	Symbol       string
	Horizon      int
	LookbackDays int
	Enter        []Rule
	Exit         []Rule
}

// EquityPoint is the equity value at the close of one day.
type EquityPoint struct {
	TS     string  `json:"ts"`
	Equity float64 `json:"equity"`
}

// StrategyMetrics summarizes a backtest.
type StrategyMetrics struct {
	HitRate float64 `json:"HitRate"`
	ROI     float64 `json:"ROI"`
	MaxDD   float64 `json:"MaxDD"`
	Trades  int     `json:"Trades"`
}

// StrategyResult is the output of a backtest.
type StrategyResult struct {
	Metrics     StrategyMetrics `json:"metrics"`
	EquityCurve []EquityPoint   `json:"equity_curve"`
}
