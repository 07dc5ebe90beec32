package analytics

import (
	"fmt"
	"math"

	"LipeCore/internal/domain/models"
	domsvc "LipeCore/internal/domain/service"
	"LipeCore/pkg/util"
)

// DrawdownSignal selects what a "drawdown" rule is compared against.
type DrawdownSignal string

const (
	// DrawdownFromEntropy compares drawdown rules against entropy (legacy behaviour).
	DrawdownFromEntropy DrawdownSignal = "entropy"
	// DrawdownRunning compares against 1 - equity/peak as of the start of the day.
	DrawdownRunning DrawdownSignal = "running"
)

// ParseDrawdownSignal validates a config value; empty means entropy.
func ParseDrawdownSignal(s string) (DrawdownSignal, error) {
	switch DrawdownSignal(s) {
	case "", DrawdownFromEntropy:
		return DrawdownFromEntropy, nil
	case DrawdownRunning:
		return DrawdownRunning, nil
	default:
		return "", fmt.Errorf("unknown drawdown signal %q", s)
	}
}

// BacktestOption configures RuleBacktester.
type BacktestOption func(*RuleBacktester)

// WithDrawdownSignal sets the drawdown rule source.
func WithDrawdownSignal(d DrawdownSignal) BacktestOption {
	return func(b *RuleBacktester) {
		b.drawdown = d
	}
}

// RuleBacktester replays a single long/flat position. Entry and exit are decided by
// rules evaluated against constant signals for the whole window.
type RuleBacktester struct {
	drawdown DrawdownSignal
}

func NewRuleBacktester(opts ...BacktestOption) *RuleBacktester {
	b := &RuleBacktester{drawdown: DrawdownFromEntropy}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DrawdownMode reports the configured drawdown source.
func (b *RuleBacktester) DrawdownMode() DrawdownSignal { return b.drawdown }

func (b *RuleBacktester) Run(points []models.PricePoint, sig models.Signals, spec models.StrategySpec) models.StrategyResult {
	curve := make([]models.EquityPoint, 0, max(len(points)-1, 0))
	var (
		inPos  bool
		entry  float64
		trades int
		wins   int
		equity = 1.0
		peak   = 1.0
		minEq  = math.Inf(1)
	)

	for i := 1; i < len(points); i++ {
		dd := 1 - equity/math.Max(peak, stdevEpsilon)
		if !inPos && b.allMatch(spec.Enter, sig, dd) {
			inPos = true
			entry = points[i].Close
			trades++
		} else if inPos && b.anyMatch(spec.Exit, sig, dd) {
			inPos = false
			if points[i].Close > entry {
				wins++
			}
		}
		if inPos {
			equity *= points[i].Close / points[i-1].Close
		}
		peak = math.Max(peak, equity)
		minEq = math.Min(minEq, equity)
		curve = append(curve, models.EquityPoint{
			TS:     util.FormatMillis(points[i].Timestamp),
			Equity: equity,
		})
	}

	var m models.StrategyMetrics
	m.Trades = trades
	if trades > 0 {
		m.HitRate = float64(wins) / float64(trades)
	}
	if len(curve) > 0 {
		m.ROI = curve[len(curve)-1].Equity - 1
		m.MaxDD = 1 - minEq/math.Max(peak, stdevEpsilon)
	}
	return models.StrategyResult{Metrics: m, EquityCurve: curve}
}

// allMatch is false for an empty rule set: no rules never opens a position.
func (b *RuleBacktester) allMatch(rules []models.Rule, sig models.Signals, dd float64) bool {
	if len(rules) == 0 {
		return false
	}
	for _, r := range rules {
		if !r.Eval(b.signal(r.Field, sig, dd)) {
			return false
		}
	}
	return true
}

func (b *RuleBacktester) anyMatch(rules []models.Rule, sig models.Signals, dd float64) bool {
	for _, r := range rules {
		if r.Eval(b.signal(r.Field, sig, dd)) {
			return true
		}
	}
	return false
}

func (b *RuleBacktester) signal(field string, sig models.Signals, dd float64) float64 {
	switch field {
	case models.FieldEdge:
		return sig.Edge
	case models.FieldDrawdown:
		if b.drawdown == DrawdownRunning {
			return dd
		}
	}
	return sig.Entropy
}

var _ domsvc.Backtester = (*RuleBacktester)(nil)
