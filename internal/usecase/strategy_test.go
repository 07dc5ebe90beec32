package usecase

import (
	"context"
	"math"
	"testing"

	"LipeCore/internal/domain/models"
	drepo "LipeCore/internal/domain/repository"
	"LipeCore/internal/services/analytics"
	"LipeCore/pkg/metrics"
)

func newStrategy(h *fakeHistory, pub drepo.EventPublisher) *StrategyUseCase {
	return NewStrategyUseCase(h, analytics.NewWindowScorer(), analytics.NewRuleBacktester(), pub, metrics.Noop{})
}

func TestStrategyFetchesLookbackPlusWarmup(t *testing.T) {
	h := &fakeHistory{res: models.FetchResult{Points: points(100, 101, 99, 103)}}
	pub := &recordingPublisher{}
	res, err := newStrategy(h, pub).Evaluate(context.Background(), models.StrategySpec{Symbol: "BTCUSDT", LookbackDays: 180})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if h.lastLimit != 210 {
		t.Fatalf("expected 210 days requested, got %d", h.lastLimit)
	}
	if res.Metrics.Trades != 0 || res.Metrics.ROI != 0 {
		t.Fatalf("empty rules must not trade: %+v", res.Metrics)
	}
	if len(res.EquityCurve) != 3 {
		t.Fatalf("expected 3 equity points, got %d", len(res.EquityCurve))
	}
	if k := pub.kinds(); len(k) != 1 || k[0] != models.EventStrategyEval {
		t.Fatalf("events=%v", k)
	}
}

func TestStrategyAlwaysEnter(t *testing.T) {
	h := &fakeHistory{res: models.FetchResult{Points: points(100, 120, 90, 150)}}
	spec := models.StrategySpec{
		Symbol:       "ETHUSDT",
		LookbackDays: 10,
		Enter:        []models.Rule{{Field: models.FieldEdge, Op: models.OpGTE, Value: -999}},
	}
	res, err := newStrategy(h, nil).Evaluate(context.Background(), spec)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if res.Metrics.Trades != 1 {
		t.Fatalf("trades=%d", res.Metrics.Trades)
	}
	if math.Abs(res.Metrics.ROI-0.5) > 1e-12 {
		t.Fatalf("roi=%v", res.Metrics.ROI)
	}
}
