package usecase

import (
	"context"
	"fmt"
	"time"

	"LipeCore/internal/domain/models"
	drepo "LipeCore/internal/domain/repository"
	domsvc "LipeCore/internal/domain/service"
	"LipeCore/internal/services/features"
	applogger "LipeCore/pkg/logger"
)

// strategyWarmupDays is fetched on top of the lookback window.
const strategyWarmupDays = 30

// StrategyUseCase backtests a rule set against recent daily history.
type StrategyUseCase struct {
	history    drepo.HistoryProvider
	scorer     domsvc.SignalScorer
	backtester domsvc.Backtester
	events     drepo.EventPublisher
	metrics    drepo.Metrics
	l          *applogger.Logger
}

func NewStrategyUseCase(
	history drepo.HistoryProvider,
	scorer domsvc.SignalScorer,
	backtester domsvc.Backtester,
	events drepo.EventPublisher,
	metrics drepo.Metrics,
) *StrategyUseCase {
	return &StrategyUseCase{
		history:    history,
		scorer:     scorer,
		backtester: backtester,
		events:     events,
		metrics:    metrics,
	}
}

// SetLogger injects a structured logger.
func (u *StrategyUseCase) SetLogger(l *applogger.Logger) { u.l = l }

// Evaluate fetches lookback+30 days, scores the whole window once and replays the rules.
func (u *StrategyUseCase) Evaluate(ctx context.Context, spec models.StrategySpec) (models.StrategyResult, error) {
	start := time.Now()
	defer func() { u.metrics.RecordLatency("strategy_eval", time.Since(start).Seconds()) }()

	points, err := u.history.FetchDailyHistory(ctx, spec.Symbol, spec.LookbackDays+strategyWarmupDays)
	if err != nil {
		u.metrics.RecordError("strategy_eval")
		return models.StrategyResult{}, fmt.Errorf("fetch history: %w", err)
	}

	sig := u.scorer.Score(features.SimpleReturns(models.Closes(points)))
	res := u.backtester.Run(points, sig, spec)

	emit(ctx, u.events, u.l, models.EventStrategyEval, spec.Symbol, map[string]any{
		"lookback_days": spec.LookbackDays,
		"trades":        res.Metrics.Trades,
		"roi":           res.Metrics.ROI,
	})
	return res, nil
}
