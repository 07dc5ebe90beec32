package service

import "LipeCore/internal/domain/models"

// SignalScorer derives entropy, edge and regime from a return series.
type SignalScorer interface {
	Score(returns []float64) models.Signals
}

// PathProjector projects a forward price path from the last observed close.
type PathProjector interface {
	Project(last models.PricePoint, returns []float64, horizon int) ([]models.ForecastPoint, error)
}

// Backtester replays a rule set over a price series.
type Backtester interface {
	Run(points []models.PricePoint, sig models.Signals, spec models.StrategySpec) models.StrategyResult
}
