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
	"LipeCore/pkg/util"
)

const (
	forecastHistoryDays = 300
	seriesTailLen       = 60
)

// ForecastUseCase turns a daily history into signals and a projected path.
type ForecastUseCase struct {
	history   drepo.HistoryProvider
	scorer    domsvc.SignalScorer
	projector domsvc.PathProjector
	events    drepo.EventPublisher
	metrics   drepo.Metrics
	l         *applogger.Logger
}

func NewForecastUseCase(
	history drepo.HistoryProvider,
	scorer domsvc.SignalScorer,
	projector domsvc.PathProjector,
	events drepo.EventPublisher,
	metrics drepo.Metrics,
) *ForecastUseCase {
	return &ForecastUseCase{
		history:   history,
		scorer:    scorer,
		projector: projector,
		events:    events,
		metrics:   metrics,
	}
}

// SetLogger injects a structured logger.
func (u *ForecastUseCase) SetLogger(l *applogger.Logger) { u.l = l }

// Project runs a forecast. horizon is trusted to be within bounds.
func (u *ForecastUseCase) Project(ctx context.Context, arena, symbol string, horizon int) (models.ForecastResult, error) {
	start := time.Now()
	defer func() { u.metrics.RecordLatency("forecast", time.Since(start).Seconds()) }()

	hist, err := u.history.Fetch(ctx, symbol, forecastHistoryDays)
	if err != nil {
		u.metrics.RecordError("forecast")
		return models.ForecastResult{}, fmt.Errorf("fetch history: %w", err)
	}
	if len(hist.Points) == 0 {
		u.metrics.RecordError("forecast")
		return models.ForecastResult{}, fmt.Errorf("fetch history: no points for %s", symbol)
	}

	rets := features.SimpleReturns(models.Closes(hist.Points))
	sig := u.scorer.Score(rets)

	last := hist.Points[len(hist.Points)-1]
	points, err := u.projector.Project(last, rets, horizon)
	if err != nil {
		u.metrics.RecordError("forecast")
		return models.ForecastResult{}, fmt.Errorf("project %s: %w", symbol, err)
	}

	res := models.ForecastResult{
		Meta: map[string]any{
			"arena":        arena,
			"symbol":       symbol,
			"horizon":      horizon,
			"model":        models.ForecastModelID,
			"data_source":  string(hist.Source),
			"generated_at": util.FormatMillis(last.Timestamp),
			"regime":       sig.Regime,
		},
		Metrics:    models.ForecastMetrics{Entropy: sig.Entropy, Edge: sig.Edge},
		Forecast:   models.ForecastSeries{Points: points},
		SeriesTail: tail(hist.Points, seriesTailLen),
	}

	emit(ctx, u.events, u.l, models.EventForecast, symbol, map[string]any{
		"horizon":     horizon,
		"regime":      sig.Regime,
		"data_source": string(hist.Source),
	})
	return res, nil
}

func tail(points []models.PricePoint, n int) []models.TailPoint {
	if len(points) > n {
		points = points[len(points)-n:]
	}
	out := make([]models.TailPoint, len(points))
	for i, p := range points {
		out[i] = models.TailPoint{TS: util.FormatMillis(p.Timestamp), Close: p.Close}
	}
	return out
}
