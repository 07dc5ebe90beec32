package marketdata

import (
	"context"
	"errors"
	"fmt"
	"math"

	"LipeCore/internal/domain/models"
	domrepo "LipeCore/internal/domain/repository"
	applogger "LipeCore/pkg/logger"
)

// LiveSource fetches real daily candles.
type LiveSource interface {
	DailyCloses(ctx context.Context, symbol string, limit int) ([]models.PricePoint, error)
}

// Provider serves daily history from a live source, degrading to synthetic data on any failure.
type Provider struct {
	live    LiveSource
	synth   *SyntheticSource
	metrics domrepo.Metrics
	l       *applogger.Logger
}

// NewProvider builds a provider. A nil live source always uses the synthetic series.
func NewProvider(live LiveSource, synth *SyntheticSource, metrics domrepo.Metrics) *Provider {
	return &Provider{live: live, synth: synth, metrics: metrics}
}

// SetLogger injects a structured logger.
func (p *Provider) SetLogger(l *applogger.Logger) { p.l = l }

func (p *Provider) Fetch(ctx context.Context, symbol string, limit int) (models.FetchResult, error) {
	if limit <= 0 {
		return models.FetchResult{}, fmt.Errorf("fetch history: limit must be positive, got %d", limit)
	}
	res := p.fetch(ctx, symbol, limit)
	if p.metrics != nil {
		p.metrics.RecordHistoryFetch(string(res.Source))
		// synthetic series accept any symbol; only live ones are labelled
		if n := len(res.Points); n > 0 && res.Source == models.SourceLive {
			p.metrics.RecordLastPrice(NormalizeSymbol(symbol), res.Points[n-1].Close)
		}
	}
	return res, nil
}

func (p *Provider) FetchDailyHistory(ctx context.Context, symbol string, limit int) ([]models.PricePoint, error) {
	res, err := p.Fetch(ctx, symbol, limit)
	if err != nil {
		return nil, err
	}
	return res.Points, nil
}

// fetch makes the single live attempt and decides between live and fallback data.
func (p *Provider) fetch(ctx context.Context, symbol string, limit int) models.FetchResult {
	if p.live == nil {
		return models.FetchResult{Source: models.SourceFallback, Points: p.synth.DailyCloses(symbol, limit)}
	}
	pts, err := p.live.DailyCloses(ctx, symbol, limit)
	if err == nil {
		return models.FetchResult{Source: models.SourceLive, Points: pts}
	}
	if p.l != nil {
		p.l.Warn("live history unavailable, using synthetic series",
			applogger.String("symbol", symbol),
			applogger.Int("limit", limit),
			applogger.Error(err),
		)
	}
	if p.metrics != nil {
		p.metrics.RecordError("history_upstream")
	}
	return models.FetchResult{Source: models.SourceFallback, Points: p.synth.DailyCloses(symbol, limit)}
}

var errEmptySeries = errors.New("empty series")

// validateSeries checks positive finite closes with strictly ascending timestamps.
func validateSeries(pts []models.PricePoint) error {
	if len(pts) == 0 {
		return errEmptySeries
	}
	for i, p := range pts {
		if p.Close <= 0 || math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			return fmt.Errorf("invalid close %v at %d", p.Close, i)
		}
		if i > 0 && p.Timestamp <= pts[i-1].Timestamp {
			return fmt.Errorf("timestamps not ascending at %d", i)
		}
	}
	return nil
}

var _ domrepo.HistoryProvider = (*Provider)(nil)
