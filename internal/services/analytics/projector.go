package analytics

import (
	"fmt"
	"math"

	"LipeCore/internal/domain/models"
	domsvc "LipeCore/internal/domain/service"
	"LipeCore/internal/services/features"
	"LipeCore/pkg/util"
)

const (
	driftLongWindow  = 60
	driftShortWindow = 20
	shortWindowVol   = 0.02 // used when the short window is flat
	bandZ            = 1.28 // 80% gaussian interval
)

// GaussianWalk compounds a constant drift forward and widens a symmetric band with sqrt(t).
type GaussianWalk struct {
	long, short int
	z           float64
}

func NewGaussianWalk() *GaussianWalk {
	return &GaussianWalk{long: driftLongWindow, short: driftShortWindow, z: bandZ}
}

// Estimate returns drift and volatility from the trailing window: the long window
// when enough returns exist, otherwise the short one.
func (g *GaussianWalk) Estimate(returns []float64) (mu, vol float64, err error) {
	if len(returns) >= g.long {
		w := features.Tail(returns, g.long)
		return features.Mean(w), features.PStdev(w), nil
	}
	w := features.Tail(returns, g.short)
	if len(w) == 0 {
		return 0, 0, fmt.Errorf("drift window: %w", ErrInsufficientHistory)
	}
	vol = features.PStdev(w)
	if vol == 0 {
		vol = shortWindowVol
	}
	return features.Mean(w), vol, nil
}

// Project produces one point per day after last. Horizon is trusted.
func (g *GaussianWalk) Project(last models.PricePoint, returns []float64, horizon int) ([]models.ForecastPoint, error) {
	mu, vol, err := g.Estimate(returns)
	if err != nil {
		return nil, err
	}
	out := make([]models.ForecastPoint, 0, max(horizon, 0))
	price := last.Close
	for d := 1; d <= horizon; d++ {
		price *= 1 + mu
		band := g.z * vol * math.Sqrt(float64(d))
		out = append(out, models.ForecastPoint{
			TS:   util.FormatMillis(last.Timestamp + int64(d)*util.DayMillis),
			YHat: price,
			Q10:  price * (1 - band),
			Q90:  price * (1 + band),
		})
	}
	return out, nil
}

var _ domsvc.PathProjector = (*GaussianWalk)(nil)
