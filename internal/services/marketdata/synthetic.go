package marketdata

import (
	"math"
	"strings"
	"time"

	"LipeCore/internal/domain/models"
	"LipeCore/pkg/util"
)

const (
	btcBasePrice     = 30000.0
	defaultBasePrice = 2000.0
)

// SyntheticSource generates a deterministic oscillating daily series.
// Points are anchored to the start of the current UTC day so repeated calls
// within a day return identical series.
type SyntheticSource struct {
	now func() time.Time
}

func NewSyntheticSource(now func() time.Time) *SyntheticSource {
	if now == nil {
		now = time.Now
	}
	return &SyntheticSource{now: now}
}

// DailyCloses returns exactly limit points, oldest first.
func (s *SyntheticSource) DailyCloses(symbol string, limit int) []models.PricePoint {
	if limit <= 0 {
		return nil
	}
	base := basePrice(symbol)
	anchor := util.StartOfDayUTC(s.now()).UnixMilli()
	out := make([]models.PricePoint, limit)
	for i := 0; i < limit; i++ {
		x := float64(i)
		out[i] = models.PricePoint{
			Timestamp: anchor - int64(limit-i)*util.DayMillis,
			Close:     base * (1 + 0.12*math.Sin(x/14) + 0.05*math.Sin(x/5.5)),
		}
	}
	return out
}

func basePrice(symbol string) float64 {
	if strings.HasPrefix(strings.ToUpper(symbol), "BTC") {
		return btcBasePrice
	}
	return defaultBasePrice
}
