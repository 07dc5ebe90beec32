package models

// PricePoint is one daily close. Timestamp is milliseconds since epoch (UTC).
type PricePoint struct {
	Timestamp int64
	Close     float64
}

// HistorySource tells where a price history came from.
type HistorySource string

const (
	SourceLive     HistorySource = "binance"
	SourceFallback HistorySource = "synthetic"
)

// FetchResult is the outcome of one history fetch: either live candles or the
// synthetic fallback series.
type FetchResult struct {
	Source HistorySource
	Points []PricePoint
}

// IsFallback reports whether the synthetic series was used.
func (r FetchResult) IsFallback() bool { return r.Source == SourceFallback }

// Closes extracts close prices in order.
func Closes(points []PricePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Close
	}
	return out
}
