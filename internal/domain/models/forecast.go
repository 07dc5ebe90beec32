package models

// ForecastModelID identifies the projection model in forecast metadata.
const ForecastModelID = "lipe.naive_ewma.v1"

// ForecastPoint is one projected day. Invariant: Q10 <= YHat <= Q90.
type ForecastPoint struct {
	TS   string  `json:"ts"`
	YHat float64 `json:"yhat"`
	Q10  float64 `json:"q10"`
	Q90  float64 `json:"q90"`
}

// ForecastSeries wraps projected points for the wire format.
type ForecastSeries struct {
	Points []ForecastPoint `json:"points"`
}

// TailPoint is a historical close rendered for charting.
type TailPoint struct {
	TS    string  `json:"ts"`
	Close float64 `json:"close"`
}

// ForecastMetrics carries the signal readings returned with a forecast.
type ForecastMetrics struct {
	Entropy float64 `json:"entropy"`
	Edge    float64 `json:"edge"`
}

// ForecastResult is the full output of a forecast run.
// Note: Meta is free-form provenance; keys are stable but values are not typed.
type ForecastResult struct {
	Meta       map[string]any  `json:"meta"`
	Metrics    ForecastMetrics `json:"metrics"`
	Forecast   ForecastSeries  `json:"forecast"`
	SeriesTail []TailPoint     `json:"series_tail"`
}
