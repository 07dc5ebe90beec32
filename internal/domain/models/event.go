package models

import "time"

// Event kinds published after successful operations.
const (
	EventForecast     = "forecast.generated"
	EventStrategyEval = "strategy.evaluated"
	EventShareCreated = "share.created"
)

// Event is an audit record of a completed API operation.
type Event struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	Symbol     string         `json:"symbol"`
	OccurredAt time.Time      `json:"occurred_at"`
	Attrs      map[string]any `json:"attrs,omitempty"`
}
