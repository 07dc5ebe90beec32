package repository

import (
	"context"
	"errors"

	"LipeCore/internal/domain/models"
)

// HistoryProvider supplies daily close series for a symbol.
type HistoryProvider interface {
	// FetchDailyHistory returns limit ascending daily closes. Upstream failures
	// degrade to synthetic data and are not reported as errors.
	FetchDailyHistory(ctx context.Context, symbol string, limit int) ([]models.PricePoint, error)
	// Fetch is FetchDailyHistory with the source of the data attached.
	Fetch(ctx context.Context, symbol string, limit int) (models.FetchResult, error)
}

// ErrShareStoreFull is returned by ShareStore.Put when no capacity is left for a new record.
var ErrShareStoreFull = errors.New("share store full")

// ShareStore persists share records. Expiry is enforced by the caller.
type ShareStore interface {
	Put(ctx context.Context, rec models.ShareRecord) error
	Get(ctx context.Context, token string) (models.ShareRecord, bool, error)
	Delete(ctx context.Context, token string) error
	Close() error
}

// EventPublisher emits audit events for completed operations.
type EventPublisher interface {
	Publish(ctx context.Context, ev models.Event) error
	Close() error
}

type Metrics interface {
	RecordHistoryFetch(source string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordShare(op string)
}
