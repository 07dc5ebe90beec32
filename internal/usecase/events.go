package usecase

import (
	"context"
	"time"

	"LipeCore/internal/domain/models"
	drepo "LipeCore/internal/domain/repository"
	applogger "LipeCore/pkg/logger"

	"github.com/google/uuid"
)

// emit publishes an audit event. Failures are logged and never returned.
func emit(ctx context.Context, pub drepo.EventPublisher, l *applogger.Logger, kind, symbol string, attrs map[string]any) {
	if pub == nil {
		return
	}
	ev := models.Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		Symbol:     symbol,
		OccurredAt: time.Now().UTC(),
		Attrs:      attrs,
	}
	if err := pub.Publish(ctx, ev); err != nil && l != nil {
		l.Warn("event publish failed",
			applogger.String("kind", kind),
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
	}
}
