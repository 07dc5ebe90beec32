package usecase

import (
	"context"
	"errors"
	"sync"

	"LipeCore/internal/domain/models"
)

type fakeHistory struct {
	res       models.FetchResult
	err       error
	lastLimit int
}

func (f *fakeHistory) Fetch(_ context.Context, _ string, limit int) (models.FetchResult, error) {
	f.lastLimit = limit
	return f.res, f.err
}

func (f *fakeHistory) FetchDailyHistory(ctx context.Context, symbol string, limit int) ([]models.PricePoint, error) {
	r, err := f.Fetch(ctx, symbol, limit)
	return r.Points, err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.Event
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, ev models.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Kind
	}
	return out
}

func points(closes ...float64) []models.PricePoint {
	out := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		out[i] = models.PricePoint{Timestamp: 1_704_067_200_000 + int64(i)*86_400_000, Close: c}
	}
	return out
}
