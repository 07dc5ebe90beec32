package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"LipeCore/internal/domain/models"
	drepo "LipeCore/internal/domain/repository"
	applogger "LipeCore/pkg/logger"

	"github.com/google/uuid"
)

// ErrShareNotFound is returned for unknown and expired tokens alike.
var ErrShareNotFound = errors.New("share not found or expired")

// ShareOption configures ShareRegistry.
type ShareOption func(*ShareRegistry)

// WithShareClock sets the clock used for expiry.
func WithShareClock(now func() time.Time) ShareOption {
	return func(r *ShareRegistry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithTokenGenerator overrides token generation.
func WithTokenGenerator(gen func() string) ShareOption {
	return func(r *ShareRegistry) {
		if gen != nil {
			r.newToken = gen
		}
	}
}

// WithPublicBaseURL makes share URLs absolute.
func WithPublicBaseURL(base string) ShareOption {
	return func(r *ShareRegistry) {
		r.baseURL = strings.TrimRight(base, "/")
	}
}

// ShareRegistry maps opaque tokens to share payloads with lazy expiry.
// All store access happens under mu so check-and-delete is atomic.
type ShareRegistry struct {
	mu       sync.Mutex
	store    drepo.ShareStore
	events   drepo.EventPublisher
	metrics  drepo.Metrics
	now      func() time.Time
	newToken func() string
	baseURL  string
	l        *applogger.Logger
}

func NewShareRegistry(store drepo.ShareStore, events drepo.EventPublisher, metrics drepo.Metrics, opts ...ShareOption) *ShareRegistry {
	r := &ShareRegistry{
		store:    store,
		events:   events,
		metrics:  metrics,
		now:      time.Now,
		newToken: newShareToken,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetLogger injects a structured logger.
func (r *ShareRegistry) SetLogger(l *applogger.Logger) { r.l = l }

// Create stores payload for ttlHours. A ttl of zero or less is already expired.
func (r *ShareRegistry) Create(ctx context.Context, payload models.SharePayload, ttlHours int) (models.ShareLink, error) {
	token := r.newToken()

	r.mu.Lock()
	rec := models.ShareRecord{
		Token:     token,
		Payload:   payload,
		ExpiresAt: r.now().Add(time.Duration(ttlHours) * time.Hour),
	}
	err := r.store.Put(ctx, rec)
	r.mu.Unlock()
	if err != nil {
		r.metrics.RecordError("share_create")
		return models.ShareLink{}, fmt.Errorf("create share: %w", err)
	}
	r.metrics.RecordShare("create")

	emit(ctx, r.events, r.l, models.EventShareCreated, payload.Symbol, map[string]any{
		"ttl_hours": ttlHours,
	})
	return models.ShareLink{
		Token:          token,
		URL:            r.baseURL + "/v1/share/" + token,
		ExpiresInHours: ttlHours,
	}, nil
}

// Get returns the stored payload. Expired records are deleted on read.
func (r *ShareRegistry) Get(ctx context.Context, token string) (models.SharePayload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok, err := r.store.Get(ctx, token)
	if err != nil {
		r.metrics.RecordError("share_get")
		return models.SharePayload{}, fmt.Errorf("get share: %w", err)
	}
	if !ok {
		r.metrics.RecordShare("miss")
		return models.SharePayload{}, ErrShareNotFound
	}
	if rec.Expired(r.now()) {
		if err := r.store.Delete(ctx, token); err != nil && r.l != nil {
			r.l.Warn("expired share delete failed", applogger.String("token", token), applogger.Error(err))
		}
		r.metrics.RecordShare("expired")
		return models.SharePayload{}, ErrShareNotFound
	}
	r.metrics.RecordShare("hit")
	return rec.Payload, nil
}

func newShareToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
