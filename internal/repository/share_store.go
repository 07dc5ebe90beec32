package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"LipeCore/internal/domain/models"
	"LipeCore/internal/domain/repository"
	pkgcache "LipeCore/pkg/cache"
)

const (
	shareKeyPrefix = "share"
	// minShareTTL keeps already-expired records readable long enough for the
	// registry to observe and delete them.
	minShareTTL = time.Second
)

// CacheShareStore keeps share records in a pkg/cache backend (memory or Redis).
type CacheShareStore struct {
	cache pkgcache.Service
	now   func() time.Time
}

// NewCacheShareStore wraps a cache backend. A nil clock uses time.Now.
func NewCacheShareStore(c pkgcache.Service, now func() time.Time) *CacheShareStore {
	if now == nil {
		now = time.Now
	}
	return &CacheShareStore{cache: c, now: now}
}

func (s *CacheShareStore) Put(ctx context.Context, rec models.ShareRecord) error {
	ttl := rec.ExpiresAt.Sub(s.now())
	if ttl < minShareTTL {
		ttl = minShareTTL
	}
	err := s.cache.Set(ctx, shareKey(rec.Token), rec, ttl)
	if errors.Is(err, pkgcache.ErrCacheFull) {
		return repository.ErrShareStoreFull
	}
	if err != nil {
		return fmt.Errorf("put share %s: %w", rec.Token, err)
	}
	return nil
}

func (s *CacheShareStore) Get(ctx context.Context, token string) (models.ShareRecord, bool, error) {
	var rec models.ShareRecord
	err := s.cache.Get(ctx, shareKey(token), &rec)
	if errors.Is(err, pkgcache.ErrCacheMiss) {
		return models.ShareRecord{}, false, nil
	}
	if err != nil {
		return models.ShareRecord{}, false, fmt.Errorf("get share %s: %w", token, err)
	}
	return rec, true, nil
}

func (s *CacheShareStore) Delete(ctx context.Context, token string) error {
	if err := s.cache.Delete(ctx, shareKey(token)); err != nil {
		return fmt.Errorf("delete share %s: %w", token, err)
	}
	return nil
}

func (s *CacheShareStore) Close() error { return s.cache.Close() }

func shareKey(token string) string { return pkgcache.GenerateKey(shareKeyPrefix, token) }

var _ repository.ShareStore = (*CacheShareStore)(nil)
