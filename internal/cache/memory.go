package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/coastwatch/tidecast/internal/models"
)

// Memory is an in-process LRU cache with per-entry expiry. The wall clock
// is a field so tests can drive time directly.
type Memory struct {
	lru *lru.Cache[string, *Entry]
	ttl time.Duration

	Now func() time.Time
}

func NewMemory(size int, ttl time.Duration) (*Memory, error) {
	if size <= 0 {
		size = 128
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	cache, err := lru.New[string, *Entry](size)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	return &Memory{
		lru: cache,
		ttl: ttl,
		Now: time.Now,
	}, nil
}

func (m *Memory) Get(_ context.Context, key string) (*Entry, bool) {
	entry, ok := m.lru.Get(key)
	if !ok {
		return nil, false
	}
	if m.Now().Sub(entry.SavedAt) > m.ttl {
		m.lru.Remove(key)
		return nil, false
	}
	return entry, true
}

func (m *Memory) Set(_ context.Context, key string, events []models.TideEvent, source string) error {
	stored := make([]models.TideEvent, len(events))
	copy(stored, events)
	m.lru.Add(key, &Entry{
		Events:  stored,
		Source:  source,
		SavedAt: m.Now(),
	})
	return nil
}

// Purge removes all entries.
func (m *Memory) Purge() {
	m.lru.Purge()
}
