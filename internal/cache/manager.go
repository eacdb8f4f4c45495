// Package cache provides the TTL response cache shared by both tool servers.
//
// Entries are keyed by endpoint name plus sorted query parameters so that
// parameter order never splits the cache. Expiry is lazy: entries are checked
// against their deadline on read. The backing store is either an in-process
// map or Redis; a failing store degrades to "always miss" and logs, it never
// fails the request.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"sort"
	"sync/atomic"
	"time"
)

// Store is the backing key/value storage. Implementations own their
// synchronization; Get returning ok=false is a miss.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
	Len(ctx context.Context) (int, error)
}

// Manager fronts a Store with hit/miss accounting and JSON encoding.
// Safe for concurrent use.
type Manager struct {
	store Store
	ttl   time.Duration
	log   *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats is the snapshot returned by health endpoints.
type Stats struct {
	Entries int     `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// DefaultTTL is used when NewManager gets a non-positive ttl.
const DefaultTTL = 60 * time.Second

// NewManager creates a Manager over store. If store is nil an in-process
// memory store is used.
func NewManager(store Store, ttl time.Duration, log *slog.Logger) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Manager{store: store, ttl: ttl, log: log}
}

// TTL returns the configured entry lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Key builds a deterministic cache key from an endpoint name and its
// normalized parameters. Parameters are sorted so that equivalent queries
// share one entry; empty values are dropped.
func Key(endpoint string, params map[string]string) string {
	if len(params) == 0 {
		return endpoint
	}
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return endpoint
	}
	sort.Strings(keys)
	q := make(url.Values, len(keys))
	for _, k := range keys {
		q.Set(k, params[k])
	}
	return endpoint + "?" + q.Encode()
}

// GetJSON reads key into dest. Returns false on miss, expiry, store failure
// or undecodable payload.
func (m *Manager) GetJSON(ctx context.Context, key string, dest any) bool {
	b, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.degraded("get", key, err)
		m.misses.Add(1)
		return false
	}
	if !ok {
		m.misses.Add(1)
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		m.log.Warn("cache entry undecodable, treating as miss", "key", key, "error", err)
		m.misses.Add(1)
		return false
	}
	m.hits.Add(1)
	return true
}

// SetJSON stores v under key with the manager TTL. Failures are logged and
// swallowed.
func (m *Manager) SetJSON(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		m.log.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := m.store.Set(ctx, key, b, m.ttl); err != nil {
		m.degraded("set", key, err)
	}
}

// InvalidatePrefix drops every entry whose key starts with prefix. Called
// after mutations so list reads do not serve stale data for a full TTL.
func (m *Manager) InvalidatePrefix(ctx context.Context, prefix string) {
	if err := m.store.DeletePrefix(ctx, prefix); err != nil {
		m.degraded("invalidate", prefix, err)
	}
}

// Stats returns the current counters. A failing store reports zero entries.
func (m *Manager) Stats(ctx context.Context) Stats {
	entries, err := m.store.Len(ctx)
	if err != nil {
		m.degraded("len", "", err)
		entries = 0
	}
	hits := m.hits.Load()
	misses := m.misses.Load()
	s := Stats{Entries: entries, Hits: hits, Misses: misses}
	if total := hits + misses; total > 0 {
		s.HitRate = float64(hits) / float64(total)
	}
	return s
}

func (m *Manager) degraded(op, key string, err error) {
	m.log.Warn("cache degraded, proceeding without it", "op", op, "key", key, "error", err)
}
