package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dante4567/openwebui-sub000/internal/cache"
)

// Pinger measures upstream reachability; both upstream clients implement it.
type Pinger interface {
	Ping(ctx context.Context) (time.Duration, error)
}

// HealthReporter aggregates upstream latency, auth mode and cache counters
// into the /health payload.
type HealthReporter struct {
	service     string
	authEnabled bool
	pinger      Pinger
	cache       *cache.Manager
	log         *slog.Logger
}

// NewHealthReporter creates a HealthReporter for the named service.
func NewHealthReporter(service string, authEnabled bool, pinger Pinger, c *cache.Manager, log *slog.Logger) *HealthReporter {
	if log == nil {
		log = slog.Default()
	}
	return &HealthReporter{service: service, authEnabled: authEnabled, pinger: pinger, cache: c, log: log}
}

// Health is the /health response body.
type Health struct {
	Status    string         `json:"status"`
	Service   string         `json:"service"`
	Auth      string         `json:"auth"`
	Upstream  UpstreamHealth `json:"upstream"`
	Cache     CacheHealth    `json:"cache"`
	Timestamp time.Time      `json:"timestamp"`
}

// UpstreamHealth describes one probe of the upstream API.
type UpstreamHealth struct {
	Status    string  `json:"status"`
	LatencyMs float64 `json:"latency_ms"`
}

// CacheHealth is the cache counter snapshot plus the configured TTL.
type CacheHealth struct {
	Entries    int     `json:"entries"`
	TTLSeconds float64 `json:"ttl_seconds"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRate    float64 `json:"hit_rate"`
}

const pingTimeout = 5 * time.Second

// Report probes the upstream and snapshots the cache. A failing upstream
// degrades the status; it never errors.
func (h *HealthReporter) Report(ctx context.Context) Health {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	upstream := UpstreamHealth{Status: "ok"}
	latency, err := h.pinger.Ping(pingCtx)
	upstream.LatencyMs = float64(latency.Microseconds()) / 1000
	status := "healthy"
	if err != nil {
		h.log.Warn("upstream health probe failed", "service", h.service, "error", err)
		upstream.Status = "unreachable"
		status = "degraded"
	}

	stats := h.cache.Stats(ctx)
	authMode := "disabled"
	if h.authEnabled {
		authMode = "enabled"
	}

	return Health{
		Status:   status,
		Service:  h.service,
		Auth:     authMode,
		Upstream: upstream,
		Cache: CacheHealth{
			Entries:    stats.Entries,
			TTLSeconds: h.cache.TTL().Seconds(),
			Hits:       stats.Hits,
			Misses:     stats.Misses,
			HitRate:    stats.HitRate,
		},
		Timestamp: time.Now().UTC(),
	}
}
