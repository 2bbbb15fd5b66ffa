package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/civicflow/civic-portal/internal/api/metrics"
	"github.com/civicflow/civic-portal/internal/core/domain"
	"github.com/civicflow/civic-portal/internal/core/ports"
)

const defaultProfileTTL = 2 * time.Minute

// ProfileCache stores resolved identities keyed by a hash of their bearer
// token, so per-request session hydration usually skips the backend round
// trip. Entries are short-lived and the logout path deletes them eagerly:
// otherwise a replayed cookie would stay authenticated until the TTL ran out.
// Key format: profile:<sha256(token)>
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
// If ttl <= 0, a short default is used.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

// Get returns the cached identity for token, or nil on a miss.
func (p *ProfileCache) Get(ctx context.Context, token string) (*domain.Identity, error) {
	raw, err := p.client.Get(ctx, p.key(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var id domain.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, fmt.Errorf("profile cache decode: %w", err)
	}
	return &id, nil
}

// Set caches the identity under its token (expires after the TTL). The
// token itself is never stored, only its hash.
func (p *ProfileCache) Set(ctx context.Context, token string, id *domain.Identity) error {
	cp := *id
	cp.Token = ""
	raw, err := json.Marshal(&cp)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return p.client.Set(ctx, p.key(token), raw, p.ttl).Err()
}

// Delete drops the cached identity for token. A missing key is not an error.
func (p *ProfileCache) Delete(ctx context.Context, token string) error {
	if err := p.client.Del(ctx, p.key(token)).Err(); err != nil {
		return fmt.Errorf("profile cache delete: %w", err)
	}
	return nil
}

func (p *ProfileCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "profile:" + hex.EncodeToString(sum[:])
}

// CachedAuthAPI decorates a ports.AuthAPI with the profile cache. Only
// Profile is intercepted; Login primes the cache so the very next request
// hydrates without touching the backend. Cache failures degrade to the
// backend call — never to an error.
type CachedAuthAPI struct {
	inner ports.AuthAPI
	cache *ProfileCache
	log   zerolog.Logger
}

// NewCachedAuthAPI wraps inner with cache.
func NewCachedAuthAPI(inner ports.AuthAPI, cache *ProfileCache, log zerolog.Logger) *CachedAuthAPI {
	return &CachedAuthAPI{inner: inner, cache: cache, log: log}
}

func (c *CachedAuthAPI) Login(ctx context.Context, creds ports.Credentials) (*domain.Identity, error) {
	id, err := c.inner.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if cacheErr := c.cache.Set(ctx, id.Token, id); cacheErr != nil {
		c.log.Warn().Err(cacheErr).Msg("failed to prime profile cache")
	}
	return id, nil
}

func (c *CachedAuthAPI) Register(ctx context.Context, reg ports.Registration) error {
	return c.inner.Register(ctx, reg)
}

// InvalidateProfile evicts the cached identity for token. Best-effort: an
// eviction failure is logged, and the short TTL bounds the damage.
func (c *CachedAuthAPI) InvalidateProfile(ctx context.Context, token string) {
	if err := c.cache.Delete(ctx, token); err != nil {
		c.log.Warn().Err(err).Msg("failed to evict cached profile")
	}
}

func (c *CachedAuthAPI) Profile(ctx context.Context, token string) (*domain.Identity, error) {
	cached, err := c.cache.Get(ctx, token)
	if err != nil {
		c.log.Warn().Err(err).Msg("profile cache lookup failed")
	}
	if cached != nil {
		metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()

	id, err := c.inner.Profile(ctx, token)
	if err != nil {
		return nil, err
	}
	if cacheErr := c.cache.Set(ctx, token, id); cacheErr != nil {
		c.log.Warn().Err(cacheErr).Msg("failed to fill profile cache")
	}
	return id, nil
}
