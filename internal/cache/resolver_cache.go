package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tesseract-hub/storefront-service/internal/models"
)

const (
	// L1 cache (in-memory) TTL
	L1CacheTTL = 2 * time.Minute

	// L2 cache (Redis) TTL
	L2CacheTTL = 15 * time.Minute

	// Redis key prefixes for resolved lookups
	TenantKeyPrefix   = "storefront:tenant:"
	NotFoundKeyPrefix = "storefront:tenant:miss:"
	ThemeKeyPrefix    = "storefront:theme:"

	// Misses are cached briefly so repeated lookups of unknown slugs do
	// not hammer the database.
	NotFoundTTL = 30 * time.Second
)

// L1CacheEntry represents an entry in the L1 cache
type L1CacheEntry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// ResolverCache provides multi-layer caching for tenant and theme lookups.
// Redis is optional; when absent the cache degrades to L1 only.
type ResolverCache struct {
	l1Cache sync.Map

	redisClient  *redis.Client
	redisEnabled bool
}

// NewResolverCache creates a new resolver cache
func NewResolverCache(redisClient *redis.Client) *ResolverCache {
	cache := &ResolverCache{
		redisClient:  redisClient,
		redisEnabled: redisClient != nil,
	}

	go cache.cleanupL1Cache()

	return cache
}

// GetTenant retrieves a cached tenant by lookup key (slug, subdomain or id).
func (c *ResolverCache) GetTenant(ctx context.Context, lookup string) (*models.Tenant, bool) {
	key := TenantKeyPrefix + lookup

	if entry, ok := c.l1Cache.Load(key); ok {
		l1Entry := entry.(L1CacheEntry)
		if time.Now().Before(l1Entry.ExpiresAt) {
			if tenant, ok := l1Entry.Data.(*models.Tenant); ok {
				return tenant, true
			}
		}
		c.l1Cache.Delete(key)
	}

	if c.redisEnabled {
		var tenant models.Tenant
		if c.getFromRedis(ctx, key, &tenant) {
			c.setL1Cache(key, &tenant)
			return &tenant, true
		}
	}

	return nil, false
}

// SetTenant stores a resolved tenant in both cache layers.
func (c *ResolverCache) SetTenant(ctx context.Context, lookup string, tenant *models.Tenant) {
	key := TenantKeyPrefix + lookup
	c.setL1Cache(key, tenant)
	if c.redisEnabled {
		c.setInRedis(ctx, key, tenant, L2CacheTTL)
	}
}

// GetTenantMiss reports whether the lookup key is a known miss.
func (c *ResolverCache) GetTenantMiss(ctx context.Context, lookup string) bool {
	key := NotFoundKeyPrefix + lookup

	if entry, ok := c.l1Cache.Load(key); ok {
		l1Entry := entry.(L1CacheEntry)
		if time.Now().Before(l1Entry.ExpiresAt) {
			return true
		}
		c.l1Cache.Delete(key)
	}

	if c.redisEnabled {
		exists, err := c.redisClient.Exists(ctx, key).Result()
		if err == nil && exists > 0 {
			return true
		}
	}

	return false
}

// SetTenantMiss records that a lookup resolved to no tenant.
func (c *ResolverCache) SetTenantMiss(ctx context.Context, lookup string) {
	key := NotFoundKeyPrefix + lookup
	c.l1Cache.Store(key, L1CacheEntry{Data: true, ExpiresAt: time.Now().Add(NotFoundTTL)})
	if c.redisEnabled {
		c.redisClient.Set(ctx, key, "1", NotFoundTTL)
	}
}

// GetTheme retrieves a cached resolved theme for a tenant.
func (c *ResolverCache) GetTheme(ctx context.Context, tenantID string) (*models.ThemeDocument, bool) {
	key := ThemeKeyPrefix + tenantID

	if entry, ok := c.l1Cache.Load(key); ok {
		l1Entry := entry.(L1CacheEntry)
		if time.Now().Before(l1Entry.ExpiresAt) {
			if doc, ok := l1Entry.Data.(*models.ThemeDocument); ok {
				return doc, true
			}
		}
		c.l1Cache.Delete(key)
	}

	if c.redisEnabled {
		var doc models.ThemeDocument
		if c.getFromRedis(ctx, key, &doc) {
			c.setL1Cache(key, &doc)
			return &doc, true
		}
	}

	return nil, false
}

// SetTheme stores a resolved theme in both cache layers.
func (c *ResolverCache) SetTheme(ctx context.Context, tenantID string, doc *models.ThemeDocument) {
	key := ThemeKeyPrefix + tenantID
	c.setL1Cache(key, doc)
	if c.redisEnabled {
		c.setInRedis(ctx, key, doc, L2CacheTTL)
	}
}

// InvalidateTheme drops the cached theme after a write.
func (c *ResolverCache) InvalidateTheme(ctx context.Context, tenantID string) {
	key := ThemeKeyPrefix + tenantID
	c.l1Cache.Delete(key)
	if c.redisEnabled {
		c.redisClient.Del(ctx, key)
	}
}

// InvalidateTenant drops a cached tenant lookup.
func (c *ResolverCache) InvalidateTenant(ctx context.Context, lookup string) {
	c.l1Cache.Delete(TenantKeyPrefix + lookup)
	c.l1Cache.Delete(NotFoundKeyPrefix + lookup)
	if c.redisEnabled {
		c.redisClient.Del(ctx, TenantKeyPrefix+lookup, NotFoundKeyPrefix+lookup)
	}
}

func (c *ResolverCache) setL1Cache(key string, data interface{}) {
	c.l1Cache.Store(key, L1CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(L1CacheTTL),
	})
}

func (c *ResolverCache) getFromRedis(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false
	}
	return true
}

func (c *ResolverCache) setInRedis(ctx context.Context, key string, data interface{}, ttl time.Duration) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	c.redisClient.Set(ctx, key, jsonData, ttl)
}

// cleanupL1Cache periodically evicts expired L1 entries.
func (c *ResolverCache) cleanupL1Cache() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.l1Cache.Range(func(key, value interface{}) bool {
			if entry, ok := value.(L1CacheEntry); ok {
				if now.After(entry.ExpiresAt) {
					c.l1Cache.Delete(key)
				}
			}
			return true
		})
	}
}
