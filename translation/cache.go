package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"surveytranslator/config"

	"github.com/redis/go-redis/v9"
)

// CacheConfig configures the Redis connection and entry lifetime for the
// translation cache.
type CacheConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	TTL      time.Duration
}

// Cached decorates a Service with a Redis lookaside cache. Survey
// uploads repeat questions across batches, so both call legs are cached
// independently under hashed keys. Redis failures are transparent: the
// wrapped service is consulted and the miss is simply not stored.
type Cached struct {
	next   Service
	client *redis.Client
	ttl    time.Duration
}

// NewCached wraps next with a cache.
func NewCached(next Service, cfg CacheConfig) *Cached {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Cached{
		next: next,
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: cfg.TTL,
	}
}

// NewCachedFromEnv builds the cache from REDIS_ADDR, REDIS_PASS,
// REDIS_DB and CACHE_TTL_SECONDS.
func NewCachedFromEnv(next Service) *Cached {
	cfg := CacheConfig{
		Addr:     config.GetEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       config.GetEnvIntOrDefault("REDIS_DB", 0),
	}
	if secs := config.GetEnvIntOrDefault("CACHE_TTL_SECONDS", 0); secs > 0 {
		cfg.TTL = time.Duration(secs) * time.Second
	}
	return NewCached(next, cfg)
}

func (c *Cached) DetectLanguage(ctx context.Context, text string) (Detection, error) {
	key := cacheKey("detect", text)

	if raw, err := c.client.Get(ctx, key).Result(); err == nil {
		var d Detection
		if json.Unmarshal([]byte(raw), &d) == nil {
			return d, nil
		}
	}

	d, err := c.next.DetectLanguage(ctx, text)
	if err != nil {
		return Detection{}, err
	}

	if b, err := json.Marshal(d); err == nil {
		c.client.Set(ctx, key, b, c.ttl)
	}
	return d, nil
}

func (c *Cached) Translate(ctx context.Context, text string) (string, error) {
	key := cacheKey("translate", text)

	if cached, err := c.client.Get(ctx, key).Result(); err == nil {
		return cached, nil
	}

	translated, err := c.next.Translate(ctx, text)
	if err != nil {
		return "", err
	}

	c.client.Set(ctx, key, translated, c.ttl)
	return translated, nil
}

// Close releases the Redis connection.
func (c *Cached) Close() error {
	return c.client.Close()
}

// cacheKey hashes the text so arbitrary question content never appears
// in key space.
func cacheKey(kind, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "survey:" + kind + ":" + hex.EncodeToString(sum[:])
}
