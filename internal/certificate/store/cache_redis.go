package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"ownerverify/internal/certificate/models"
	id "ownerverify/pkg/domain"
)

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "certificate_cache_lookups_total",
	Help: "Certificate hash lookups by cache result (hit, miss, error)",
}, []string{"result"})

const hashKeyPrefix = "cert:hash:"

// HashFinder is the read the cache sits in front of.
type HashFinder interface {
	FindByHash(ctx context.Context, hash string) (*models.Certificate, error)
	FindRevocation(ctx context.Context, certificateID id.CertificateID) (models.Revocation, error)
}

// HashCache is a cache-aside reader for public hash lookups. Redis holds only
// the fields fixed at issuance; revocation state is read from the store on
// every hit, so a stale or surviving entry can never report a revoked
// certificate as live. Concurrent misses for the same hash collapse into one
// store read. Redis failures degrade to direct store reads; a nil client
// disables caching.
type HashCache struct {
	client redis.Cmdable
	finder HashFinder
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func NewHashCache(client *redis.Client, finder HashFinder, ttl time.Duration, logger *slog.Logger) *HashCache {
	var cmd redis.Cmdable
	if client != nil {
		cmd = client
	}
	return newHashCache(cmd, finder, ttl, logger)
}

func newHashCache(client redis.Cmdable, finder HashFinder, ttl time.Duration, logger *slog.Logger) *HashCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HashCache{client: client, finder: finder, ttl: ttl, logger: logger}
}

// FindByHash returns the record with its current revocation state. Validity
// is not cached: callers evaluate it per request.
func (c *HashCache) FindByHash(ctx context.Context, hash string) (*models.Certificate, error) {
	if c.client == nil {
		return c.finder.FindByHash(ctx, hash)
	}

	raw, err := c.client.Get(ctx, hashKeyPrefix+hash).Bytes()
	switch {
	case err == nil:
		var cert models.Certificate
		if jsonErr := json.Unmarshal(raw, &cert); jsonErr == nil {
			cacheLookups.WithLabelValues("hit").Inc()
			revocation, err := c.finder.FindRevocation(ctx, cert.ID)
			if err != nil {
				return nil, err
			}
			cert.ApplyRevocation(revocation)
			return &cert, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable certificate cache entry", "hash", hash)
	case errors.Is(err, redis.Nil):
		cacheLookups.WithLabelValues("miss").Inc()
	default:
		cacheLookups.WithLabelValues("error").Inc()
		c.logger.WarnContext(ctx, "certificate cache read failed", "error", err)
	}

	v, err, _ := c.group.Do(hash, func() (any, error) {
		cert, err := c.finder.FindByHash(ctx, hash)
		if err != nil {
			return nil, err
		}
		c.store(ctx, hash, cert)
		return cert, nil
	})
	if err != nil {
		return nil, err
	}
	// Shared with other waiters on the same flight.
	cert := *v.(*models.Certificate)
	return &cert, nil
}

func (c *HashCache) store(ctx context.Context, hash string, cert *models.Certificate) {
	b, err := json.Marshal(cert.WithoutRevocation())
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, hashKeyPrefix+hash, b, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "certificate cache write failed", "error", err)
	}
}

// Invalidate drops the cached record. Lookups stay correct when this fails
// because revocation is never served from Redis.
func (c *HashCache) Invalidate(ctx context.Context, hash string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, hashKeyPrefix+hash).Err(); err != nil {
		c.logger.WarnContext(ctx, "certificate cache invalidation failed", "hash", hash, "error", err)
	}
}
