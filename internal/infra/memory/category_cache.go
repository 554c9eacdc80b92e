package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"brainblitz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CategorySource lists the provider's category catalog.
type CategorySource interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryCache caches the category catalog with a TTL to avoid hammering
// the provider on every start screen; concurrent misses collapse into one
// upstream call.
type CategoryCache struct {
	source CategorySource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu         sync.RWMutex
	categories []domain.Category
	expiresAt  time.Time
}

func NewCategoryCache(source CategorySource, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CategoryCache) ListCategories(ctx context.Context) ([]domain.Category, error) {
	now := c.clock()

	c.mu.RLock()
	if c.categories != nil && c.expiresAt.After(now) {
		cached := c.categories
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("categories", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.categories != nil && c.expiresAt.After(now) {
			cached := c.categories
			c.mu.RUnlock()
			return cached, nil
		}
		c.mu.RUnlock()

		categories, err := c.source.ListCategories(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.categories = categories
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func (c *CategoryCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
