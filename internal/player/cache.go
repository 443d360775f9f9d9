package player

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hollowdeep/garrison/internal/domain"
)

// profileCache fronts profile reads with an expirable LRU. Profiles are
// immutable once created in this service, so entries only leave by TTL or
// eviction and can never go stale.
type profileCache struct {
	lru *expirable.LRU[string, *domain.Profile]
}

// newProfileCache creates a cache holding up to size profiles for ttl.
// A non-positive size disables caching.
func newProfileCache(size int, ttl time.Duration) *profileCache {
	if size <= 0 {
		return &profileCache{}
	}
	return &profileCache{
		lru: expirable.NewLRU[string, *domain.Profile](size, nil, ttl),
	}
}

func (c *profileCache) Get(userID string) (*domain.Profile, bool) {
	if c.lru == nil {
		return nil, false
	}
	return c.lru.Get(userID)
}

func (c *profileCache) Set(userID string, profile *domain.Profile) {
	if c.lru == nil {
		return
	}
	c.lru.Add(userID, profile)
}
