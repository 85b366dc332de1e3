package identity

import (
	"sync"
	"time"
)

// RoleLookup asks the identity provider for a user's current role.
type RoleLookup func(userID uint) (string, error)

type roleEntry struct {
	role      string
	expiresAt time.Time
}

// RoleCache is a short-TTL cache in front of provider role lookups. Expiry is
// checked at lookup time and the cache lives only as long as the handler that
// owns it; there is no global map.
type RoleCache struct {
	lookup RoleLookup
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[uint]roleEntry
}

func NewRoleCache(lookup RoleLookup, ttl time.Duration) *RoleCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RoleCache{
		lookup:  lookup,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uint]roleEntry),
	}
}

// WithClock replaces the clock, used by tests to drive expiry.
func (cache *RoleCache) WithClock(now func() time.Time) *RoleCache {
	cache.now = now
	return cache
}

// Role returns the cached role for the user, refreshing it from the provider
// when the cached value is absent or stale.
func (cache *RoleCache) Role(userID uint) (string, error) {
	now := cache.now()

	cache.mu.Lock()
	entry, found := cache.entries[userID]
	cache.mu.Unlock()

	if found && entry.expiresAt.After(now) {
		return entry.role, nil
	}

	role, err := cache.lookup(userID)
	if err != nil {
		return "", err
	}

	cache.mu.Lock()
	cache.entries[userID] = roleEntry{role: role, expiresAt: now.Add(cache.ttl)}
	cache.mu.Unlock()

	return role, nil
}

// Invalidate drops a user's cached role, forcing the next lookup to hit the
// provider.
func (cache *RoleCache) Invalidate(userID uint) {
	cache.mu.Lock()
	delete(cache.entries, userID)
	cache.mu.Unlock()
}
