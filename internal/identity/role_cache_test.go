package identity

import (
	"errors"
	"testing"
	"time"
)

func TestRoleCacheCachesWithinTTL(t *testing.T) {
	calls := 0
	cache := NewRoleCache(func(userID uint) (string, error) {
		calls++
		return RoleOwner, nil
	}, 5*time.Minute)

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.WithClock(func() time.Time { return current })

	for i := 0; i < 3; i++ {
		role, err := cache.Role(1)
		if err != nil {
			t.Fatalf("role lookup failed: %v", err)
		}
		if role != RoleOwner {
			t.Fatalf("expected owner, got %s", role)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single provider call within the TTL, got %d", calls)
	}
}

func TestRoleCacheExpires(t *testing.T) {
	calls := 0
	cache := NewRoleCache(func(userID uint) (string, error) {
		calls++
		return RoleOwner, nil
	}, 5*time.Minute)

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.WithClock(func() time.Time { return current })

	if _, err := cache.Role(1); err != nil {
		t.Fatalf("role lookup failed: %v", err)
	}

	current = current.Add(6 * time.Minute)
	if _, err := cache.Role(1); err != nil {
		t.Fatalf("role lookup failed: %v", err)
	}

	if calls != 2 {
		t.Fatalf("expected a refresh after the TTL, got %d calls", calls)
	}
}

func TestRoleCacheInvalidate(t *testing.T) {
	calls := 0
	cache := NewRoleCache(func(userID uint) (string, error) {
		calls++
		return RoleOwner, nil
	}, 5*time.Minute)

	if _, err := cache.Role(1); err != nil {
		t.Fatalf("role lookup failed: %v", err)
	}
	cache.Invalidate(1)
	if _, err := cache.Role(1); err != nil {
		t.Fatalf("role lookup failed: %v", err)
	}

	if calls != 2 {
		t.Fatalf("expected invalidation to force a provider call, got %d", calls)
	}
}

func TestRoleCachePropagatesLookupError(t *testing.T) {
	providerDown := errors.New("provider unavailable")
	cache := NewRoleCache(func(userID uint) (string, error) {
		return "", providerDown
	}, 5*time.Minute)

	if _, err := cache.Role(1); !errors.Is(err, providerDown) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestRoleCacheIsolatesUsers(t *testing.T) {
	cache := NewRoleCache(func(userID uint) (string, error) {
		if userID == 2 {
			return "viewer", nil
		}
		return RoleOwner, nil
	}, 5*time.Minute)

	role, err := cache.Role(1)
	if err != nil || role != RoleOwner {
		t.Fatalf("expected owner for user 1, got %s (%v)", role, err)
	}
	role, err = cache.Role(2)
	if err != nil || role != "viewer" {
		t.Fatalf("expected viewer for user 2, got %s (%v)", role, err)
	}
}
