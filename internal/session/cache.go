// Package session holds the process-wide cache of the resolved admin
// identity. The authorization gate is the cache's sole writer; components
// that need "is an admin signed in" read it through Current or Watch instead
// of a session-store round trip per render.
package session

import (
	"sync"
	"time"

	"github.com/gracechapel/content-api/internal/core/domain"
)

const defaultTTL = 5 * time.Minute

// Event is broadcast to watchers whenever the cached identity changes.
// Identity is nil when the slot was cleared.
type Event struct {
	Identity *domain.AdminIdentity
}

// Cache is an explicitly-invalidated read-through cache with a staleness
// window: an entry older than the TTL is reported stale and the caller is
// expected to re-resolve the session.
type Cache struct {
	mu         sync.Mutex
	identity   *domain.AdminIdentity
	resolvedAt time.Time
	ttl        time.Duration
	watchers   map[int]chan Event
	nextWatch  int
}

// NewCache creates a Cache with the given staleness window. A non-positive
// ttl falls back to defaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{ttl: ttl, watchers: make(map[int]chan Event)}
}

// Put stores the resolved identity and notifies watchers.
func (c *Cache) Put(id *domain.AdminIdentity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clone := *id
	c.identity = &clone
	c.resolvedAt = time.Now()
	c.broadcast(Event{Identity: &clone})
}

// Clear empties the slot and notifies watchers.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return
	}
	c.identity = nil
	c.resolvedAt = time.Time{}
	c.broadcast(Event{})
}

// Current returns the cached identity. The second return is false when the
// slot is empty or the entry has outlived the staleness window.
func (c *Cache) Current() (*domain.AdminIdentity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil || time.Since(c.resolvedAt) > c.ttl {
		return nil, false
	}
	clone := *c.identity
	return &clone, true
}

// Watch registers an observer. The returned cancel func must be called when
// the observer is done; events are dropped rather than block a slow watcher.
func (c *Cache) Watch() (<-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextWatch
	c.nextWatch++
	ch := make(chan Event, 8)
	c.watchers[id] = ch
	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.watchers[id]; ok {
			delete(c.watchers, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (c *Cache) broadcast(ev Event) {
	for _, ch := range c.watchers {
		select {
		case ch <- ev:
		default:
		}
	}
}
