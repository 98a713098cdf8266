package session

import (
	"testing"
	"time"

	"github.com/gracechapel/content-api/internal/core/domain"
)

func testIdentity() *domain.AdminIdentity {
	return &domain.AdminIdentity{
		ID:          "adm_1",
		Email:       "admin@example.com",
		DisplayName: "Admin One",
		Role:        domain.RoleAdmin,
	}
}

func TestCache_PutThenCurrent(t *testing.T) {
	c := NewCache(time.Minute)

	if _, ok := c.Current(); ok {
		t.Fatal("fresh cache must be empty")
	}

	c.Put(testIdentity())

	got, ok := c.Current()
	if !ok {
		t.Fatal("expected a cached identity")
	}
	if got.Email != "admin@example.com" {
		t.Errorf("unexpected identity: %+v", got)
	}
}

func TestCache_CurrentReturnsCopy(t *testing.T) {
	c := NewCache(time.Minute)
	c.Put(testIdentity())

	first, _ := c.Current()
	first.Role = "mangled"

	second, _ := c.Current()
	if second.Role != domain.RoleAdmin {
		t.Error("mutating a returned identity must not affect the cache")
	}
}

func TestCache_Clear(t *testing.T) {
	c := NewCache(time.Minute)
	c.Put(testIdentity())
	c.Clear()

	if _, ok := c.Current(); ok {
		t.Error("cleared cache must report empty")
	}
}

func TestCache_StaleEntryNotReturned(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	c.Put(testIdentity())

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Current(); ok {
		t.Error("an entry past the staleness window must not be returned")
	}
}

func TestCache_WatchReceivesPutAndClear(t *testing.T) {
	c := NewCache(time.Minute)
	events, cancel := c.Watch()
	defer cancel()

	c.Put(testIdentity())
	c.Clear()

	select {
	case ev := <-events:
		if ev.Identity == nil || ev.Identity.ID != "adm_1" {
			t.Errorf("first event must carry the identity, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the put event")
	}

	select {
	case ev := <-events:
		if ev.Identity != nil {
			t.Errorf("clear event must carry a nil identity, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the clear event")
	}
}

func TestCache_ClearOnEmptyDoesNotNotify(t *testing.T) {
	c := NewCache(time.Minute)
	events, cancel := c.Watch()
	defer cancel()

	c.Clear()

	select {
	case ev := <-events:
		t.Errorf("clearing an empty cache must not broadcast, got %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCache_CancelledWatcherStopsReceiving(t *testing.T) {
	c := NewCache(time.Minute)
	events, cancel := c.Watch()
	cancel()

	c.Put(testIdentity())

	// The channel is closed on cancel; a zero Event and ok=false is all we
	// may observe.
	if ev, ok := <-events; ok && ev.Identity != nil {
		t.Errorf("cancelled watcher must not receive events, got %+v", ev)
	}

	// Cancelling twice must not panic.
	cancel()
}

func TestCache_SlowWatcherDoesNotBlockPut(t *testing.T) {
	c := NewCache(time.Minute)
	_, cancel := c.Watch() // never drained
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			c.Put(testIdentity())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("puts must not block on a slow watcher")
	}
}
