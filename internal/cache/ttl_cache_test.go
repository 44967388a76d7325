package cache

import (
	"sync"
	"testing"
	"time"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := New[string, int](time.Minute)
	defer c.Close()

	if err := c.Set("a", 1, 0); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit with value 1, got ok=%v v=%v", ok, v)
	}
	if !c.Has("a") {
		t.Fatalf("expected Has to be true")
	}
	if c.Len() != 1 {
		t.Fatalf("expected Len=1, got %d", c.Len())
	}
}

func TestTTLCache_Overwrite(t *testing.T) {
	c := New[string, string](time.Minute)
	defer c.Close()

	_ = c.Set("k", "v1", 0)
	_ = c.Set("k", "v2", 0)
	if v, ok := c.Get("k"); !ok || v != "v2" {
		t.Fatalf("expected v2 after overwrite, got ok=%v v=%q", ok, v)
	}
}

func TestTTLCache_Expiry(t *testing.T) {
	c := New[string, string](time.Minute)
	defer c.Close()

	// Freeze time via the now indirection.
	base := time.Now()
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	_ = c.Set("k", "v", time.Second)
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("expected hit before expiry")
	}

	// Advance time beyond the TTL: the lazy check must report a miss even
	// though the sweeper has not run, and drop the entry.
	base = base.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after expiry")
	}
	if c.Has("k") {
		t.Fatalf("expected Has=false after expiry")
	}
	c.mu.RLock()
	_, stillThere := c.items["k"]
	c.mu.RUnlock()
	if stillThere {
		t.Fatalf("expected expired entry to be removed on Get")
	}
}

func TestTTLCache_PurgeExpired(t *testing.T) {
	c := New[string, int](time.Minute)
	defer c.Close()

	base := time.Now()
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	_ = c.Set("short", 1, time.Second)
	_ = c.Set("long", 2, time.Hour)
	base = base.Add(2 * time.Second)
	c.PurgeExpired()
	if c.Len() != 1 {
		t.Fatalf("expected Len=1 after purge, got %d", c.Len())
	}
	if _, ok := c.Get("long"); !ok {
		t.Fatalf("expected long-lived entry to survive purge")
	}
}

func TestTTLCache_SweeperEvicts(t *testing.T) {
	// Real-time test: 50ms TTL, sweeper runs every 10ms.
	c := New[string, int](50 * time.Millisecond)
	defer c.Close()

	_ = c.Set("k", 1, 0)
	time.Sleep(120 * time.Millisecond)
	c.mu.RLock()
	_, stillThere := c.items["k"]
	c.mu.RUnlock()
	if stillThere {
		t.Fatalf("expected sweeper to evict expired entry")
	}
}

func TestTTLCache_DeleteClear(t *testing.T) {
	c := New[int, int](time.Minute)
	defer c.Close()

	_ = c.Set(1, 10, 0)
	_ = c.Set(2, 20, 0)
	c.Delete(1)
	c.Delete(1) // idempotent
	if _, ok := c.Get(1); ok {
		t.Fatalf("expected key 1 to be deleted")
	}
	if c.Len() != 1 {
		t.Fatalf("expected Len=1, got %d", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("expected Len=0 after Clear, got %d", c.Len())
	}
}

func TestTTLCache_SetAfterClose(t *testing.T) {
	c := New[string, int](time.Minute)
	_ = c.Set("k", 1, 0)
	c.Close()
	c.Close() // idempotent

	if err := c.Set("x", 2, 0); err == nil {
		t.Fatalf("expected error setting on closed cache")
	}
	// Reads still serve what remains.
	if v, ok := c.Get("k"); !ok || v != 1 {
		t.Fatalf("expected read to keep working after Close")
	}
}

func TestTTLCache_Concurrent(t *testing.T) {
	c := New[int, int](time.Minute)
	defer c.Close()

	keys := 100
	rounds := 200
	var wg sync.WaitGroup
	for i := 0; i < keys; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				_ = c.Set(i, r, 0)
				_, _ = c.Get(i)
			}
		}()
	}
	wg.Wait()
	for i := 0; i < keys; i++ {
		if _, ok := c.Get(i); !ok {
			t.Fatalf("expected key %d to be present", i)
		}
	}
}
