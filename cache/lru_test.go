package cache

import (
	"errors"
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100)
	if c.Capacity() != 100 {
		t.Errorf("expected capacity 100, got %d", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
	if got := New[string, int](0).Capacity(); got != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, got)
	}
}

func TestGetSet(t *testing.T) {
	c := New[string, int](10)
	c.Set("key1", 42)

	val, ok := c.Get("key1")
	if !ok || val != 42 {
		t.Errorf("Get(key1) = %d, %v, want 42, true", val, ok)
	}
	if _, ok := c.Get("nonexistent"); ok {
		t.Error("expected nonexistent key to not exist")
	}

	c.Set("key1", 7)
	if val, _ := c.Get("key1"); val != 7 {
		t.Errorf("expected updated value 7, got %d", val)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry after update, got %d", c.Len())
	}
}

func TestEviction(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // b is now the oldest
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to survive", k)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("expected 1 eviction, got %d", got)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](10)
	calls := 0
	create := func() (int, error) {
		calls++
		return 100, nil
	}

	for i := 0; i < 3; i++ {
		val, err := c.GetOrCreate("key1", create)
		if err != nil || val != 100 {
			t.Fatalf("GetOrCreate() = %d, %v", val, err)
		}
	}
	if calls != 1 {
		t.Errorf("expected create called once, got %d", calls)
	}
}

func TestGetOrCreateErrorNotCached(t *testing.T) {
	c := New[string, int](10)
	boom := errors.New("boom")

	if _, err := c.GetOrCreate("k", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("failed create was cached")
	}
	val, err := c.GetOrCreate("k", func() (int, error) { return 5, nil })
	if err != nil || val != 5 {
		t.Errorf("GetOrCreate() after error = %d, %v", val, err)
	}
}

func TestDeleteClear(t *testing.T) {
	c := New[string, int](10)
	c.Set("key1", 1)
	c.Set("key2", 2)

	if !c.Delete("key1") {
		t.Error("expected Delete to return true for existing key")
	}
	if c.Delete("key1") {
		t.Error("expected Delete to return false for missing key")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Len())
	}
	c.Set("key3", 3)
	if _, ok := c.Get("key3"); !ok {
		t.Error("cache unusable after Clear")
	}
}

func TestStats(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Len != 1 || s.Capacity != 10 {
		t.Errorf("unexpected stats %+v", s)
	}
	if got, want := s.HitRate(), 2.0/3.0; got != want {
		t.Errorf("HitRate() = %v, want %v", got, want)
	}

	c.ResetStats()
	if s := c.Stats(); s.Hits != 0 || s.Misses != 0 || s.HitRate() != 0 {
		t.Errorf("stats not reset: %+v", s)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[string, int](50)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa(i % 80)
				_, _ = c.GetOrCreate(key, func() (int, error) { return i, nil })
				c.Get(strconv.Itoa(g))
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("cache grew past capacity: %d", c.Len())
	}
}
