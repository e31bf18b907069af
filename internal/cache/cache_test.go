package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](10)
	c.Set("key1", 42)

	if v, ok := c.Get("key1"); !ok || v != 42 {
		t.Errorf("Get(key1) = %d, %v, want 42, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) found a value")
	}

	c.Set("key1", 7)
	if v, _ := c.Get("key1"); v != 7 {
		t.Errorf("updated value = %d, want 7", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](10)
	calls := 0
	create := func() int {
		calls++
		return 100
	}

	if v := c.GetOrCreate("k", create); v != 100 {
		t.Errorf("first = %d", v)
	}
	if v := c.GetOrCreate("k", create); v != 100 {
		t.Errorf("second = %d", v)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss", s)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	for i := 0; i < 3; i++ {
		c.Set(i, i)
	}
	c.Get(0) // 1 is now the oldest
	c.Set(3, 3)

	if _, ok := c.Get(1); ok {
		t.Error("1 was not evicted")
	}
	for _, k := range []int{0, 2, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%d evicted", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 || s.Len != 3 || s.Capacity != 3 {
		t.Errorf("stats = %+v", s)
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	if got := New[int, int](0).Stats().Capacity; got != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", got, DefaultCapacity)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[string, int](50)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa((g*31 + i) % 80)
				c.GetOrCreate(key, func() int { return i })
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}

func BenchmarkCacheGetOrCreate(b *testing.B) {
	c := New[string, int](1000)
	for i := 0; i < b.N; i++ {
		c.GetOrCreate(strconv.Itoa(i%100), func() int { return i })
	}
}
