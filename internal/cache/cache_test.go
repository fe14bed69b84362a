package cache

import "testing"

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](10, nil)
	c.Set("a", 1)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) found a value")
	}
	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Len != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 entry", st)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []int
	c := New[int, string](3, func(k int, _ string) { evicted = append(evicted, k) })
	for i := range 3 {
		c.Set(i, "v")
	}
	c.Get(0)
	c.Set(3, "v")

	if len(evicted) != 1 || evicted[0] != 1 {
		t.Fatalf("evicted = %v, want [1]", evicted)
	}
	if _, ok := c.Get(1); ok {
		t.Error("evicted key still present")
	}
	for _, k := range []int{0, 2, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d missing", k)
		}
	}
	if c.Len() != 3 || c.Stats().Evictions != 1 {
		t.Errorf("len = %d, evictions = %d, want 3 and 1", c.Len(), c.Stats().Evictions)
	}
}

func TestCacheReplaceCallsOnEvict(t *testing.T) {
	var old []string
	c := New[int, string](0, func(_ int, v string) { old = append(old, v) })
	c.Set(1, "first")
	c.Set(1, "second")
	if len(old) != 1 || old[0] != "first" {
		t.Errorf("replaced values = %v, want [first]", old)
	}
	if v, _ := c.Get(1); v != "second" {
		t.Errorf("Get(1) = %q, want second", v)
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](4, nil)
	calls := 0
	create := func() int { calls++; return 7 }
	for range 3 {
		if v := c.GetOrCreate("k", create); v != 7 {
			t.Errorf("GetOrCreate = %d, want 7", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	n := 0
	c := New[int, int](0, func(int, int) { n++ })
	for i := range 5 {
		c.Set(i, i)
	}
	if !c.Delete(2) || c.Delete(2) {
		t.Error("Delete(2) should succeed exactly once")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("len after clear = %d, want 0", c.Len())
	}
	if n != 5 {
		t.Errorf("onEvict calls = %d, want 5", n)
	}
	c.Set(9, 9)
	if v, ok := c.Get(9); !ok || v != 9 {
		t.Error("cache unusable after Clear")
	}
}
