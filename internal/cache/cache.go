package cache

// Cache is an LRU cache with a fixed capacity. Inserting beyond the
// capacity evicts the least recently used entry.
//
// Cache is not safe for concurrent use.
type Cache[K comparable, V any] struct {
	entries  map[K]*lruNode[K, V]
	order    lruList[K, V]
	capacity int
	onEvict  func(K, V)

	hits, misses, evictions uint64
}

// New creates a cache holding at most capacity entries. A capacity of 0
// means unlimited. onEvict, if not nil, is called for every entry that is
// evicted, deleted or cleared.
func New[K comparable, V any](capacity int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*lruNode[K, V]),
		capacity: max(capacity, 0),
		onEvict:  onEvict,
	}
}

// Get returns the value for key and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	node, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.MoveToFront(node)
	return node.value, true
}

// Set stores value under key, replacing (and evicting) any previous value.
func (c *Cache[K, V]) Set(key K, value V) {
	if node, ok := c.entries[key]; ok {
		old := node.value
		node.value = value
		c.order.MoveToFront(node)
		c.evicted(key, old)
		return
	}
	c.entries[key] = c.order.PushFront(key, value)
	for c.capacity > 0 && c.order.len > c.capacity {
		node := c.order.RemoveOldest()
		delete(c.entries, node.key)
		c.evictions++
		c.evicted(node.key, node.value)
	}
}

// GetOrCreate returns the cached value for key, calling create on a miss.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.Set(key, v)
	return v
}

// Delete removes key. It reports whether the key was present.
func (c *Cache[K, V]) Delete(key K) bool {
	node, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.Remove(node)
	delete(c.entries, key)
	c.evicted(node.key, node.value)
	return true
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	for node := c.order.head; node != nil; {
		next := node.next
		c.evicted(node.key, node.value)
		node = next
	}
	c.entries = make(map[K]*lruNode[K, V])
	c.order = lruList[K, V]{}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	return c.order.len
}

// Capacity returns the maximum number of entries, 0 for unlimited.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

func (c *Cache[K, V]) evicted(key K, value V) {
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries.
	Capacity int
	// Hits and Misses count Get lookups, including those by GetOrCreate.
	Hits   uint64
	Misses uint64
	// Evictions counts entries dropped for capacity.
	Evictions uint64
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Len:       c.order.len,
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}
