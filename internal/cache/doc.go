// Package cache provides the LRU cache behind the per-context geometry
// cache.
//
//	c := cache.New[key, *chunk.Set](256, nil)
//	c.Set(k, set)
//	set, ok := c.Get(k)
//
// Unlike a shared cache, a Cache belongs to a single assembly context and
// takes no locks. Evicted values are passed to the eviction callback so
// the owner can drop anything they keep alive.
package cache
