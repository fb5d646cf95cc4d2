package game

import "sync"

type pair struct {
	a, b NodeID
}

// DistanceCache memoises an expensive DistanceOracle. Entries survive across planning
// cycles until Invalidate is called, which callers do when the map changes.
type DistanceCache struct {
	mu     sync.RWMutex
	oracle DistanceOracle
	cache  map[pair]int
}

func NewDistanceCache(oracle DistanceOracle) *DistanceCache {
	return &DistanceCache{
		oracle: oracle,
		cache:  make(map[pair]int),
	}
}

func (c *DistanceCache) Distance(a, b NodeID) int {
	if a == b {
		return 0
	}
	// The oracle is symmetric, so one entry serves both directions
	key := pair{a, b}
	if b < a {
		key = pair{b, a}
	}

	c.mu.RLock()
	d, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return d
	}

	d = c.oracle.Distance(key.a, key.b)
	c.mu.Lock()
	c.cache[key] = d
	c.mu.Unlock()
	return d
}

// Invalidate drops every cached distance.
func (c *DistanceCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[pair]int)
}

// Len returns the number of cached pairs.
func (c *DistanceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
