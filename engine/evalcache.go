package engine

// =============================================================================
// EVALUATION CACHE
// =============================================================================
// Per-worker cache of static evals keyed by position hash. Interior nodes ask
// for the static eval far more often than positions change materially, so
// this trims repeated evaluator calls without any locking.

const evalCacheSize = 1 << 15 // entries, power of two

type evalCacheEntry struct {
	key  uint64
	eval int32
	gen  uint8
}

type evalCache struct {
	entries []evalCacheEntry
	gen     uint8
}

func (c *evalCache) clear() {
	c.entries = nil
	c.gen = 0
}

func (c *evalCache) newSearch() {
	if c.entries == nil {
		c.entries = make([]evalCacheEntry, evalCacheSize)
	}
	c.gen++
}

func (c *evalCache) probe(key uint64) (int32, bool) {
	e := &c.entries[key&(evalCacheSize-1)]
	if e.key == key && e.gen == c.gen {
		return e.eval, true
	}
	return 0, false
}

func (c *evalCache) store(key uint64, eval int32) {
	c.entries[key&(evalCacheSize-1)] = evalCacheEntry{key: key, eval: eval, gen: c.gen}
}
