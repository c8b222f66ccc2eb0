package engine

import "github.com/dylhunn/dragontoothmg"

// =============================================================================
// TRANSPOSITION TABLE
// =============================================================================
// Fixed arena of 4-entry clusters indexed by the low key bits, full 64-bit
// key match on probe. Shared by all workers without locks: entries are
// word-sized fields written independently, so a concurrent racing write can
// at worst surface a torn entry whose key/depth/bound no longer agree. The
// probe-side depth and bound gates make such an entry useless rather than
// dangerous, which is the usual lazy-SMP trade.

type Bound uint8

const (
	BoundUpper Bound = iota // fail-low: value is an upper bound
	BoundLower              // fail-high: value is a lower bound
	BoundExact
)

const (
	DefaultHashMB = 64
	clusterSize   = 4

	// A store loses against a same-generation survivor this much deeper.
	ttReplaceDepthMargin = 4
)

type TTEntry struct {
	Key        uint64
	Move       dragontoothmg.Move
	Value      int16
	StaticEval int16
	Depth      int8
	Bound      Bound
	gen        uint8
}

type TransTable struct {
	entries   []TTEntry
	clusters  uint64
	megabytes int

	// Bumped once per root search; wraparound is fine since only equality is
	// ever compared.
	generation uint8
}

// NewTransTable allocates a table of roughly the requested size.
func NewTransTable(megabytes int) *TransTable {
	if megabytes < 1 {
		megabytes = 1
	}
	entrySize := uint64(24) // close enough to unsafe.Sizeof(TTEntry{}) padded
	count := uint64(megabytes) * 1024 * 1024 / entrySize
	clusters := count / clusterSize
	if clusters == 0 {
		clusters = 1
	}
	return &TransTable{
		entries:   make([]TTEntry, clusters*clusterSize),
		clusters:  clusters,
		megabytes: megabytes,
	}
}

func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.generation = 0
}

// NewSearch ages the whole table in O(1): entries keep their data but their
// generation tag now reads as old, so they lose replacement fights first.
func (tt *TransTable) NewSearch() {
	tt.generation++
}

func (tt *TransTable) clusterStart(key uint64) uint64 {
	return (key % tt.clusters) * clusterSize
}

// Probe returns the entry for key, with its value still in the stored
// (ply-relative) mate convention; callers go through usableValue.
func (tt *TransTable) Probe(key uint64) (TTEntry, bool) {
	base := tt.clusterStart(key)
	for i := base; i < base+clusterSize; i++ {
		if tt.entries[i].Key == key {
			// Refresh so a hot entry survives aging.
			tt.entries[i].gen = tt.generation
			return tt.entries[i], true
		}
	}
	return TTEntry{}, false
}

// Store writes an entry, ply-adjusting mate scores so they are relative to
// this node rather than the root.
func (tt *TransTable) Store(key uint64, value int32, staticEval int32, move dragontoothmg.Move, depth int8, bound Bound, ply int8) {
	if value > Checkmate {
		value += int32(ply)
	} else if value < -Checkmate {
		value -= int32(ply)
	}

	base := tt.clusterStart(key)
	victim := base
	for i := base; i < base+clusterSize; i++ {
		e := &tt.entries[i]
		if e.Key == key || e.Key == 0 {
			victim = i
			break
		}
		if tt.replaceScore(i) < tt.replaceScore(victim) {
			victim = i
		}
	}

	v := &tt.entries[victim]
	// Don't throw away a clearly deeper result from this same search for a
	// shallow one.
	if v.Key != 0 && v.Key != key && v.gen == tt.generation &&
		int(v.Depth)-int(depth) > ttReplaceDepthMargin {
		return
	}
	*v = TTEntry{
		Key:        key,
		Move:       move,
		Value:      int16(value),
		StaticEval: int16(staticEval),
		Depth:      depth,
		Bound:      bound,
		gen:        tt.generation,
	}
}

// replaceScore orders victims: old generations go first, then shallow depth.
func (tt *TransTable) replaceScore(i uint64) int {
	e := &tt.entries[i]
	score := int(e.Depth)
	if e.gen == tt.generation {
		score += 256
	}
	return score
}

// usableValue converts a stored value back to root-relative mate distances
// and reports whether the entry may produce a cutoff in [alpha, beta] at the
// requested depth.
func usableValue(e TTEntry, depth int8, alpha, beta int32, ply int8) (int32, bool) {
	value := int32(e.Value)
	if value > Checkmate {
		value -= int32(ply)
	} else if value < -Checkmate {
		value += int32(ply)
	}
	if e.Depth < depth {
		return value, false
	}
	switch e.Bound {
	case BoundExact:
		return value, true
	case BoundLower:
		return value, value >= beta
	case BoundUpper:
		return value, value <= alpha
	}
	return value, false
}
