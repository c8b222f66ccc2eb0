package engine

import (
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// =============================================================================
// PER-WORKER SEARCH STATE
// =============================================================================

// SearchFrame is the per-ply scratch state. The whole array lives inside the
// worker, so descending a ply never allocates.
type SearchFrame struct {
	staticEval int32
	// Move played from this ply and its moving piece type; the child ply
	// keys counter-move lookups off these.
	move  dragontoothmg.Move
	piece dragontoothmg.Piece
}

// thread is one lazy-SMP worker: its own frame array, ordering tables,
// statistics and repetition stack. Only the transposition table and the stop
// flag are shared.
type thread struct {
	id     int
	engine *Engine

	frames  [MaxPly + 2]SearchFrame
	history HistoryTables
	stats   SearchStatistics
	evals   evalCache

	// Hashes of every position from game start through the current search
	// path; rootIndex marks the search root within it.
	repStack  []uint64
	rootIndex int
}

// prepare resets the worker for a fresh root search over b. priorHashes are
// the game positions that led here, oldest first, excluding b itself.
func (t *thread) prepare(b *dragontoothmg.Board, priorHashes []uint64) {
	t.stats.reset()
	t.history.Clear()
	t.evals.newSearch()
	t.repStack = append(t.repStack[:0], priorHashes...)
	t.repStack = append(t.repStack, b.Hash())
	t.rootIndex = len(t.repStack) - 1
	for i := range t.frames {
		t.frames[i] = SearchFrame{staticEval: UnusableScore}
	}
}

// applyMove plays the move and pushes the resulting hash; the returned
// closure undoes both. Strictly LIFO.
func (t *thread) applyMove(b *dragontoothmg.Board, move dragontoothmg.Move) func() {
	unapply := b.Apply(move)
	t.repStack = append(t.repStack, b.Hash())
	return func() {
		t.repStack = t.repStack[:len(t.repStack)-1]
		unapply()
	}
}

// applyNullMove hands the opponent a free move. The move generator has no
// null-move primitive, so we round-trip through FEN: flip the side to move,
// clear the en-passant square, reparse. Undo restores the saved board value.
func (t *thread) applyNullMove(b *dragontoothmg.Board) func() {
	saved := *b
	fields := strings.Fields(b.ToFen())
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-"
	*b = dragontoothmg.ParseFen(strings.Join(fields, " "))
	t.repStack = append(t.repStack, b.Hash())
	return func() {
		t.repStack = t.repStack[:len(t.repStack)-1]
		*b = saved
	}
}

// isDraw reports fifty-move and repetition draws. A single repetition inside
// the search tree already scores as a draw; positions from the actual game
// need the full threefold.
func (t *thread) isDraw(b *dragontoothmg.Board) bool {
	if b.Halfmoveclock >= 100 {
		return true
	}
	top := len(t.repStack) - 1
	hash := t.repStack[top]
	limit := top - int(b.Halfmoveclock)
	if limit < 0 {
		limit = 0
	}
	seen := 1
	for i := top - 2; i >= limit; i -= 2 {
		if t.repStack[i] != hash {
			continue
		}
		if i >= t.rootIndex {
			return true
		}
		seen++
		if seen >= 3 {
			return true
		}
	}
	return false
}

// staticEval returns the cached or freshly computed evaluation of b.
func (t *thread) staticEval(b *dragontoothmg.Board) int32 {
	key := b.Hash()
	if v, ok := t.evals.probe(key); ok {
		return v
	}
	v := t.engine.evaluate(b)
	t.evals.store(key, v)
	return v
}
