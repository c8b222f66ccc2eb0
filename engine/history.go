package engine

import "github.com/dylhunn/dragontoothmg"

// =============================================================================
// MOVE-ORDERING MEMORY
// =============================================================================
// Butterfly history, killer slots and the counter-move table. All per worker;
// raw scores only ever feed relative ordering and the LMR formula, never the
// returned evaluation.

// historyLimit bounds every butterfly entry. The gravity update pulls an
// entry of magnitude historyLimit back toward zero by exactly the applied
// bonus, so the table is self-limiting and never needs periodic halving.
const historyLimit int32 = 16384

type HistoryTables struct {
	// butterfly[side][from][to]; side 0 = white.
	butterfly [2][64][64]int32

	// Two killers per ply, slot 0 most recent distinct.
	killers [MaxPly + 1][2]dragontoothmg.Move

	// counters[movingPieceType][toSquare] of the opponent's previous move.
	counters [7][64]dragontoothmg.Move
}

// Clear wipes all ordering knowledge. Called once per search session so that
// iterations within one move decision keep feeding each other.
func (h *HistoryTables) Clear() {
	h.butterfly = [2][64][64]int32{}
	h.killers = [MaxPly + 1][2]dragontoothmg.Move{}
	h.counters = [7][64]dragontoothmg.Move{}
}

func sideIndex(whiteToMove bool) int {
	if whiteToMove {
		return 0
	}
	return 1
}

// gravityUpdate applies bonus with decay proportional to the current value,
// keeping |entry| <= historyLimit for any update sequence.
func gravityUpdate(entry *int32, bonus int32) {
	*entry += bonus - *entry*Abs(bonus)/historyLimit
}

// recordSuccess rewards the quiet move that produced a beta cutoff.
func (h *HistoryTables) recordSuccess(whiteToMove bool, move dragontoothmg.Move, depth int8) {
	bonus := int32(depth) * int32(depth)
	gravityUpdate(&h.butterfly[sideIndex(whiteToMove)][move.From()][move.To()], bonus)
}

// recordFailure penalizes a quiet move that was tried before the cutoff move.
func (h *HistoryTables) recordFailure(whiteToMove bool, move dragontoothmg.Move, depth int8) {
	penalty := -(int32(depth) * int32(depth)) / 4
	gravityUpdate(&h.butterfly[sideIndex(whiteToMove)][move.From()][move.To()], penalty)
}

func (h *HistoryTables) historyScore(whiteToMove bool, move dragontoothmg.Move) int32 {
	return h.butterfly[sideIndex(whiteToMove)][move.From()][move.To()]
}

// recordKiller inserts at slot 0 unless the move already sits there; the old
// slot 0 shifts down.
func (h *HistoryTables) recordKiller(move dragontoothmg.Move, ply int8) {
	if h.killers[ply][0] != move {
		h.killers[ply][1] = h.killers[ply][0]
		h.killers[ply][0] = move
	}
}

func (h *HistoryTables) killerSlot(move dragontoothmg.Move, ply int8) int {
	if h.killers[ply][0] == move {
		return 0
	}
	if h.killers[ply][1] == move {
		return 1
	}
	return -1
}

// recordCounter remembers move as the refutation of the opponent's previous
// move, keyed by its moving piece type and destination.
func (h *HistoryTables) recordCounter(prevPiece dragontoothmg.Piece, prevTo uint8, move dragontoothmg.Move) {
	h.counters[prevPiece][prevTo] = move
}

func (h *HistoryTables) counter(prevPiece dragontoothmg.Piece, prevTo uint8) dragontoothmg.Move {
	return h.counters[prevPiece][prevTo]
}
