package engine

import "github.com/dylhunn/dragontoothmg"

// =============================================================================
// MULTI-CUT PRUNING
// =============================================================================
// At an expected cut node, several shallow refutations are nearly as
// convincing as one deep one. Pre-scan the most promising moves with a null
// window at reduced depth; enough fail-highs and the node returns beta
// without a full-depth search. NonPV only, never while in check.

var (
	MultiCutMinDepth  int8 = 3
	MultiCutMinMoves       = 6
	MultiCutRequired       = 3
	MultiCutReduction int8 = 2
)

func (t *thread) multiCut(b *dragontoothmg.Board, moves []dragontoothmg.Move, beta int32, depth, ply int8) bool {
	scored := t.scoreMoves(b, moves, ply, 0, 0, 0)
	limit := Min(MultiCutMinMoves, len(scored))
	cutoffs := 0
	var scratchPV PVLine

	for i := 0; i < limit; i++ {
		orderNextMove(i, scored)
		move := scored[i].move

		t.frames[ply].move = move
		t.frames[ply].piece = PieceTypeAt(b, move.From())
		undo := t.applyMove(b, move)
		score := -t.alphabeta(b, -beta, -beta+1, depth-1-MultiCutReduction, ply+1,
			&scratchPV, nodeNonPV, false, 0)
		undo()

		if t.engine.stop.Load() {
			return false
		}
		if score >= beta {
			cutoffs++
			if cutoffs >= MultiCutRequired {
				return true
			}
		}
	}
	return false
}
