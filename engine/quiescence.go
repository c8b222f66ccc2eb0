package engine

import "github.com/dylhunn/dragontoothmg"

// =============================================================================
// QUIESCENCE SEARCH
// =============================================================================
// Resolves captures (and evasions while in check) so the leaf evaluation is
// never taken in the middle of a tactic. Deliberately does no TT traffic;
// these nodes are cheap and the table stays reserved for the main tree.

var (
	// Reject captures losing more than this by SEE.
	QuiescenceSeeMargin int32 = 30

	// Stand-pat plus captured piece plus this must beat alpha.
	DeltaPruningMargin int32 = 200

	// Hard cap on quiescence depth; beyond it the stand-pat has to do.
	MaxQuiescenceDepth int8 = 30
)

func (t *thread) quiescence(b *dragontoothmg.Board, alpha, beta int32, ply, qdepth int8) int32 {
	t.stats.Nodes++
	t.stats.QNodes++
	if t.stats.Nodes&4095 == 0 {
		t.pollStop()
	}
	if t.engine.stop.Load() {
		return 0
	}

	inCheck := b.OurKingInCheck()

	standPat := UnusableScore
	if !inCheck {
		standPat = t.staticEval(b)
		if standPat >= beta {
			t.stats.QStandPatCutoffs++
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	if ply >= MaxPly || qdepth >= MaxQuiescenceDepth {
		if inCheck {
			return t.staticEval(b)
		}
		return standPat
	}

	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return matedIn(ply)
		}
		return DrawScore
	}

	var scored []scoredMove
	if inCheck {
		// Every evasion gets searched; ordering still prefers captures.
		scored = scoreTactical(b, moves)
		for _, m := range moves {
			if !dragontoothmg.IsCapture(m, b) && m.Promote() == 0 {
				scored = append(scored, scoredMove{move: m})
			}
		}
	} else {
		scored = scoreTactical(b, moves)
	}

	bestScore := standPat
	if inCheck {
		bestScore = -MaxScore
	}

	for _, sm := range scored {
		move := sm.move
		if !inCheck && dragontoothmg.IsCapture(move, b) && move.Promote() == 0 {
			victim := PieceTypeAt(b, move.To())
			if victim == 0 {
				victim = dragontoothmg.Pawn
			}
			if standPat+SeePieceValue[victim]+DeltaPruningMargin <= alpha {
				t.stats.QDeltaSkips++
				continue
			}
			if !seeGE(b, move, -QuiescenceSeeMargin) {
				t.stats.QSeeSkips++
				continue
			}
		}

		undo := t.applyMove(b, move)
		score := -t.quiescence(b, -beta, -alpha, ply+1, qdepth+1)
		undo()

		if t.engine.stop.Load() {
			return 0
		}
		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return bestScore
}
