package engine

import "github.com/dylhunn/dragontoothmg"

// =============================================================================
// PRINCIPAL VARIATION SEARCH
// =============================================================================
// Fail-soft negamax with the usual depth-adaptive pruning family. What a node
// may prune depends on its kind: Root never prunes itself away, PV keeps the
// speculative cuts off, NonPV gets the full treatment.

// Pruning margins and gates. Raw centipawn margins compare against the
// static eval; depth gates are in plies.
var (
	RazorMargin   int32 = 520
	RazorDepthMul int32 = 100
	RazorMaxDepth int8  = 3

	FutilityMargin    int32 = 100
	FutilityImproving int32 = 50
	FutilityMaxDepth  int8  = 8

	NullMoveMinDepth int8 = 2

	LateMovePruneBase      = 3
	LateMoveMaxDepth  int8 = 8

	LMRMinDepth int8 = 3

	SingularMinDepth   int8  = 8
	SingularMarginBase int32 = 50
	SingularMarginMul  int32 = 10

	IIDMinDepth int8 = 6
	IIDReduce   int8 = 4
)

type nodeKind uint8

const (
	nodeRoot nodeKind = iota
	nodePV
	nodeNonPV
)

func matedIn(ply int8) int32 {
	return -MaxScore + int32(ply)
}

func mateIn(ply int8) int32 {
	return MaxScore - int32(ply)
}

// pollStop is called every 4096 nodes. Worker 0 consults the budget and
// raises the shared flag; helpers only ever observe it.
func (t *thread) pollStop() {
	if t.engine.stop.Load() {
		return
	}
	if t.id == 0 && t.engine.budget().ShouldStop(&t.stats) {
		t.engine.stop.Store(true)
	}
}

// alphabeta searches b to the given depth. excluded, when set, is skipped at
// this node only; that is how singular verification re-searches a position
// without its transposition move.
func (t *thread) alphabeta(b *dragontoothmg.Board, alpha, beta int32, depth, ply int8,
	pvLine *PVLine, kind nodeKind, didNull bool, excluded dragontoothmg.Move) int32 {

	t.stats.Nodes++
	if t.stats.Nodes&4095 == 0 {
		t.pollStop()
		t.stats.maybeUpdateBranching()
	}
	if t.engine.stop.Load() {
		return 0
	}

	isRoot := kind == nodeRoot
	isPV := kind != nodeNonPV

	if ply >= MaxPly {
		return t.staticEval(b)
	}

	if !isRoot {
		if t.isDraw(b) {
			return DrawScore
		}
		// Mate-distance pruning: a line already longer than a known mate
		// can't matter.
		alpha = Max(alpha, matedIn(ply))
		beta = Min(beta, mateIn(ply+1))
		if alpha >= beta {
			return alpha
		}
	}

	inCheck := b.OurKingInCheck()
	if inCheck {
		depth++
	}
	if depth <= 0 {
		return t.quiescence(b, alpha, beta, ply, 0)
	}

	hash := b.Hash()
	var ttMove dragontoothmg.Move
	var ttEntry TTEntry
	ttHit := false
	if excluded == 0 {
		ttEntry, ttHit = t.engine.tt.Probe(hash)
	}
	if ttHit {
		ttMove = ttEntry.Move
		if !isPV {
			if value, ok := usableValue(ttEntry, depth, alpha, beta, ply); ok {
				t.stats.TTCutoffs++
				return value
			}
		}
	}

	eval := UnusableScore
	if !inCheck {
		if ttHit && ttEntry.StaticEval != int16(UnusableScore) {
			eval = int32(ttEntry.StaticEval)
		} else {
			eval = t.staticEval(b)
		}
	}
	t.frames[ply].staticEval = eval

	improving := false
	if !inCheck && ply >= 2 && t.frames[ply-2].staticEval != UnusableScore {
		improving = eval > t.frames[ply-2].staticEval
	}

	// Razoring: hopeless eval at the frontier drops straight to quiescence.
	if !isPV && !inCheck && excluded == 0 && depth < RazorMaxDepth &&
		eval < alpha-RazorMargin-RazorDepthMul*int32(depth) {
		t.stats.RazoringDrops++
		return t.quiescence(b, alpha, beta, ply, 0)
	}

	// Futility: eval plus a depth margin still under alpha.
	if !isPV && !inCheck && excluded == 0 && depth < FutilityMaxDepth &&
		Abs(alpha) < Checkmate {
		margin := FutilityMargin * int32(depth)
		if improving {
			margin -= FutilityImproving
		}
		if eval+margin <= alpha {
			t.stats.FutilityPrunes++
			return eval
		}
	}

	// Null move: hand over the move; still beating beta means the position
	// is too good to search honestly. Unsound in pawn endgames, hence the
	// material gate.
	if !isPV && !inCheck && !didNull && excluded == 0 && depth >= NullMoveMinDepth &&
		eval >= beta && hasNonPawnMaterial(b) {
		r := 3 + depth/4 + int8(Min(int32(3), (eval-beta)/200))
		var nullPV PVLine
		t.frames[ply].move = 0
		t.frames[ply].piece = 0
		undo := t.applyNullMove(b)
		score := -t.alphabeta(b, -beta, -beta+1, depth-r, ply+1, &nullPV, nodeNonPV, true, 0)
		undo()
		if t.engine.stop.Load() {
			return 0
		}
		if score >= beta && score < Checkmate {
			t.stats.NullMoveCutoffs++
			return score
		}
	}

	// Internal iterative deepening: a PV node with no table move gets a
	// shallow search first, purely to seed ordering.
	if isPV && depth >= IIDMinDepth && ttMove == 0 && excluded == 0 {
		var iidPV PVLine
		t.alphabeta(b, alpha, beta, depth-IIDReduce, ply, &iidPV, nodePV, didNull, 0)
		if e, ok := t.engine.tt.Probe(hash); ok {
			ttMove = e.Move
		}
	}

	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return matedIn(ply)
		}
		return DrawScore
	}

	if !isPV && !inCheck && !didNull && excluded == 0 &&
		depth >= MultiCutMinDepth && len(moves) >= MultiCutMinMoves {
		if t.multiCut(b, moves, beta, depth, ply) {
			t.stats.MultiCuts++
			return beta
		}
	}

	var prevPiece dragontoothmg.Piece
	var prevTo uint8
	if ply > 0 {
		prevPiece = t.frames[ply-1].piece
		prevTo = t.frames[ply-1].move.To()
	}

	scored := t.scoreMoves(b, moves, ply, ttMove, prevPiece, prevTo)

	lmpThreshold := LateMovePruneBase + int(depth)*int(depth)
	if improving {
		lmpThreshold += int(depth)
	}

	var (
		bestScore     int32 = -MaxScore
		bestMove      dragontoothmg.Move
		ttFlag        = BoundUpper
		quietsTried   = make([]dragontoothmg.Move, 0, 16)
		movesSearched int
		childPV       PVLine
	)

	for i := range scored {
		orderNextMove(i, scored)
		move := scored[i].move
		if move == excluded {
			continue
		}

		isQuiet := !dragontoothmg.IsCapture(move, b) && move.Promote() == 0

		// Late-move pruning: the ordering has spoken; quiets this far down
		// the list almost never matter at low depth.
		if !isPV && !inCheck && isQuiet && bestScore > -Checkmate &&
			depth <= LateMoveMaxDepth && movesSearched >= lmpThreshold {
			t.stats.LateMovePrunes++
			continue
		}

		// Singular extension: if the table move stands alone above its
		// siblings, searching it one ply deeper is usually repaid.
		var extension int8
		if move == ttMove && excluded == 0 && ttHit && !isRoot &&
			depth >= SingularMinDepth && ttEntry.Bound != BoundUpper &&
			ttEntry.Depth >= depth-3 && Abs(int32(ttEntry.Value)) < Checkmate {
			ttValue := int32(ttEntry.Value)
			singularBeta := ttValue - (SingularMarginBase + SingularMarginMul*int32(depth))
			var verifyPV PVLine
			verify := t.alphabeta(b, singularBeta-1, singularBeta, (depth-1)/2, ply,
				&verifyPV, nodeNonPV, didNull, move)
			if verify < singularBeta {
				extension = 1
			}
			if t.engine.stop.Load() {
				return 0
			}
		}

		// Late-move reductions for quiet moves past the first.
		var reduction int8
		if isQuiet && !inCheck && depth >= LMRMinDepth && movesSearched >= 1 {
			r := 1 + int32(depth)/8 + int32(movesSearched)/16
			if isPV {
				r--
			}
			if improving {
				r--
			}
			r -= t.history.historyScore(b.Wtomove, move) / 8192
			reduction = int8(Clamp(r, 0, int32(depth)-1))
		}

		t.frames[ply].move = move
		t.frames[ply].piece = PieceTypeAt(b, move.From())
		undo := t.applyMove(b, move)
		movesSearched++

		var score int32
		childPV.Clear()
		if movesSearched == 1 {
			childKind := nodeNonPV
			if isPV {
				childKind = nodePV
			}
			score = -t.alphabeta(b, -beta, -alpha, depth-1+extension, ply+1, &childPV, childKind, false, 0)
		} else {
			// PVS: prove the move is worse with a cheap null window first.
			score = -t.alphabeta(b, -(alpha + 1), -alpha, depth-1-reduction+extension, ply+1,
				&childPV, nodeNonPV, false, 0)
			if score > alpha && (reduction > 0 || isPV) {
				childPV.Clear()
				childKind := nodeNonPV
				if isPV {
					childKind = nodePV
				}
				score = -t.alphabeta(b, -beta, -alpha, depth-1+extension, ply+1, &childPV, childKind, false, 0)
			}
		}
		undo()

		if t.engine.stop.Load() {
			return 0
		}

		if isQuiet {
			quietsTried = append(quietsTried, move)
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			ttFlag = BoundExact
			pvLine.Update(move, &childPV)
		}
		if alpha >= beta {
			ttFlag = BoundLower
			t.stats.onBetaCutoff(movesSearched == 1)
			if isQuiet {
				t.history.recordKiller(move, ply)
				t.history.recordSuccess(b.Wtomove, move, depth)
				if prevPiece != 0 {
					t.history.recordCounter(prevPiece, prevTo, move)
				}
				for _, q := range quietsTried {
					if q != move {
						t.history.recordFailure(b.Wtomove, q, depth)
					}
				}
			}
			break
		}
	}

	// Possible when the singular exclusion removed the only legal move.
	if movesSearched == 0 {
		return alpha
	}

	if excluded == 0 {
		var storeMove dragontoothmg.Move
		if ttFlag != BoundUpper {
			storeMove = bestMove
		}
		t.engine.tt.Store(hash, bestScore, eval, storeMove, depth, ttFlag, ply)
	}
	return bestScore
}
