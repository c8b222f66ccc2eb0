package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"
)

// =============================================================================
// MOVE ORDERING
// =============================================================================
// Score bands, best first: TT move, promotions, captures by SEE, killers,
// then quiets by counter-move bonus plus butterfly history. Bands are spaced
// so history swings can't promote a quiet past a killer.

const (
	ttMoveBonus    int32 = 30000
	promotionBonus int32 = 20000
	captureBonus   int32 = 15000
	killerBonus    int32 = 4000
	counterBonus   int32 = 2000
)

// mvvLva[victim][attacker]: quiescence ordering, most valuable victim first,
// least valuable attacker breaking ties.
var mvvLva = [7][7]int32{
	dragontoothmg.Pawn:   {0, 105, 104, 103, 102, 101, 100},
	dragontoothmg.Knight: {0, 205, 204, 203, 202, 201, 200},
	dragontoothmg.Bishop: {0, 305, 304, 303, 302, 301, 300},
	dragontoothmg.Rook:   {0, 405, 404, 403, 402, 401, 400},
	dragontoothmg.Queen:  {0, 505, 504, 503, 502, 501, 500},
}

type scoredMove struct {
	move  dragontoothmg.Move
	score int32
}

// scoreMoves assigns ordering scores for the main search. prevPiece/prevTo
// describe the opponent's previous move and key the counter-move lookup.
func (t *thread) scoreMoves(b *dragontoothmg.Board, moves []dragontoothmg.Move, ply int8,
	ttMove dragontoothmg.Move, prevPiece dragontoothmg.Piece, prevTo uint8) []scoredMove {

	counterMove := t.history.counter(prevPiece, prevTo)
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		var score int32
		switch {
		case m == ttMove:
			score = ttMoveBonus
		case m.Promote() != 0:
			score = promotionBonus + SeePieceValue[m.Promote()]
		case dragontoothmg.IsCapture(m, b):
			score = captureBonus + see(b, m)
		default:
			if slot := t.history.killerSlot(m, ply); slot == 0 {
				score = killerBonus + 100
			} else if slot == 1 {
				score = killerBonus
			} else {
				score = t.history.historyScore(b.Wtomove, m) / 16
				if m == counterMove && prevPiece != 0 {
					score += counterBonus
				}
			}
		}
		scored[i] = scoredMove{move: m, score: score}
	}
	return scored
}

// orderNextMove swaps the best remaining move into position index; one step
// of a selection sort, so nodes that cut off early never pay for a full sort.
func orderNextMove(index int, moves []scoredMove) {
	best := index
	for i := index + 1; i < len(moves); i++ {
		if moves[i].score > moves[best].score {
			best = i
		}
	}
	if best != index {
		moves[index], moves[best] = moves[best], moves[index]
	}
}

// scoreTactical filters moves down to captures and promotions and sorts them
// by MVV-LVA for quiescence.
func scoreTactical(b *dragontoothmg.Board, moves []dragontoothmg.Move) []scoredMove {
	scored := make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		promoted := m.Promote()
		isCapture := dragontoothmg.IsCapture(m, b)
		if !isCapture && promoted == 0 {
			continue
		}
		var score int32
		if isCapture {
			victim := PieceTypeAt(b, m.To())
			if victim == 0 {
				victim = dragontoothmg.Pawn // en passant
			}
			attacker := PieceTypeAt(b, m.From())
			score = mvvLva[victim][attacker]
		}
		if promoted != 0 {
			score += promotionBonus + SeePieceValue[promoted]
		}
		scored = append(scored, scoredMove{move: m, score: score})
	}
	slices.SortFunc(scored, func(a, b scoredMove) bool {
		return a.score > b.score
	})
	return scored
}
