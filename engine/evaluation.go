package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// =============================================================================
// EVALUATION
// =============================================================================
// Tapered evaluation: material, piece-square tables, mobility, bishop pair
// and tempo, blended between middlegame and endgame by a phase count over the
// remaining material. Each side's MG and EG contributions are computed
// exactly once; only the blend depends on phase.

var (
	// Indexed by dragontoothmg piece type (Pawn=1 .. King=6).
	pieceValueMG = [7]int32{0, 100, 320, 330, 500, 900, 0}
	pieceValueEG = [7]int32{0, 120, 300, 320, 550, 950, 0}

	BishopPairMG int32 = 30
	BishopPairEG int32 = 50
	TempoBonus   int32 = 10
)

// Phase weights; TotalPhase corresponds to the full starting material.
const (
	pawnPhase   = 0
	knightPhase = 1
	bishopPhase = 1
	rookPhase   = 2
	queenPhase  = 4
	TotalPhase  = knightPhase*4 + bishopPhase*4 + rookPhase*4 + queenPhase*2
)

// Piece-square tables from white's point of view, a1 = index 0 (so the first
// source row is rank 1). Black mirrors with sq^56.
var psqtMG = [7][64]int32{
	dragontoothmg.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	dragontoothmg.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	dragontoothmg.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	dragontoothmg.Rook: {
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	dragontoothmg.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	dragontoothmg.King: {
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

var psqtEG = [7][64]int32{
	dragontoothmg.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 5, 5, 5, 5, 5, 5, 5,
		10, 10, 10, 10, 10, 10, 10, 10,
		20, 20, 20, 20, 20, 20, 20, 20,
		35, 35, 35, 35, 35, 35, 35, 35,
		70, 70, 70, 70, 70, 70, 70, 70,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	dragontoothmg.Knight: {
		-40, -30, -20, -20, -20, -20, -30, -40,
		-30, -15, -5, 0, 0, -5, -15, -30,
		-20, -5, 10, 15, 15, 10, -5, -20,
		-20, 0, 15, 20, 20, 15, 0, -20,
		-20, 0, 15, 20, 20, 15, 0, -20,
		-20, -5, 10, 15, 15, 10, -5, -20,
		-30, -15, -5, 0, 0, -5, -15, -30,
		-40, -30, -20, -20, -20, -20, -30, -40,
	},
	dragontoothmg.Bishop: {
		-15, -10, -5, -5, -5, -5, -10, -15,
		-10, 0, 0, 5, 5, 0, 0, -10,
		-5, 0, 5, 10, 10, 5, 0, -5,
		-5, 5, 10, 10, 10, 10, 5, -5,
		-5, 5, 10, 10, 10, 10, 5, -5,
		-5, 0, 5, 10, 10, 5, 0, -5,
		-10, 0, 0, 5, 5, 0, 0, -10,
		-15, -10, -5, -5, -5, -5, -10, -15,
	},
	dragontoothmg.Rook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 5, 5, 5, 5, 5, 5, 5,
		10, 10, 10, 10, 10, 10, 10, 10,
		5, 5, 5, 5, 5, 5, 5, 5,
	},
	dragontoothmg.Queen: {
		-15, -10, -10, -5, -5, -10, -10, -15,
		-10, -5, 0, 0, 0, 0, -5, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 10, 10, 5, 0, -5,
		-5, 0, 5, 10, 10, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, -5, 0, 0, 0, 0, -5, -10,
		-15, -10, -10, -5, -5, -10, -10, -15,
	},
	dragontoothmg.King: {
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -25, 0, 0, 0, 0, -25, -30,
		-25, -10, 20, 30, 30, 20, -10, -25,
		-20, -5, 30, 40, 40, 30, -5, -20,
		-20, -5, 30, 40, 40, 30, -5, -20,
		-25, -10, 20, 30, 30, 20, -10, -25,
		-30, -25, 0, 0, 0, 0, -25, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	},
}

// Mobility bonuses indexed by number of reachable squares (own pieces
// excluded).
var (
	knightMobility = [9]int32{-30, -15, -5, 0, 5, 10, 15, 20, 25}
	bishopMobility = [14]int32{-25, -12, -4, 2, 8, 13, 17, 21, 24, 27, 29, 31, 33, 35}
	rookMobility   = [15]int32{-20, -12, -6, -2, 2, 6, 10, 13, 16, 19, 22, 24, 26, 28, 30}
	queenMobility  = [28]int32{-15, -10, -6, -3, 0, 2, 4, 6, 8, 10, 12, 13, 14, 15, 16, 17,
		18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29}
)

// Evaluation scores b from the side to move's point of view.
func Evaluation(b *dragontoothmg.Board) int32 {
	occupied := b.White.All | b.Black.All

	mg, eg := evaluateSide(&b.White, occupied, true)
	bmg, beg := evaluateSide(&b.Black, occupied, false)
	mg -= bmg
	eg -= beg

	phase := gamePhase(b)
	score := (mg*(256-phase) + eg*phase) / 256
	if !b.Wtomove {
		score = -score
	}
	return score + TempoBonus
}

// evaluateSide sums one color's MG and EG contributions.
func evaluateSide(side *dragontoothmg.Bitboards, occupied uint64, white bool) (mg, eg int32) {
	own := side.All

	for bb := side.Pawns; bb != 0; bb &= bb - 1 {
		sq := viewSquare(bits.TrailingZeros64(bb), white)
		mg += pieceValueMG[dragontoothmg.Pawn] + psqtMG[dragontoothmg.Pawn][sq]
		eg += pieceValueEG[dragontoothmg.Pawn] + psqtEG[dragontoothmg.Pawn][sq]
	}
	for bb := side.Knights; bb != 0; bb &= bb - 1 {
		raw := bits.TrailingZeros64(bb)
		sq := viewSquare(raw, white)
		mob := popCount(KnightMasks[raw] &^ own)
		mg += pieceValueMG[dragontoothmg.Knight] + psqtMG[dragontoothmg.Knight][sq] + knightMobility[mob]
		eg += pieceValueEG[dragontoothmg.Knight] + psqtEG[dragontoothmg.Knight][sq] + knightMobility[mob]
	}
	for bb := side.Bishops; bb != 0; bb &= bb - 1 {
		raw := bits.TrailingZeros64(bb)
		sq := viewSquare(raw, white)
		mob := popCount(dragontoothmg.CalculateBishopMoveBitboard(uint8(raw), occupied) &^ own)
		mob = Min(mob, len(bishopMobility)-1)
		mg += pieceValueMG[dragontoothmg.Bishop] + psqtMG[dragontoothmg.Bishop][sq] + bishopMobility[mob]
		eg += pieceValueEG[dragontoothmg.Bishop] + psqtEG[dragontoothmg.Bishop][sq] + bishopMobility[mob]
	}
	for bb := side.Rooks; bb != 0; bb &= bb - 1 {
		raw := bits.TrailingZeros64(bb)
		sq := viewSquare(raw, white)
		mob := popCount(dragontoothmg.CalculateRookMoveBitboard(uint8(raw), occupied) &^ own)
		mob = Min(mob, len(rookMobility)-1)
		mg += pieceValueMG[dragontoothmg.Rook] + psqtMG[dragontoothmg.Rook][sq] + rookMobility[mob]
		eg += pieceValueEG[dragontoothmg.Rook] + psqtEG[dragontoothmg.Rook][sq] + rookMobility[mob]
	}
	for bb := side.Queens; bb != 0; bb &= bb - 1 {
		raw := bits.TrailingZeros64(bb)
		sq := viewSquare(raw, white)
		attacks := dragontoothmg.CalculateRookMoveBitboard(uint8(raw), occupied) |
			dragontoothmg.CalculateBishopMoveBitboard(uint8(raw), occupied)
		mob := Min(popCount(attacks&^own), len(queenMobility)-1)
		mg += pieceValueMG[dragontoothmg.Queen] + psqtMG[dragontoothmg.Queen][sq] + queenMobility[mob]
		eg += pieceValueEG[dragontoothmg.Queen] + psqtEG[dragontoothmg.Queen][sq] + queenMobility[mob]
	}
	for bb := side.Kings; bb != 0; bb &= bb - 1 {
		sq := viewSquare(bits.TrailingZeros64(bb), white)
		mg += psqtMG[dragontoothmg.King][sq]
		eg += psqtEG[dragontoothmg.King][sq]
	}

	if popCount(side.Bishops) >= 2 {
		mg += BishopPairMG
		eg += BishopPairEG
	}
	return mg, eg
}

// viewSquare flips the board vertically for black so both colors read the
// same tables.
func viewSquare(sq int, white bool) int {
	if white {
		return sq
	}
	return sq ^ 56
}

// gamePhase maps remaining material to 0 (full middlegame) .. 256 (bare
// endgame).
func gamePhase(b *dragontoothmg.Board) int32 {
	phase := TotalPhase
	phase -= popCount(b.White.Knights|b.Black.Knights) * knightPhase
	phase -= popCount(b.White.Bishops|b.Black.Bishops) * bishopPhase
	phase -= popCount(b.White.Rooks|b.Black.Rooks) * rookPhase
	phase -= popCount(b.White.Queens|b.Black.Queens) * queenPhase
	phase = Max(phase, 0)
	return int32((phase*256 + TotalPhase/2) / TotalPhase)
}

// piecePhase counts remaining non-pawn material weight, 0..TotalPhase; the
// time handler uses it to estimate moves left.
func piecePhase(b *dragontoothmg.Board) int {
	phase := popCount(b.White.Knights|b.Black.Knights)*knightPhase +
		popCount(b.White.Bishops|b.Black.Bishops)*bishopPhase +
		popCount(b.White.Rooks|b.Black.Rooks)*rookPhase +
		popCount(b.White.Queens|b.Black.Queens)*queenPhase
	return Min(phase, TotalPhase)
}

// hasNonPawnMaterial reports whether the side to move still owns a piece;
// null-move pruning is unsound in pawn endgames where zugzwang rules.
func hasNonPawnMaterial(b *dragontoothmg.Board) bool {
	side := &b.White
	if !b.Wtomove {
		side = &b.Black
	}
	return side.Knights|side.Bishops|side.Rooks|side.Queens != 0
}

// PieceTypeAt returns the piece type standing on sq, or 0 for an empty
// square.
func PieceTypeAt(b *dragontoothmg.Board, sq uint8) dragontoothmg.Piece {
	bb := PositionBB[sq]
	if (b.White.Pawns|b.Black.Pawns)&bb != 0 {
		return dragontoothmg.Pawn
	}
	if (b.White.Knights|b.Black.Knights)&bb != 0 {
		return dragontoothmg.Knight
	}
	if (b.White.Bishops|b.Black.Bishops)&bb != 0 {
		return dragontoothmg.Bishop
	}
	if (b.White.Rooks|b.Black.Rooks)&bb != 0 {
		return dragontoothmg.Rook
	}
	if (b.White.Queens|b.Black.Queens)&bb != 0 {
		return dragontoothmg.Queen
	}
	if (b.White.Kings|b.Black.Kings)&bb != 0 {
		return dragontoothmg.King
	}
	return dragontoothmg.Piece(0)
}
