package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// =============================================================================
// STATIC EXCHANGE EVALUATION
// =============================================================================
// Swap-off algorithm on the destination square: build the full attacker set
// once (with x-rays through pawns and sliders), then trade least valuable
// attacker first until one side would lose material by continuing.

var SeePieceValue = [7]int32{
	dragontoothmg.Pawn:   100,
	dragontoothmg.Knight: 300,
	dragontoothmg.Bishop: 300,
	dragontoothmg.Rook:   500,
	dragontoothmg.Queen:  900,
	dragontoothmg.King:   5000,
}

// see returns the expected material swing in centipawns of playing move,
// assuming both sides keep capturing on the destination square only while it
// pays.
func see(b *dragontoothmg.Board, move dragontoothmg.Move) int32 {
	var gain [32]int32
	depth := 0
	white := b.Wtomove
	from, to := move.From(), move.To()

	attackers := squareAttackers(to, &b.White, &b.Black, true) |
		squareAttackers(to, &b.Black, &b.White, false)

	var victim, attacker dragontoothmg.Piece
	if white {
		victim = sidePieceAt(&b.Black, to)
		attacker = sidePieceAt(&b.White, from)
	} else {
		victim = sidePieceAt(&b.White, to)
		attacker = sidePieceAt(&b.Black, from)
	}
	// En passant: the destination square itself is empty.
	if victim == 0 {
		victim = dragontoothmg.Pawn
	}

	attackerBB := PositionBB[from]
	gain[0] = SeePieceValue[victim]
	white = !white

	for attackerBB != 0 {
		depth++
		gain[depth] = SeePieceValue[attacker] - gain[depth-1]
		// Neither continuation helps the side to move: stop trading.
		if Max(-gain[depth-1], gain[depth]) < 0 {
			break
		}
		attackers ^= attackerBB
		attackerBB, attacker = nextAttacker(b, attackers, white, to)
		white = !white
	}

	for d := depth - 1; d > 0; d-- {
		gain[d-1] = -Max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// seeGE reports whether the exchange on move's destination nets at least
// threshold centipawns.
func seeGE(b *dragontoothmg.Board, move dragontoothmg.Move, threshold int32) bool {
	return see(b, move) >= threshold
}

// squareAttackers collects one color's pieces bearing on target, seeing
// through its own pawns and rook/bishop/queen batteries.
func squareAttackers(target uint8, us, them *dragontoothmg.Bitboards, white bool) uint64 {
	targetBB := PositionBB[target]

	var pawnAttackers uint64
	for x := us.Pawns; x != 0; x &= x - 1 {
		bb := PositionBB[bits.TrailingZeros64(x)]
		east, west := PawnCaptureBitboards(bb, white)
		if (east|west)&targetBB != 0 {
			pawnAttackers |= bb
		}
	}

	occOrtho := (us.All &^ (us.Rooks | us.Queens)) | (them.All &^ (them.Rooks | them.Queens))
	ortho := dragontoothmg.CalculateRookMoveBitboard(target, occOrtho)

	occDiag := (us.All &^ (us.Bishops | us.Queens | pawnAttackers)) | them.All
	diag := dragontoothmg.CalculateBishopMoveBitboard(target, occDiag)

	hits := pawnAttackers
	hits |= ortho & (us.Rooks | us.Queens)
	hits |= diag & (us.Bishops | us.Queens)
	hits |= KnightMasks[target] & us.Knights
	hits |= KingMoves[target] & us.Kings
	return hits
}

// nextAttacker picks the least valuable remaining attacker of target for the
// side to move and returns its square bit and piece type.
func nextAttacker(b *dragontoothmg.Board, attackers uint64, white bool, target uint8) (uint64, dragontoothmg.Piece) {
	us := &b.White
	if !white {
		us = &b.Black
	}

	diag := dragontoothmg.CalculateBishopMoveBitboard(target, attackers) &^ (us.All &^ (us.Bishops | us.Queens))
	ortho := dragontoothmg.CalculateRookMoveBitboard(target, attackers) &^ (us.All &^ (us.Rooks | us.Queens))
	east, west := PawnCaptureBitboards(PositionBB[target], !white)

	reachable := (east | west | diag | ortho |
		KnightMasks[target]&us.Knights | KingMoves[target]&us.Kings) & attackers

	return leastValuable(reachable, us)
}

func leastValuable(attackers uint64, us *dragontoothmg.Bitboards) (uint64, dragontoothmg.Piece) {
	groups := [6]struct {
		bb    uint64
		piece dragontoothmg.Piece
	}{
		{us.Pawns, dragontoothmg.Pawn},
		{us.Knights, dragontoothmg.Knight},
		{us.Bishops, dragontoothmg.Bishop},
		{us.Rooks, dragontoothmg.Rook},
		{us.Queens, dragontoothmg.Queen},
		{us.Kings, dragontoothmg.King},
	}
	for _, g := range groups {
		if sub := attackers & g.bb; sub != 0 {
			return PositionBB[bits.TrailingZeros64(sub)], g.piece
		}
	}
	return 0, 0
}

// sidePieceAt returns the piece type one color has on sq, or 0.
func sidePieceAt(side *dragontoothmg.Bitboards, sq uint8) dragontoothmg.Piece {
	bb := PositionBB[sq]
	switch {
	case side.Pawns&bb != 0:
		return dragontoothmg.Pawn
	case side.Knights&bb != 0:
		return dragontoothmg.Knight
	case side.Bishops&bb != 0:
		return dragontoothmg.Bishop
	case side.Rooks&bb != 0:
		return dragontoothmg.Rook
	case side.Queens&bb != 0:
		return dragontoothmg.Queen
	case side.Kings&bb != 0:
		return dragontoothmg.King
	}
	return 0
}
