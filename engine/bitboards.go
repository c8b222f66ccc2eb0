package engine

import "math/bits"

// =============================================================================
// BITBOARD TABLES
// =============================================================================
// Little-endian rank-file mapping throughout: a1 = 0, h8 = 63, matching
// dragontoothmg.

const (
	fileABB uint64 = 0x0101010101010101
	fileHBB uint64 = 0x8080808080808080
)

var (
	// PositionBB[sq] is the single-bit board for sq; index 64 is empty and
	// exists so "no square" lookups stay branch-free.
	PositionBB [65]uint64

	KnightMasks [64]uint64
	KingMoves   [64]uint64
)

func init() {
	for sq := 0; sq < 64; sq++ {
		PositionBB[sq] = 1 << uint(sq)
	}

	knightDeltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas := [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	for sq := 0; sq < 64; sq++ {
		file, rank := sq%8, sq/8
		for _, d := range knightDeltas {
			f, r := file+d[0], rank+d[1]
			if f >= 0 && f < 8 && r >= 0 && r < 8 {
				KnightMasks[sq] |= 1 << uint(r*8+f)
			}
		}
		for _, d := range kingDeltas {
			f, r := file+d[0], rank+d[1]
			if f >= 0 && f < 8 && r >= 0 && r < 8 {
				KingMoves[sq] |= 1 << uint(r*8+f)
			}
		}
	}
}

// PawnCaptureBitboards returns the squares attacked by the given pawns,
// split into the two capture directions.
func PawnCaptureBitboards(pawns uint64, white bool) (east, west uint64) {
	if white {
		east = (pawns &^ fileHBB) << 9
		west = (pawns &^ fileABB) << 7
	} else {
		east = (pawns &^ fileHBB) >> 7
		west = (pawns &^ fileABB) >> 9
	}
	return east, west
}

func popCount(bb uint64) int {
	return bits.OnesCount64(bb)
}
