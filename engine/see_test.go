package engine

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func findMove(t *testing.T, b *dragontoothmg.Board, uci string) dragontoothmg.Move {
	t.Helper()
	for _, m := range b.GenerateLegalMoves() {
		if m.String() == uci {
			return m
		}
	}
	t.Fatalf("move %s not legal in %s", uci, b.ToFen())
	return 0
}

func TestSeeSimpleWin(t *testing.T) {
	// Pawn takes an undefended pawn.
	board := dragontoothmg.ParseFen("1k6/8/8/3p4/4P3/8/8/1K6 w - - 0 1")
	move := findMove(t, &board, "e4d5")
	if got := see(&board, move); got != 100 {
		t.Fatalf("free pawn capture scored %d, want 100", got)
	}
}

func TestSeeDefendedPawnIsEven(t *testing.T) {
	// exd5 exd5: pawn for pawn.
	board := dragontoothmg.ParseFen("1k6/8/4p3/3p4/4P3/8/8/1K6 w - - 0 1")
	move := findMove(t, &board, "e4d5")
	if got := see(&board, move); got != 0 {
		t.Fatalf("even pawn trade scored %d, want 0", got)
	}
}

func TestSeeQueenTakesDefendedPawn(t *testing.T) {
	board := dragontoothmg.ParseFen("1k6/8/4p3/3p4/8/8/3Q4/1K6 w - - 0 1")
	move := findMove(t, &board, "d2d5")
	if got := see(&board, move); got != -800 {
		t.Fatalf("queen takes defended pawn scored %d, want -800", got)
	}
}

func TestSeeRecaptureChain(t *testing.T) {
	// Nxd5 is met by exd5: knight for pawn.
	board := dragontoothmg.ParseFen("1k6/8/4p3/3p4/8/4N3/8/1K6 w - - 0 1")
	move := findMove(t, &board, "e3d5")
	if got := see(&board, move); got != 100-300 {
		t.Fatalf("knight takes defended pawn scored %d, want -200", got)
	}
}

func TestSeeGEThreshold(t *testing.T) {
	board := dragontoothmg.ParseFen("1k6/8/8/3p4/4P3/8/8/1K6 w - - 0 1")
	move := findMove(t, &board, "e4d5")
	if !seeGE(&board, move, 100) {
		t.Fatalf("winning capture failed its own threshold")
	}
	if seeGE(&board, move, 101) {
		t.Fatalf("threshold above the gain should fail")
	}
}
