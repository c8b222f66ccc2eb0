package engine

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestStartposIsTempoOnly(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	if got := Evaluation(&board); got != TempoBonus {
		t.Fatalf("symmetric start position evaluated to %d, want tempo bonus %d", got, TempoBonus)
	}
}

func TestEvaluationIsColorSymmetric(t *testing.T) {
	// Mirrored positions with the mover swapped must score identically.
	pairs := [][2]string{
		{"4k3/8/8/8/8/8/P7/4K3 w - - 0 1", "4k3/p7/8/8/8/8/8/4K3 b - - 0 1"},
		{"4k3/8/8/3N4/8/8/8/4K3 w - - 0 1", "4k3/8/8/8/3n4/8/8/4K3 b - - 0 1"},
		{"r3k3/8/8/8/8/8/8/4K3 b - - 0 1", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1"},
	}
	for _, pair := range pairs {
		b1 := dragontoothmg.ParseFen(pair[0])
		b2 := dragontoothmg.ParseFen(pair[1])
		if s1, s2 := Evaluation(&b1), Evaluation(&b2); s1 != s2 {
			t.Fatalf("mirror pair scored %d vs %d (%s / %s)", s1, s2, pair[0], pair[1])
		}
	}
}

func TestMaterialDominates(t *testing.T) {
	// An extra queen should be worth a lot more than any positional noise.
	board := dragontoothmg.ParseFen("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	if got := Evaluation(&board); got < 700 {
		t.Fatalf("queen-up position evaluated to only %d", got)
	}
}

func TestNonPawnMaterialGate(t *testing.T) {
	pawnsOnly := dragontoothmg.ParseFen("7k/8/5p2/8/8/5P2/8/K7 w - - 0 1")
	if hasNonPawnMaterial(&pawnsOnly) {
		t.Fatalf("pawn endgame reported as having pieces")
	}
	withKnight := dragontoothmg.ParseFen("7k/8/8/8/8/8/8/KN6 w - - 0 1")
	if !hasNonPawnMaterial(&withKnight) {
		t.Fatalf("knight not counted as non-pawn material")
	}
}

func TestGamePhaseRange(t *testing.T) {
	start := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	if p := gamePhase(&start); p != 0 {
		t.Fatalf("start position phase %d, want 0", p)
	}
	bare := dragontoothmg.ParseFen("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if p := gamePhase(&bare); p != 256 {
		t.Fatalf("bare kings phase %d, want 256", p)
	}
}

func TestPieceTypeAt(t *testing.T) {
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	cases := []struct {
		sq   uint8
		want dragontoothmg.Piece
	}{
		{0, dragontoothmg.Rook},
		{4, dragontoothmg.King},
		{12, dragontoothmg.Pawn},
		{57, dragontoothmg.Knight},
		{59, dragontoothmg.Queen},
		{27, 0},
	}
	for _, c := range cases {
		if got := PieceTypeAt(&board, c.sq); got != c.want {
			t.Fatalf("square %d: got piece %d, want %d", c.sq, got, c.want)
		}
	}
}
