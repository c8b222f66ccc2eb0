package engine

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func newTestEngine() *Engine {
	e := NewEngine()
	e.HashMB = 16
	e.ensureReady()
	return e
}

func TestDepthZeroIsStaticEval(t *testing.T) {
	fens := []string{
		dragontoothmg.Startpos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 0 1",
	}
	for _, fen := range fens {
		e := newTestEngine()
		board := dragontoothmg.ParseFen(fen)
		result := e.Search(&board, SearchLimits{Depth: 0})
		if want := Evaluation(&board); result.Score != want {
			t.Fatalf("fen %s: depth 0 returned %d, static eval is %d", fen, result.Score, want)
		}
	}
}

func TestStartposDepthFour(t *testing.T) {
	e := newTestEngine()
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	result := e.Search(&board, SearchLimits{Depth: 4})

	if Abs(result.Score) > 300 {
		t.Fatalf("startpos scored %d at depth 4, expected something near equal", result.Score)
	}
	legal := false
	for _, m := range board.GenerateLegalMoves() {
		if m == result.BestMove {
			legal = true
			break
		}
	}
	if !legal {
		t.Fatalf("best move %s is not legal from the start position", result.BestMove.String())
	}
	if len(result.PV.Moves) == 0 || result.PV.Moves[0] != result.BestMove {
		t.Fatalf("pv %q does not start with best move %s", result.PV.String(), result.BestMove.String())
	}
}

func TestMateInOne(t *testing.T) {
	// Black mates with Qe1 (or an equivalent) on the move.
	e := newTestEngine()
	board := dragontoothmg.ParseFen("8/8/8/8/8/6k1/4q3/6K1 b - - 0 1")
	result := e.Search(&board, SearchLimits{Depth: 3})
	if result.Score != mateIn(1) {
		t.Fatalf("expected mate score %d, got %d", mateIn(1), result.Score)
	}
}

func TestMatedInTwoPlies(t *testing.T) {
	// White shuffles, black answers Qb2 mate; every white move loses the
	// same way. The reported distance must be exact and must never drift
	// longer as the search deepens.
	fen := "7N/8/8/8/8/2k5/P1q5/K7 w - - 0 1"
	for depth := 2; depth <= 6; depth++ {
		e := newTestEngine()
		board := dragontoothmg.ParseFen(fen)
		result := e.Search(&board, SearchLimits{Depth: depth})
		if result.Score != matedIn(2) {
			t.Fatalf("depth %d: expected mated-in-2 score %d, got %d", depth, matedIn(2), result.Score)
		}
	}
}

func TestNullMoveNeedsPieces(t *testing.T) {
	// Pure pawn endgame: zugzwang territory, the material gate must keep
	// null-move pruning out entirely.
	e := newTestEngine()
	board := dragontoothmg.ParseFen("7k/8/5p2/8/8/5P2/8/K7 w - - 0 1")
	result := e.Search(&board, SearchLimits{Depth: 6})
	if result.Stats.NullMoveCutoffs != 0 {
		t.Fatalf("got %d null-move cutoffs in a pawn endgame", result.Stats.NullMoveCutoffs)
	}
}

func TestSingleReplyFastPath(t *testing.T) {
	// White's only legal move is Kh1.
	e := newTestEngine()
	board := dragontoothmg.ParseFen("8/8/8/8/8/6k1/4q3/6K1 w - - 0 1")
	result := e.Search(&board, SearchLimits{Depth: 20})
	if got := result.BestMove.String(); got != "g1h1" {
		t.Fatalf("expected forced g1h1, got %s", got)
	}
	if result.Nodes > 10000 {
		t.Fatalf("single-reply search burned %d nodes", result.Nodes)
	}
}

func TestSingleWorkerDeterminism(t *testing.T) {
	fen := "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10"

	run := func() SearchResult {
		e := newTestEngine()
		board := dragontoothmg.ParseFen(fen)
		return e.Search(&board, SearchLimits{Depth: 5})
	}
	first, second := run(), run()
	if first.BestMove != second.BestMove || first.Score != second.Score || first.Nodes != second.Nodes {
		t.Fatalf("identical searches diverged: (%s %d %d) vs (%s %d %d)",
			first.BestMove.String(), first.Score, first.Nodes,
			second.BestMove.String(), second.Score, second.Nodes)
	}
}

func TestAspirationReproducesBestMove(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	depth := 5

	e := newTestEngine()
	board := dragontoothmg.ParseFen(fen)
	full := e.Search(&board, SearchLimits{Depth: depth})

	// Re-searching the same depth through a window seeded with the known
	// score must land on the same move.
	e.stop.Store(false)
	worker := &e.workers[0]
	score, pv, completed := e.aspiration(worker, &board, int8(depth), full.Score)
	if !completed {
		t.Fatalf("aspiration search did not complete")
	}
	best := pv.BestMove()
	if best != full.BestMove {
		t.Fatalf("aspiration found %s, full search found %s", best.String(), full.BestMove.String())
	}
	if Abs(score-full.Score) > AspirationWindow {
		t.Fatalf("aspiration score %d far from reference %d", score, full.Score)
	}
}

type neverStop struct{}

func (neverStop) ShouldStop(*SearchStatistics) bool { return false }

func TestCustomBudgeterOwnsTheClock(t *testing.T) {
	// With a Budgeter installed, the built-in soft limit must not cut the
	// deepening loop short, even when the go command carries a tiny clock.
	e := newTestEngine()
	e.Budget = neverStop{}
	board := dragontoothmg.ParseFen(dragontoothmg.Startpos)
	result := e.Search(&board, SearchLimits{Depth: 6, MoveTime: 1})
	if result.Depth != 6 {
		t.Fatalf("reached depth %d, want 6; the built-in clock overrode the budgeter", result.Depth)
	}
}

func TestStalemateIsDraw(t *testing.T) {
	// White to move, no legal moves, not in check.
	e := newTestEngine()
	board := dragontoothmg.ParseFen("7k/8/8/8/8/8/5q2/7K w - - 0 1")
	result := e.Search(&board, SearchLimits{Depth: 4})
	if result.Score != DrawScore {
		t.Fatalf("stalemate scored %d, want %d", result.Score, DrawScore)
	}
}

func TestQuiescenceResolvesHangingQueen(t *testing.T) {
	// The stand-pat says white is a queen down, but exd5 wins her outright
	// and leaves white a clean pawn up. The capture search must find the
	// swing rather than trust the static eval.
	e := newTestEngine()
	board := dragontoothmg.ParseFen("k7/8/8/3q4/4P3/8/8/K7 w - - 0 1")
	worker := &e.workers[0]
	worker.prepare(&board, nil)

	if standPat := worker.staticEval(&board); standPat > -500 {
		t.Fatalf("fixture broken: stand-pat %d should show white a queen down", standPat)
	}
	score := worker.quiescence(&board, -MaxScore, MaxScore, 0, 0)
	if score < 50 {
		t.Fatalf("quiescence scored %d with a queen hanging on d5", score)
	}
}
