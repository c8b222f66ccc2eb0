package main

import (
	"strings"
	"testing"

	"heron/engine"
)

func TestParseGoClock(t *testing.T) {
	limits := parseGo(strings.Fields("go wtime 30000 btime 28000 winc 500 binc 400"), nil)
	if limits.WTime != 30000 || limits.BTime != 28000 || limits.WInc != 500 || limits.BInc != 400 {
		t.Fatalf("clock fields wrong: %+v", limits)
	}
	if limits.Depth != engine.MaxPly-1 {
		t.Fatalf("depth default wrong: %d", limits.Depth)
	}
}

func TestParseGoDepthAndNodes(t *testing.T) {
	limits := parseGo(strings.Fields("go depth 9 nodes 12345"), nil)
	if limits.Depth != 9 || limits.Nodes != 12345 {
		t.Fatalf("got %+v", limits)
	}
	if !parseGo(strings.Fields("go infinite"), nil).Infinite {
		t.Fatalf("infinite flag not parsed")
	}
}

func TestParseOptionMultiwordName(t *testing.T) {
	name, value := parseOption(strings.Fields("setoption name Move Overhead value 120"))
	if name != "Move Overhead" || value != "120" {
		t.Fatalf("got name %q value %q", name, value)
	}
}

func TestParsePositionStartposMoves(t *testing.T) {
	board, history, played := parsePosition(strings.Fields("position startpos moves e2e4 e7e5 g1f3"))
	if board.Wtomove {
		t.Fatalf("after three plies black should be to move")
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 prior hashes, got %d", len(history))
	}
	if len(played) != 3 || played[2] != "g1f3" {
		t.Fatalf("played list wrong: %v", played)
	}
}

func TestParsePositionFen(t *testing.T) {
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	board, history, played := parsePosition(append(strings.Fields("position fen"), strings.Fields(fen)...))
	if board.ToFen() != fen {
		t.Fatalf("fen round trip: got %s", board.ToFen())
	}
	if history != nil || played != nil {
		t.Fatalf("fen position should carry no history or book line")
	}
}

func TestParsePositionRejectsIllegalMove(t *testing.T) {
	board, history, _ := parsePosition(strings.Fields("position startpos moves e2e4 e2e4"))
	if len(history) != 1 {
		t.Fatalf("parsing should stop at the illegal move, history %d", len(history))
	}
	if board.Wtomove {
		t.Fatalf("the legal prefix should still have been applied")
	}
}
