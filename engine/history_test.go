package engine

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestHistoryStaysBounded(t *testing.T) {
	var h HistoryTables
	move, _ := dragontoothmg.ParseMove("g1f3")

	for i := 0; i < 20000; i++ {
		h.recordSuccess(true, move, 12)
	}
	if got := h.historyScore(true, move); got > historyLimit || got < 0 {
		t.Fatalf("history grew to %d after repeated bonuses, limit is %d", got, historyLimit)
	}

	for i := 0; i < 20000; i++ {
		h.recordFailure(true, move, 12)
	}
	if got := h.historyScore(true, move); got < -historyLimit || got > historyLimit {
		t.Fatalf("history at %d after repeated penalties, limit is %d", got, historyLimit)
	}
}

func TestHistorySidesIndependent(t *testing.T) {
	var h HistoryTables
	move, _ := dragontoothmg.ParseMove("e2e4")
	h.recordSuccess(true, move, 6)
	if h.historyScore(false, move) != 0 {
		t.Fatalf("white bonus leaked into black's table")
	}
}

func TestKillerInsertion(t *testing.T) {
	var h HistoryTables
	m1, _ := dragontoothmg.ParseMove("e2e4")
	m2, _ := dragontoothmg.ParseMove("d2d4")

	h.recordKiller(m1, 5)
	if h.killerSlot(m1, 5) != 0 {
		t.Fatalf("first killer not in slot 0")
	}
	h.recordKiller(m2, 5)
	if h.killerSlot(m2, 5) != 0 || h.killerSlot(m1, 5) != 1 {
		t.Fatalf("killer shift broken: %v", h.killers[5])
	}
	// Re-recording the slot-0 killer must not duplicate it.
	h.recordKiller(m2, 5)
	if h.killerSlot(m2, 5) != 0 || h.killerSlot(m1, 5) != 1 {
		t.Fatalf("re-recording slot 0 shuffled the slots: %v", h.killers[5])
	}
	if h.killerSlot(m1, 6) != -1 {
		t.Fatalf("killer visible at the wrong ply")
	}
}

func TestCounterMoves(t *testing.T) {
	var h HistoryTables
	reply, _ := dragontoothmg.ParseMove("b8c6")

	h.recordCounter(dragontoothmg.Pawn, 28, reply)
	if got := h.counter(dragontoothmg.Pawn, 28); got != reply {
		t.Fatalf("counter lookup returned %s", got.String())
	}
	if got := h.counter(dragontoothmg.Knight, 28); got == reply {
		t.Fatalf("counter keyed only by destination, not by piece")
	}
}

func TestClearWipesEverything(t *testing.T) {
	var h HistoryTables
	m, _ := dragontoothmg.ParseMove("e2e4")
	h.recordSuccess(true, m, 8)
	h.recordKiller(m, 3)
	h.recordCounter(dragontoothmg.Queen, 10, m)

	h.Clear()
	if h.historyScore(true, m) != 0 || h.killerSlot(m, 3) != -1 || h.counter(dragontoothmg.Queen, 10) != 0 {
		t.Fatalf("Clear left state behind")
	}
}
