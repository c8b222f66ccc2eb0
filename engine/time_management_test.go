package engine

import (
	"testing"
	"time"
)

func TestDepthOnlySearchNeverStops(t *testing.T) {
	var th TimeHandler
	th.Setup(SearchLimits{Depth: 9}, true, TotalPhase, 30)

	var stats SearchStatistics
	stats.Nodes = 1 << 40
	if th.ShouldStop(&stats) {
		t.Fatalf("depth-limited search hit a phantom budget")
	}
	if th.SoftTimeExceeded() {
		t.Fatalf("depth-limited search has no soft limit to exceed")
	}
}

func TestNodeLimit(t *testing.T) {
	var th TimeHandler
	th.Setup(SearchLimits{Nodes: 1000}, true, TotalPhase, 30)

	var stats SearchStatistics
	stats.Nodes = 999
	if th.ShouldStop(&stats) {
		t.Fatalf("stopped below the node limit")
	}
	stats.Nodes = 1000
	if !th.ShouldStop(&stats) {
		t.Fatalf("did not stop at the node limit")
	}
}

func TestMoveTimeDeadline(t *testing.T) {
	var th TimeHandler
	th.Setup(SearchLimits{MoveTime: 20}, true, TotalPhase, 0)

	var stats SearchStatistics
	if th.ShouldStop(&stats) {
		t.Fatalf("stopped immediately with 20ms on the clock")
	}
	time.Sleep(30 * time.Millisecond)
	if !th.ShouldStop(&stats) {
		t.Fatalf("hard deadline ignored")
	}
	if !th.SoftTimeExceeded() {
		t.Fatalf("soft deadline ignored")
	}
}

func TestInfiniteIgnoresClock(t *testing.T) {
	var th TimeHandler
	th.Setup(SearchLimits{Infinite: true, WTime: 1}, true, TotalPhase, 30)
	time.Sleep(5 * time.Millisecond)
	var stats SearchStatistics
	if th.ShouldStop(&stats) || th.SoftTimeExceeded() {
		t.Fatalf("infinite search consulted the clock")
	}
}

func TestMovesRemainingEstimate(t *testing.T) {
	if got := estimateMovesRemaining(TotalPhase); got != 45 {
		t.Fatalf("full material estimate %d, want 45", got)
	}
	if got := estimateMovesRemaining(0); got != 20 {
		t.Fatalf("bare material estimate %d, want 20", got)
	}
	if estimateMovesRemaining(TotalPhase/2) <= 20 {
		t.Fatalf("mid-game estimate should exceed the floor")
	}
}

func TestClockAllocationStaysSane(t *testing.T) {
	var th TimeHandler
	th.Setup(SearchLimits{WTime: 60000, WInc: 1000}, true, TotalPhase, 30)
	if th.soft.IsZero() || th.hard.IsZero() {
		t.Fatalf("clock search got no deadlines")
	}
	if th.hard.Before(th.soft) {
		t.Fatalf("hard deadline before soft deadline")
	}
	// Never budget more than 70% of the remaining clock.
	if limit := th.start.Add(42 * time.Second); th.hard.After(limit) {
		t.Fatalf("hard deadline spends too much of the clock")
	}
}

func TestStabilityExtension(t *testing.T) {
	var th TimeHandler
	th.Setup(SearchLimits{WTime: 60000}, true, TotalPhase, 30)
	soft := th.soft

	// A settled search keeps its budget.
	for i := 0; i < 5; i++ {
		th.UpdateStability(10, 1234)
	}
	if !th.soft.Equal(soft) {
		t.Fatalf("stable iterations extended the soft limit")
	}

	// A best-move flip after several iterations buys more soft time.
	th.UpdateStability(10, 4321)
	if !th.soft.After(soft) {
		t.Fatalf("unstable best move did not extend the soft limit")
	}
}
