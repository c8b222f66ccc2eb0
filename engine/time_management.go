package engine

import (
	"time"

	"github.com/dylhunn/dragontoothmg"
)

// =============================================================================
// TIME MANAGEMENT
// =============================================================================
// The default Budgeter. Hard limit is polled from inside the tree and cuts
// the search dead; the soft limit is only consulted between iterations, so a
// finished iteration is never thrown away for a few milliseconds.

// TimeHandler budgets one move decision at a time. Zero value means no
// limits at all (depth-only searching).
type TimeHandler struct {
	start time.Time
	soft  time.Time
	hard  time.Time

	maxNodes int64

	prevScore  int32
	prevBest   dragontoothmg.Move
	stability  int
	iterations int
	extended   bool
}

// Setup derives the budget from the go parameters. phase is the remaining
// material weight (0..TotalPhase) used to guess how many moves are left.
func (th *TimeHandler) Setup(limits SearchLimits, whiteToMove bool, phase int, overheadMs int) {
	*th = TimeHandler{start: time.Now(), maxNodes: limits.Nodes}

	if limits.Infinite {
		return
	}

	if limits.MoveTime > 0 {
		ms := Max(limits.MoveTime-overheadMs, 1)
		th.hard = th.start.Add(time.Duration(ms) * time.Millisecond)
		th.soft = th.hard
		return
	}

	remaining, increment := limits.WTime, limits.WInc
	if !whiteToMove {
		remaining, increment = limits.BTime, limits.BInc
	}
	if remaining <= 0 {
		return // depth- or node-limited search
	}

	alloc := remaining/estimateMovesRemaining(phase) + increment*3/4 - overheadMs
	if remaining < 1000 {
		// Panic mode: nearly flagged, spend only a sliver per move.
		alloc = remaining / 10
	}
	alloc = Clamp(alloc, 1, remaining*7/10)
	hard := Clamp(alloc*3, alloc, remaining*7/10)

	th.soft = th.start.Add(time.Duration(alloc) * time.Millisecond)
	th.hard = th.start.Add(time.Duration(hard) * time.Millisecond)
}

// estimateMovesRemaining maps material to an expected game length: full
// boards budget for ~45 more moves, bare kings for ~20.
func estimateMovesRemaining(phase int) int {
	return (Clamp(phase, 0, TotalPhase)*25)/TotalPhase + 20
}

// ShouldStop is the polled hard limit.
func (th *TimeHandler) ShouldStop(stats *SearchStatistics) bool {
	if th.maxNodes > 0 && stats.Nodes >= uint64(th.maxNodes) {
		return true
	}
	if th.hard.IsZero() {
		return false
	}
	return time.Now().After(th.hard)
}

// SoftTimeExceeded reports whether a new iteration is still worth starting.
func (th *TimeHandler) SoftTimeExceeded() bool {
	if th.soft.IsZero() {
		return false
	}
	return time.Now().After(th.soft)
}

// UpdateStability is fed each completed iteration's result. A best move that
// keeps changing, or a score that keeps swinging, buys one soft-limit
// extension; a settled search keeps its budget.
func (th *TimeHandler) UpdateStability(score int32, best dragontoothmg.Move) {
	th.iterations++
	if best == th.prevBest && Abs(score-th.prevScore) < 30 {
		th.stability++
	} else {
		th.stability = 0
	}
	th.prevScore, th.prevBest = score, best

	if th.iterations > 3 && th.stability == 0 && !th.extended &&
		!th.soft.IsZero() && th.soft.Before(th.hard) {
		soft := th.soft.Add(th.soft.Sub(th.start) / 2)
		if soft.After(th.hard) {
			soft = th.hard
		}
		th.soft = soft
		th.extended = true
	}
}
