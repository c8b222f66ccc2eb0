package engine

import (
	"fmt"
	"time"

	"github.com/dylhunn/dragontoothmg"
)

// =============================================================================
// ITERATIVE DEEPENING + ASPIRATION WINDOWS
// =============================================================================

var (
	AspirationWindow  int32 = 15
	AspirationMaxWide int32 = 500

	aspirationRetries = 10
)

// SearchLimits carries everything a go command can specify. Times are in
// milliseconds. Depth 0 with nothing else set means "static eval only".
type SearchLimits struct {
	Depth    int
	MoveTime int
	WTime    int
	BTime    int
	WInc     int
	BInc     int
	Nodes    int64
	Infinite bool

	// Hashes of the game positions before the root, oldest first, for
	// threefold detection across the root boundary.
	History []uint64
}

func (l SearchLimits) untimed() bool {
	return l.MoveTime == 0 && l.WTime == 0 && l.BTime == 0 && l.Nodes == 0 && !l.Infinite
}

// SearchResult is the last completed iteration of worker 0.
type SearchResult struct {
	BestMove dragontoothmg.Move
	Score    int32
	Depth    int
	Nodes    uint64
	PV       PVLine
	Stats    SearchStatistics
}

// Search runs iterative deepening over b until the depth limit or the budget
// gives out. The board is mutated during the search but fully restored
// before returning.
func (e *Engine) Search(b *dragontoothmg.Board, limits SearchLimits) SearchResult {
	e.ensureReady()
	e.stop.Store(false)
	e.tt.NewSearch()
	e.timeHandler.Setup(limits, b.Wtomove, piecePhase(b), e.MoveOverhead)

	// Depth 0 is defined as the static evaluation, nothing more.
	if limits.Depth == 0 && limits.untimed() {
		return SearchResult{Score: e.evaluate(b)}
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth >= MaxPly {
		maxDepth = MaxPly - 1
	}

	main := &e.workers[0]
	main.prepare(b, limits.History)

	rootMoves := b.GenerateLegalMoves()
	if len(rootMoves) == 0 {
		if b.OurKingInCheck() {
			return SearchResult{Score: matedIn(0)}
		}
		return SearchResult{Score: DrawScore}
	}

	// One legal reply: skip ordering and deepening entirely; quiescence
	// supplies a sane score to report.
	if len(rootMoves) == 1 {
		move := rootMoves[0]
		undo := main.applyMove(b, move)
		score := -main.quiescence(b, -MaxScore, MaxScore, 1, 0)
		undo()
		result := SearchResult{BestMove: move, Score: score, Depth: 1, Nodes: main.stats.Nodes, Stats: main.stats}
		result.PV.Moves = append(result.PV.Moves, move)
		return result
	}

	// Helpers run their own deepening loops, staggered one ply deeper on
	// odd ids; they share nothing but the TT and the stop flag.
	for i := 1; i < len(e.workers); i++ {
		w := &e.workers[i]
		w.prepare(b, limits.History)
		boardCopy := *b
		helperDepth := Min(maxDepth+i%2, MaxPly-1)
		e.wg.Add(1)
		go func(w *thread, bc dragontoothmg.Board, depth int) {
			defer e.wg.Done()
			e.iterate(w, &bc, depth, false)
		}(w, boardCopy, helperDepth)
	}

	result := e.iterate(main, b, maxDepth, true)
	e.stop.Store(true)
	e.wg.Wait()

	// Worker 0 is authoritative; the helpers only contribute counters.
	for i := 1; i < len(e.workers); i++ {
		result.Stats.add(&e.workers[i].stats)
	}
	if result.BestMove == 0 {
		// Interrupted before depth 1 finished; any legal move beats none.
		result.BestMove = rootMoves[0]
	}
	return result
}

// iterate is one worker's deepening loop. Only the reporting worker prints
// info lines and consults the soft time limit; an installed custom Budgeter
// owns the budget outright, so the built-in soft limit stays out of its way.
func (e *Engine) iterate(t *thread, b *dragontoothmg.Board, maxDepth int, report bool) SearchResult {
	var result SearchResult
	var prevScore int32
	start := time.Now()
	ownClock := e.Budget == nil

	for depth := 1; depth <= maxDepth; depth++ {
		if report && ownClock && depth > 1 && e.timeHandler.SoftTimeExceeded() {
			break
		}

		score, pv, completed := e.aspiration(t, b, int8(depth), prevScore)
		if !completed {
			break
		}
		prevScore = score
		result = SearchResult{
			BestMove: pv.BestMove(),
			Score:    score,
			Depth:    depth,
			Nodes:    t.stats.Nodes,
			PV:       pv.Clone(),
			Stats:    t.stats,
		}

		if report {
			elapsed := time.Since(start)
			nps := uint64(float64(t.stats.Nodes) / Max(elapsed.Seconds(), 0.001))
			fmt.Printf("info depth %d score %s nodes %d nps %d time %d pv %s\n",
				depth, scoreString(score), t.stats.Nodes, nps, elapsed.Milliseconds(), pv.String())
			if ownClock {
				e.timeHandler.UpdateStability(score, pv.BestMove())
			}
		}
		if Abs(score) > Checkmate {
			break
		}
	}
	return result
}

// aspiration searches one depth, starting from a window around the previous
// iteration's score and reopening the failing side until the score lands
// inside. The final attempt always runs full-width.
func (e *Engine) aspiration(t *thread, b *dragontoothmg.Board, depth int8, prevScore int32) (int32, *PVLine, bool) {
	alpha, beta := -MaxScore, MaxScore
	if depth > 1 && Abs(prevScore) < Checkmate {
		alpha = Max(-MaxScore, prevScore-AspirationWindow)
		beta = Min(MaxScore, prevScore+AspirationWindow)
	}

	var pv PVLine
	for attempt := 0; ; attempt++ {
		if attempt >= aspirationRetries-1 {
			alpha, beta = -MaxScore, MaxScore
		}
		pv.Clear()
		score := t.alphabeta(b, alpha, beta, depth, 0, &pv, nodeRoot, false, 0)
		if e.stop.Load() {
			return score, &pv, false
		}

		switch {
		case score <= alpha:
			// Fail low: open downward, pull beta back near the seed.
			alpha = Max(-MaxScore, score-widenWindow(attempt))
			beta = Min(MaxScore, prevScore+AspirationWindow)
		case score >= beta:
			beta = Min(MaxScore, score+widenWindow(attempt))
			alpha = Max(-MaxScore, prevScore-AspirationWindow)
		default:
			return score, &pv, true
		}

		if attempt >= aspirationRetries-1 {
			// Full window can't fail outside itself.
			return score, &pv, true
		}
	}
}

// widenWindow grows the failing side by the base window times (2 + attempt),
// capped so a wild score doesn't blow the window wide open early.
func widenWindow(attempt int) int32 {
	return Min(AspirationMaxWide, AspirationWindow*int32(2+attempt))
}

// scoreString renders a score the UCI way: mate distances in moves,
// everything else in centipawns.
func scoreString(score int32) string {
	if score > Checkmate {
		return fmt.Sprintf("mate %d", (MaxScore-score+1)/2)
	}
	if score < -Checkmate {
		return fmt.Sprintf("mate -%d", (MaxScore+score+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}
