package engine

import (
	"sync"
	"sync/atomic"

	"github.com/dylhunn/dragontoothmg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxScore  int32 = 32500
	Checkmate int32 = 20000
	DrawScore int32 = 0

	// Marks a static eval that was never computed (e.g. while in check).
	UnusableScore int32 = -32750
)

// MaxPly bounds the search stack; no line ever gets this deep in practice.
const MaxPly = 100

// EvaluationFunc scores a position in centipawns from the side to move's
// perspective. It must be deterministic for a fixed position.
type EvaluationFunc func(*dragontoothmg.Board) int32

// Budgeter is polled by the search to decide when iterative deepening has to
// give up. It never pushes; the search asks.
type Budgeter interface {
	ShouldStop(*SearchStatistics) bool
}

// Engine owns the shared search state: the transposition table, the worker
// threads and the stop flag. One Engine serves one game at a time.
type Engine struct {
	Threads      int
	HashMB       int
	MoveOverhead int

	Evaluate EvaluationFunc
	Budget   Budgeter

	tt          *TransTable
	timeHandler TimeHandler
	workers     []thread
	stop        atomic.Bool
	wg          sync.WaitGroup
}

// NewEngine returns an engine with the default evaluation, a single worker
// and the default hash size.
func NewEngine() *Engine {
	e := &Engine{
		Threads:      1,
		HashMB:       DefaultHashMB,
		MoveOverhead: 30,
		Evaluate:     Evaluation,
	}
	return e
}

// ensureReady (re)builds the transposition table and the worker pool so they
// match the current options. Called at the top of every search.
func (e *Engine) ensureReady() {
	if e.Threads < 1 {
		e.Threads = 1
	}
	if e.tt == nil || e.tt.megabytes != e.HashMB {
		e.tt = NewTransTable(e.HashMB)
	}
	if len(e.workers) != e.Threads {
		e.workers = make([]thread, e.Threads)
		for i := range e.workers {
			e.workers[i].id = i
			e.workers[i].engine = e
		}
	}
}

// Stop requests a cooperative halt of the current search. Every worker frame
// polls the flag and unwinds by returning; there is no non-local exit.
func (e *Engine) Stop() {
	e.stop.Store(true)
}

// ResetForNewGame drops all accumulated state: hash table, ordering tables
// and the previous-score seed for aspiration windows.
func (e *Engine) ResetForNewGame() {
	if e.tt != nil {
		e.tt.Clear()
	}
	for i := range e.workers {
		e.workers[i].history.Clear()
		e.workers[i].evals.clear()
		e.workers[i].repStack = e.workers[i].repStack[:0]
	}
	e.timeHandler = TimeHandler{}
}

// budget returns the configured Budgeter, defaulting to the built-in time
// handler.
func (e *Engine) budget() Budgeter {
	if e.Budget != nil {
		return e.Budget
	}
	return &e.timeHandler
}

// evaluate dispatches to the configured evaluation function.
func (e *Engine) evaluate(b *dragontoothmg.Board) int32 {
	if e.Evaluate != nil {
		return e.Evaluate(b)
	}
	return Evaluation(b)
}
