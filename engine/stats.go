package engine

import "fmt"

// =============================================================================
// SEARCH STATISTICS
// =============================================================================

// SearchStatistics counts what the pruning machinery actually does. One set
// per worker, reset per root search; the Budgeter sees them on every poll.
type SearchStatistics struct {
	Nodes  uint64
	QNodes uint64

	BetaCutoffs      uint64
	FirstMoveCutoffs uint64
	TTCutoffs        uint64
	NullMoveCutoffs  uint64
	MultiCuts        uint64
	FutilityPrunes   uint64
	RazoringDrops    uint64
	LateMovePrunes   uint64

	QStandPatCutoffs uint64
	QSeeSkips        uint64
	QDeltaSkips      uint64

	// Effective branching factor: nodes per beta cutoff, refreshed every
	// 10k nodes so it's cheap to read mid-search.
	branchingFactor     float64
	lastBranchingUpdate uint64
}

func (s *SearchStatistics) reset() {
	*s = SearchStatistics{}
}

func (s *SearchStatistics) onBetaCutoff(firstMove bool) {
	s.BetaCutoffs++
	if firstMove {
		s.FirstMoveCutoffs++
	}
}

// maybeUpdateBranching recomputes the effective branching factor once per
// 10k nodes.
func (s *SearchStatistics) maybeUpdateBranching() {
	if s.Nodes-s.lastBranchingUpdate < 10000 {
		return
	}
	s.lastBranchingUpdate = s.Nodes
	if s.BetaCutoffs > 0 {
		s.branchingFactor = float64(s.Nodes) / float64(s.BetaCutoffs)
	}
}

// EffectiveBranchingFactor reports nodes per beta cutoff for the search so
// far; zero until enough nodes have been seen.
func (s *SearchStatistics) EffectiveBranchingFactor() float64 {
	return s.branchingFactor
}

// add folds another worker's counters in for reporting.
func (s *SearchStatistics) add(o *SearchStatistics) {
	s.Nodes += o.Nodes
	s.QNodes += o.QNodes
	s.BetaCutoffs += o.BetaCutoffs
	s.FirstMoveCutoffs += o.FirstMoveCutoffs
	s.TTCutoffs += o.TTCutoffs
	s.NullMoveCutoffs += o.NullMoveCutoffs
	s.MultiCuts += o.MultiCuts
	s.FutilityPrunes += o.FutilityPrunes
	s.RazoringDrops += o.RazoringDrops
	s.LateMovePrunes += o.LateMovePrunes
	s.QStandPatCutoffs += o.QStandPatCutoffs
	s.QSeeSkips += o.QSeeSkips
	s.QDeltaSkips += o.QDeltaSkips
}

// Dump prints the counters as UCI info strings; handy when tuning margins.
func (s *SearchStatistics) Dump() {
	fmt.Printf("info string nodes %d qnodes %d ebf %.2f\n", s.Nodes, s.QNodes, s.branchingFactor)
	fmt.Printf("info string cutoffs %d firstmove %d tt %d nullmove %d multicut %d\n",
		s.BetaCutoffs, s.FirstMoveCutoffs, s.TTCutoffs, s.NullMoveCutoffs, s.MultiCuts)
	fmt.Printf("info string pruned futility %d razoring %d latemove %d qsee %d qdelta %d\n",
		s.FutilityPrunes, s.RazoringDrops, s.LateMovePrunes, s.QSeeSkips, s.QDeltaSkips)
}
