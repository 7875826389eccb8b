package engine

import (
	"fmt"
)

type SearchStatsT struct {
	Nodes          uint64 // #nodes visited
	NonLeafs       uint64 // #non-leaf nodes
	Mates          uint64 // #true terminal nodes
	CutNodes       uint64 // #(beta-)cut nodes
	FirstChildCuts uint64 // #non-leaf nodes that (beta-)cut on the first child searched
	PosRepetitions uint64 // #nodes with repeated position
	Draws50Move    uint64 // #nodes drawn by the 50-move rule
	TTHits         uint64 // #nodes with successful TT probe
	TTCuts         uint64 // #nodes cut entirely by a TT hit
	TTTrueEvals    uint64 // #nodes with an exact TT hit at sufficient depth
	KillerCuts     uint64 // #cut nodes where the cut move was a killer
	HistoryCuts    uint64 // #cut nodes where the cut move was a history-ranked quiet

	QNodes       uint64 // #nodes visited in qsearch
	QMates       uint64 // #true terminal nodes in qsearch
	QPats        uint64 // #qnodes with stand pat best
	QPatCuts     uint64 // #qnodes with stand pat cut
	QCutNodes    uint64 // #(beta-)cut qnodes
	QDeltaPrunes uint64 // #qsearch moves skipped by delta pruning
}

func PerC(n uint64, N uint64) string {
	if N == 0 {
		return fmt.Sprintf("%d [-]", n)
	}
	return fmt.Sprintf("%d [%.2f%%]", n, float64(n)/float64(N)*100)
}

// Dump search stats as UCI info lines
func (s *SearchStatsT) Dump(finalDepth int) {
	fmt.Println("info string q-nodes:", s.QNodes, "q-mates:", PerC(s.QMates, s.QNodes), "q-pats:", PerC(s.QPats, s.QNodes), "q-pat-cuts:", PerC(s.QPatCuts, s.QNodes), "q-cuts:", PerC(s.QCutNodes, s.QNodes), "q-delta-prunes:", PerC(s.QDeltaPrunes, s.QNodes))
	fmt.Println("info string   cuts:", PerC(s.CutNodes, s.NonLeafs), "first-child-cuts:", PerC(s.FirstChildCuts, s.CutNodes), "killer-cuts:", PerC(s.KillerCuts, s.CutNodes), "history-cuts:", PerC(s.HistoryCuts, s.CutNodes))
	if UseTT {
		fmt.Println("info string   tt-hits:", PerC(s.TTHits, s.NonLeafs), "tt-cuts:", PerC(s.TTCuts, s.NonLeafs), "tt-true-evals:", PerC(s.TTTrueEvals, s.NonLeafs))
	}
	fmt.Println("info string nodes:", s.Nodes, "non-leafs:", PerC(s.NonLeafs, s.Nodes), "mates:", PerC(s.Mates, s.NonLeafs), "repetitions:", PerC(s.PosRepetitions, s.Nodes), "depth:", finalDepth)
}
