// Transposition table for the main search

package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
)

// The eval for a TT entry can be exact, a lower bound, or an upper bound
type TTEvalT uint8

const (
	TTInvalid TTEvalT = iota // must be the 0 item
	TTEvalExact
	TTEvalLowerBound // from beta cut-off
	TTEvalUpperBound // from alpha cut-off
)

// Members ordered by descending size for better packing
type TTEntryT struct {
	zobrist   uint64 // full key - the slot index only encodes the low bits
	eval      EvalCp
	bestMove  dragon.Move
	depthToGo uint8
	evalType  TTEvalT
	gen       uint8 // search generation that wrote the entry
}

func (e *TTEntryT) Eval() EvalCp          { return e.eval }
func (e *TTEntryT) BestMove() dragon.Move { return e.bestMove }
func (e *TTEntryT) DepthToGo() int        { return int(e.depthToGo) }
func (e *TTEntryT) EvalType() TTEvalT     { return e.evalType }

type TranspositionTableT struct {
	entries []TTEntryT
	gen     uint8
}

// NewTranspositionTable sizes the table to the largest power of two no greater
// than the requested entry count (min 1024 entries).
func NewTranspositionTable(nEntries int) *TranspositionTableT {
	size := 1024
	for size*2 <= nEntries {
		size *= 2
	}

	return &TranspositionTableT{
		entries: make([]TTEntryT, size),
		gen:     1}
}

func (tt *TranspositionTableT) NEntries() int {
	return len(tt.entries)
}

// NewSearch bumps the generation so that entries from previous searches age out
func (tt *TranspositionTableT) NewSearch() {
	tt.gen++
	if tt.gen == 0 {
		tt.gen = 1 // 0 means empty slot
	}
}

func (tt *TranspositionTableT) index(zobrist uint64) int {
	// Note: assumes tt size is a power of 2!!!
	return int(zobrist) & (len(tt.entries) - 1)
}

// Return a copy of the TT entry, and whether it is a hit.
// We copy to avoid entry overwrite shenanigans.
func (tt *TranspositionTableT) Probe(zobrist uint64) (TTEntryT, bool) {
	entry := tt.entries[tt.index(zobrist)]

	return entry, entry.evalType != TTInvalid && entry.zobrist == zobrist
}

// Store writes an entry, preferring deeper results.
// An occupied slot survives only if it is from the current generation and
// strictly deeper than the incoming entry.
func (tt *TranspositionTableT) Store(zobrist uint64, eval EvalCp, bestMove dragon.Move, depthToGo int, evalType TTEvalT) {
	index := tt.index(zobrist)
	old := &tt.entries[index]

	if old.evalType != TTInvalid && old.gen == tt.gen && uint8(depthToGo) < old.depthToGo {
		return
	}

	// Full struct overwrite to obliterate old data
	tt.entries[index] = TTEntryT{
		zobrist:   zobrist,
		eval:      eval,
		bestMove:  bestMove,
		depthToGo: uint8(depthToGo),
		evalType:  evalType,
		gen:       tt.gen}
}
