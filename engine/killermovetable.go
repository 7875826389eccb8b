// Killer-move heuristic - remember quiet moves that caused a beta cut at each
// depth-from-root and try them early in sibling nodes.

package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
)

const NKillersPerPly = 2

type KillerMoveTableT [MaxPly][NKillersPerPly]dragon.Move

// Install a new killer move, most recent first
func (kt *KillerMoveTableT) addKillerMove(move dragon.Move, depthFromRoot int) {
	if move == NoMove || depthFromRoot >= MaxPly {
		return
	}

	plyKillers := &kt[depthFromRoot]
	if plyKillers[0] == move {
		return
	}

	plyKillers[1] = plyKillers[0]
	plyKillers[0] = move
}

// Return the killers for the given depth from most recent to least recent
func (kt *KillerMoveTableT) killersForPly(depthFromRoot int) [NKillersPerPly]dragon.Move {
	if depthFromRoot >= MaxPly {
		return [NKillersPerPly]dragon.Move{}
	}
	return kt[depthFromRoot]
}

func (kt *KillerMoveTableT) Reset() {
	*kt = KillerMoveTableT{}
}

// History heuristic - quiet moves that caused cutoffs anywhere in the tree get
// a score bump of depthToGo^2, keyed by (color, piece type, to-square).
type HistoryHeuristicT [2][7][64]uint32

func (hh *HistoryHeuristicT) add(white bool, piece dragon.Piece, to uint8, depthToGo int) {
	hh[colorIndex(white)][piece][to] += uint32(depthToGo * depthToGo)
}

func (hh *HistoryHeuristicT) score(white bool, piece dragon.Piece, to uint8) uint32 {
	return hh[colorIndex(white)][piece][to]
}

// Halve all scores - used between searches so stale history fades out
func (hh *HistoryHeuristicT) Decay() {
	for c := range hh {
		for p := range hh[c] {
			for sq := range hh[c][p] {
				hh[c][p][sq] >>= 1
			}
		}
	}
}

func (hh *HistoryHeuristicT) Reset() {
	*hh = HistoryHeuristicT{}
}
