package engine

import (
	"math/bits"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Penalty per extra pawn stacked on a file
const doubledPawnPenalty = -20

// Penalty per pawn with no friendly pawn on an adjacent file
const isolatedPawnPenalty = -15

// Passed-pawn bonus by rank of advancement (white's rank index; black mirrored)
var passedPawnBonus = [8]int{0, 20, 30, 40, 50, 60, 80, 0}

// Pawn-structure eval from white's perspective
func pawnStructureVal(board *dragon.Board) int {
	wPawns := board.White.Pawns
	bPawns := board.Black.Pawns

	return pawnSideVal(wPawns, bPawns, false) - pawnSideVal(bPawns, wPawns, true)
}

func pawnSideVal(pawns uint64, oppPawns uint64, black bool) int {
	val := doubledPawnVal(pawns, black)
	val += isolatedPawnVal(pawns)
	val += passedPawnVal(pawns, oppPawns, black)
	return val
}

// A pawn with a friendly pawn somewhere ahead of it on its own file is doubled
func doubledPawnVal(pawns uint64, black bool) int {
	var telestop uint64
	if black {
		telestop = SFill(S(pawns))
	} else {
		telestop = NFill(N(pawns))
	}
	doubled := telestop & pawns

	return bits.OnesCount64(doubled) * doubledPawnPenalty
}

// A pawn is isolated if no friendly pawn sits on an adjacent file
func isolatedPawnVal(pawns uint64) int {
	neighbourFiles := FileFill(W(pawns)) | FileFill(E(pawns))
	isolated := pawns & ^neighbourFiles

	return bits.OnesCount64(isolated) * isolatedPawnPenalty
}

// A pawn is passed if no enemy pawn can ever block or capture it
func passedPawnVal(pawns uint64, oppPawns uint64, black bool) int {
	var oppScope uint64
	if black {
		oppScope = WPawnScope(oppPawns)
	} else {
		oppScope = BPawnScope(oppPawns)
	}
	passed := pawns & ^oppScope

	val := 0
	for bb := passed; bb != 0; bb &= bb - 1 {
		sq := uint8(bits.TrailingZeros64(bb))
		rank := RankOf(sq)
		if black {
			rank = 7 - rank
		}
		val += passedPawnBonus[rank]
	}

	return val
}
