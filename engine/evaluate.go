package engine

import (
	"math"
	"math/bits"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Eval in centi-pawns, i.e. 100 === 1 pawn
type EvalCp int16

const MyCheckMateEval EvalCp = math.MaxInt16
const YourCheckMateEval EvalCp = -math.MaxInt16 // don't use MinInt16 cos it's not symmetrical with MaxInt16

// Sentinel for results that carry no eval, e.g. a failed TT probe
const InvalidEval EvalCp = math.MinInt16

const DrawEval EvalCp = 0

// Evals outside this range are mate-in-N scores
const MateEvalThreshold EvalCp = MyCheckMateEval - 2*EvalCp(MaxPly)

// Static evals are clamped into this range so they can never collide with mate scores
const maxStaticEval EvalCp = 20000

func IsMateEval(eval EvalCp) bool {
	return eval > MateEvalThreshold || eval < -MateEvalThreshold
}

// Piece values
const nothingVal = 0
const pawnVal = 100
const knightVal = 320
const bishopVal = 330
const rookVal = 500
const queenVal = 900
const kingVal = 0

var pieceVals = [7]EvalCp{
	nothingVal,
	pawnVal,
	knightVal,
	bishopVal,
	rookVal,
	queenVal,
	kingVal}

const bishopPairVal = 50

// Relative weights of the eval components.
// Substitutable for tuning - the zero value of any field silences that component.
type WeightsT struct {
	Material      float64
	Position      float64
	Mobility      float64
	KingSafety    float64
	PawnStructure float64
}

var DefaultWeights = WeightsT{
	Material:      1.0,
	Position:      0.3,
	Mobility:      0.1,
	KingSafety:    0.5,
	PawnStructure: 0.2}

var Weights = DefaultWeights

// Piece-square tables from white's point of view - index 0 is square A1, index 63 is square H8.
// Black uses the same tables mirrored vertically (sq^56).
var pawnPosVals = [64]int8{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0}

var knightPosVals = [64]int8{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50}

var bishopPosVals = [64]int8{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20}

var rookPosVals = [64]int8{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0}

var queenPosVals = [64]int8{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20}

var kingPosVals = [64]int8{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30}

var kingEndgamePosVals = [64]int8{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50}

var piecePosVals = [7]*[64]int8{
	nil,
	&pawnPosVals,
	&knightPosVals,
	&bishopPosVals,
	&rookPosVals,
	&queenPosVals,
	&kingPosVals}

// Static eval only - no mate checks - from the perspective of the player to move
func NegaStaticEval(board *dragon.Board) EvalCp {
	staticEval := StaticEval(board)

	if board.Wtomove {
		return staticEval
	}
	return -staticEval
}

// Static eval only - no mate checks - from white's perspective.
// Never mutates the board.
func StaticEval(board *dragon.Board) EvalCp {
	endgame := isEndgame(board)

	material := materialVal(&board.White) - materialVal(&board.Black)
	position := piecesPosVal(&board.White, false, endgame) - piecesPosVal(&board.Black, true, endgame)
	mobility := mobilityVal(board)
	kingSafety := kingSafetyVal(board, endgame)
	pawnStructure := pawnStructureVal(board)

	eval := Weights.Material*float64(material) +
		Weights.Position*float64(position) +
		Weights.Mobility*float64(mobility) +
		Weights.KingSafety*float64(kingSafety) +
		Weights.PawnStructure*float64(pawnStructure)

	return clampStaticEval(eval)
}

func clampStaticEval(eval float64) EvalCp {
	if eval > float64(maxStaticEval) {
		return maxStaticEval
	}
	if eval < -float64(maxStaticEval) {
		return -maxStaticEval
	}
	return EvalCp(eval)
}

// Sum of individual piece values for one side, including the bishop-pair bonus
func materialVal(bitboards *dragon.Bitboards) int {
	val := pawnVal * bits.OnesCount64(bitboards.Pawns)
	val += knightVal * bits.OnesCount64(bitboards.Knights)
	val += bishopVal * bits.OnesCount64(bitboards.Bishops)
	val += rookVal * bits.OnesCount64(bitboards.Rooks)
	val += queenVal * bits.OnesCount64(bitboards.Queens)

	if bits.OnesCount64(bitboards.Bishops) >= 2 {
		val += bishopPairVal
	}

	return val
}

// End-game means no queens on the board, or few major/minor pieces left
func isEndgame(board *dragon.Board) bool {
	if board.White.Queens|board.Black.Queens == 0 {
		return true
	}

	nonPawnPieces := (board.White.All & ^board.White.Pawns & ^board.White.Kings) |
		(board.Black.All & ^board.Black.Pawns & ^board.Black.Kings)

	return bits.OnesCount64(nonPawnPieces) <= 6
}

// Sum of piece-square values for one side
func piecesPosVal(bitboards *dragon.Bitboards, mirror bool, endgame bool) int {
	val := pieceTypePosVal(bitboards.Pawns, &pawnPosVals, mirror)
	val += pieceTypePosVal(bitboards.Knights, &knightPosVals, mirror)
	val += pieceTypePosVal(bitboards.Bishops, &bishopPosVals, mirror)
	val += pieceTypePosVal(bitboards.Rooks, &rookPosVals, mirror)
	val += pieceTypePosVal(bitboards.Queens, &queenPosVals, mirror)

	kingTable := &kingPosVals
	if endgame {
		kingTable = &kingEndgamePosVals
	}
	val += pieceTypePosVal(bitboards.Kings, kingTable, mirror)

	return val
}

// Sum of piece-square values for a particular type of piece
func pieceTypePosVal(bitmask uint64, posVals *[64]int8, mirror bool) int {
	val := 0

	for bitmask != 0 {
		pos := bits.TrailingZeros64(bitmask)
		bitmask &= bitmask - 1

		if mirror {
			pos ^= 56
		}
		val += int(posVals[pos])
	}

	return val
}

const mobilityUnit = 10

// Pseudo-legal attack-square difference (own pieces excluded).
// Cheaper than counting legal moves and never mutates the board.
func mobilityVal(board *dragon.Board) int {
	occupied := board.White.All | board.Black.All

	wAttacks := pieceAttacks(&board.White, occupied) | WPawnAttacks(board.White.Pawns)
	bAttacks := pieceAttacks(&board.Black, occupied) | BPawnAttacks(board.Black.Pawns)

	wCount := bits.OnesCount64(wAttacks & ^board.White.All)
	bCount := bits.OnesCount64(bAttacks & ^board.Black.All)

	return (wCount - bCount) * mobilityUnit
}

// All squares attacked by one side's non-pawn pieces
func pieceAttacks(bitboards *dragon.Bitboards, occupied uint64) uint64 {
	var attacks uint64

	for bb := bitboards.Knights; bb != 0; bb &= bb - 1 {
		attacks |= KnightAttacks(uint8(bits.TrailingZeros64(bb)))
	}
	for bb := bitboards.Bishops; bb != 0; bb &= bb - 1 {
		attacks |= BishopAttacks(uint8(bits.TrailingZeros64(bb)), occupied)
	}
	for bb := bitboards.Rooks; bb != 0; bb &= bb - 1 {
		attacks |= RookAttacks(uint8(bits.TrailingZeros64(bb)), occupied)
	}
	for bb := bitboards.Queens; bb != 0; bb &= bb - 1 {
		attacks |= QueenAttacks(uint8(bits.TrailingZeros64(bb)), occupied)
	}
	attacks |= KingAttacks(uint8(bits.TrailingZeros64(bitboards.Kings)))

	return attacks
}

// Bonus per pawn shielding its king
const kingShieldPawnVal = 10

// Penalty for the king sitting on an open file
const kingOpenFilePenalty = -20

// Naive king safety - pawn shield directly in front of the king, and open-file exposure.
// From white's perspective. Irrelevant in the end-game.
func kingSafetyVal(board *dragon.Board, endgame bool) int {
	if endgame {
		return 0
	}

	return kingSafetySideVal(board.White.Kings, board.White.Pawns, false) -
		kingSafetySideVal(board.Black.Kings, board.Black.Pawns, true)
}

func kingSafetySideVal(kings uint64, pawns uint64, black bool) int {
	forward := N(kings)
	if black {
		forward = S(kings)
	}
	shield := (forward | W(forward) | E(forward)) & pawns

	val := bits.OnesCount64(shield) * kingShieldPawnVal

	if FileFill(kings)&pawns == 0 {
		val += kingOpenFilePenalty
	}

	return val
}
