// Bitboard utilities
// Note bit 0 (low bit) is square A1, bit 63 (hi bit) is square H8

package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
)

const FileA uint64 = 0x0101010101010101
const FileH uint64 = 0x8080808080808080

func N(bb uint64) uint64 { return bb << 8 }

func S(bb uint64) uint64 { return bb >> 8 }

func W(bb uint64) uint64 { return (bb & ^FileA) >> 1 }

func E(bb uint64) uint64 { return (bb & ^FileH) << 1 }

func NFill(bb uint64) uint64 {
	fill := bb
	fill = fill | (fill << 8)
	fill = fill | (fill << 16)
	fill = fill | (fill << 32)
	return fill
}

func SFill(bb uint64) uint64 {
	fill := bb
	fill = fill | (fill >> 8)
	fill = fill | (fill >> 16)
	fill = fill | (fill >> 32)
	return fill
}

// All squares of the files occupied by bb
func FileFill(bb uint64) uint64 {
	return NFill(bb) | SFill(bb)
}

func FileOf(sq uint8) uint8 { return sq & 7 }

func RankOf(sq uint8) uint8 { return sq >> 3 }

func SquareBB(sq uint8) uint64 { return uint64(1) << sq }

func FileBB(file uint8) uint64 { return FileA << file }

func WPawnScope(wPawns uint64) uint64 {
	// forward
	n := N(wPawns)
	// take west
	nw := W(n)
	// take east
	ne := E(n)

	// Pawns' influence is all the squares forward from there
	return NFill(n | nw | ne)
}

func BPawnScope(bPawns uint64) uint64 {
	// forward
	s := S(bPawns)
	// take west
	sw := W(s)
	// take east
	se := E(s)

	// Pawns' influence is all the squares forward from there
	return SFill(s | sw | se)
}

// Pawn attacks and defenses
func WPawnAttacks(wPawns uint64) uint64 {
	n := N(wPawns)
	return W(n) | E(n)
}

// Pawn attacks and defenses
func BPawnAttacks(bPawns uint64) uint64 {
	s := S(bPawns)
	return W(s) | E(s)
}

// Precomputed step-piece attack sets
var knightAttacksBB [64]uint64
var kingAttacksBB [64]uint64

func init() {
	for sq := uint8(0); sq < 64; sq++ {
		bb := SquareBB(sq)

		nne := E(N(N(bb)))
		nnw := W(N(N(bb)))
		sse := E(S(S(bb)))
		ssw := W(S(S(bb)))
		nee := N(E(E(bb)))
		see := S(E(E(bb)))
		nww := N(W(W(bb)))
		sww := S(W(W(bb)))
		knightAttacksBB[sq] = nne | nnw | sse | ssw | nee | see | nww | sww

		kingAttacksBB[sq] = N(bb) | S(bb) | E(bb) | W(bb) | N(E(bb)) | N(W(bb)) | S(E(bb)) | S(W(bb))
	}
}

func KnightAttacks(sq uint8) uint64 { return knightAttacksBB[sq] }

func KingAttacks(sq uint8) uint64 { return kingAttacksBB[sq] }

// Slider attacks by ray-walking - slow-ish but only used in the (leaf) static eval
func slidingAttacks(sq uint8, occupied uint64, fileSteps []int8, rankSteps []int8) uint64 {
	var attacks uint64
	for i := range fileSteps {
		file, rank := int8(FileOf(sq)), int8(RankOf(sq))
		for {
			file += fileSteps[i]
			rank += rankSteps[i]
			if file < 0 || file > 7 || rank < 0 || rank > 7 {
				break
			}
			to := SquareBB(uint8(rank)<<3 | uint8(file))
			attacks |= to
			if occupied&to != 0 {
				break
			}
		}
	}
	return attacks
}

var bishopFileSteps = []int8{1, 1, -1, -1}
var bishopRankSteps = []int8{1, -1, 1, -1}
var rookFileSteps = []int8{1, -1, 0, 0}
var rookRankSteps = []int8{0, 0, 1, -1}

func BishopAttacks(sq uint8, occupied uint64) uint64 {
	return slidingAttacks(sq, occupied, bishopFileSteps, bishopRankSteps)
}

func RookAttacks(sq uint8, occupied uint64) uint64 {
	return slidingAttacks(sq, occupied, rookFileSteps, rookRankSteps)
}

func QueenAttacks(sq uint8, occupied uint64) uint64 {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// Piece type on the given square bit for one side, or dragon.Nothing
func pieceTypeAt(bitboards *dragon.Bitboards, sqBB uint64) dragon.Piece {
	if bitboards.Pawns&sqBB != 0 {
		return dragon.Pawn
	}
	if bitboards.Knights&sqBB != 0 {
		return dragon.Knight
	}
	if bitboards.Bishops&sqBB != 0 {
		return dragon.Bishop
	}
	if bitboards.Rooks&sqBB != 0 {
		return dragon.Rook
	}
	if bitboards.Queens&sqBB != 0 {
		return dragon.Queen
	}
	if bitboards.Kings&sqBB != 0 {
		return dragon.King
	}
	return dragon.Nothing
}
