// Zobrist hashing with incremental update.
// The rules library keeps castling/en-passant state private, so the search threads
// an explicit HashStateT through the tree and recovers those fields from FEN when
// hashing a position from scratch.

package engine

import (
	"math/bits"
	"math/rand"
	"strings"

	dragon "github.com/dylhunn/dragontoothmg"
)

type CastleRightsT uint8

const (
	CastleWK CastleRightsT = 1 << iota
	CastleWQ
	CastleBK
	CastleBQ
)

const NoEpFile int8 = -1

// Full hashing state for a position - the key plus the castling/ep facts needed
// to update it incrementally
type HashStateT struct {
	Key    uint64
	Castle CastleRightsT
	EpFile int8
}

// Fixed seed so that hash keys (and so TT behaviour) are reproducible run to run
const zobristSeed = 0x5ca1ab1e5ca1ab1e

var zobristPieces [2][7][64]uint64
var zobristSide uint64
var zobristCastle [4]uint64
var zobristEpFile [8]uint64

func init() {
	rng := rand.New(rand.NewSource(zobristSeed))

	for color := 0; color < 2; color++ {
		for piece := dragon.Pawn; piece <= dragon.King; piece++ {
			for sq := 0; sq < 64; sq++ {
				zobristPieces[color][piece][sq] = rng.Uint64()
			}
		}
	}
	zobristSide = rng.Uint64()
	for i := range zobristCastle {
		zobristCastle[i] = rng.Uint64()
	}
	for i := range zobristEpFile {
		zobristEpFile[i] = rng.Uint64()
	}
}

func colorIndex(white bool) int {
	if white {
		return 0
	}
	return 1
}

// From-scratch hash of a position
func HashBoard(board *dragon.Board) uint64 {
	return StateFromBoard(board).Key
}

// From-scratch hashing state of a position
func StateFromBoard(board *dragon.Board) HashStateT {
	var key uint64

	key ^= sideKeys(&board.White, 0)
	key ^= sideKeys(&board.Black, 1)

	if board.Wtomove {
		key ^= zobristSide
	}

	castle, epFile := castleAndEpFromFen(board.ToFen())
	for i := uint(0); i < 4; i++ {
		if castle&(1<<i) != 0 {
			key ^= zobristCastle[i]
		}
	}
	if epFile != NoEpFile {
		key ^= zobristEpFile[epFile]
	}

	return HashStateT{Key: key, Castle: castle, EpFile: epFile}
}

func sideKeys(bitboards *dragon.Bitboards, color int) uint64 {
	var key uint64
	key ^= pieceTypeKeys(bitboards.Pawns, color, dragon.Pawn)
	key ^= pieceTypeKeys(bitboards.Knights, color, dragon.Knight)
	key ^= pieceTypeKeys(bitboards.Bishops, color, dragon.Bishop)
	key ^= pieceTypeKeys(bitboards.Rooks, color, dragon.Rook)
	key ^= pieceTypeKeys(bitboards.Queens, color, dragon.Queen)
	key ^= pieceTypeKeys(bitboards.Kings, color, dragon.King)
	return key
}

func pieceTypeKeys(bitmask uint64, color int, piece dragon.Piece) uint64 {
	var key uint64
	for bb := bitmask; bb != 0; bb &= bb - 1 {
		sq := bits.TrailingZeros64(bb)
		key ^= zobristPieces[color][piece][sq]
	}
	return key
}

// Castling rights and en-passant file from the 3rd and 4th FEN fields
func castleAndEpFromFen(fen string) (CastleRightsT, int8) {
	fields := strings.Fields(fen)

	var castle CastleRightsT
	epFile := NoEpFile

	if len(fields) < 4 {
		return castle, epFile
	}

	for _, c := range fields[2] {
		switch c {
		case 'K':
			castle |= CastleWK
		case 'Q':
			castle |= CastleWQ
		case 'k':
			castle |= CastleBK
		case 'q':
			castle |= CastleBQ
		}
	}

	if fields[3] != "-" {
		epFile = int8(fields[3][0] - 'a')
	}

	return castle, epFile
}

// ChildHashState returns the hashing state after the given move.
// Must be called with the board still in the parent (pre-move) position.
func ChildHashState(st HashStateT, board *dragon.Board, move dragon.Move) HashStateT {
	from := uint8(move.From())
	to := uint8(move.To())
	fromBB := SquareBB(from)
	toBB := SquareBB(to)

	white := board.Wtomove
	us, them := &board.White, &board.Black
	if !white {
		us, them = &board.Black, &board.White
	}
	usIdx := colorIndex(white)
	themIdx := usIdx ^ 1

	mover := pieceTypeAt(us, fromBB)
	victim := pieceTypeAt(them, toBB)

	// En passant: the victim pawn is not on the destination square
	victimSq := to
	if mover == dragon.Pawn && victim == dragon.Nothing && FileOf(from) != FileOf(to) {
		victim = dragon.Pawn
		victimSq = RankOf(from)<<3 | FileOf(to)
	}

	key := st.Key

	key ^= zobristPieces[usIdx][mover][from]
	placed := mover
	if promote := move.Promote(); promote != dragon.Nothing {
		placed = promote
	}
	key ^= zobristPieces[usIdx][placed][to]

	if victim != dragon.Nothing {
		key ^= zobristPieces[themIdx][victim][victimSq]
	}

	// Castling moves the rook too
	if mover == dragon.King {
		switch {
		case to == from+2: // king-side
			key ^= zobristPieces[usIdx][dragon.Rook][from+3]
			key ^= zobristPieces[usIdx][dragon.Rook][from+1]
		case from == to+2: // queen-side
			key ^= zobristPieces[usIdx][dragon.Rook][from-4]
			key ^= zobristPieces[usIdx][dragon.Rook][from-1]
		}
	}

	newCastle := updateCastleRights(st.Castle, mover, white, from, victim, victimSq)
	for i := uint(0); i < 4; i++ {
		if (st.Castle^newCastle)&(1<<i) != 0 {
			key ^= zobristCastle[i]
		}
	}

	if st.EpFile != NoEpFile {
		key ^= zobristEpFile[st.EpFile]
	}
	newEpFile := NoEpFile
	if mover == dragon.Pawn && (to == from+16 || from == to+16) {
		newEpFile = int8(FileOf(from))
		key ^= zobristEpFile[newEpFile]
	}

	key ^= zobristSide

	return HashStateT{Key: key, Castle: newCastle, EpFile: newEpFile}
}

func updateCastleRights(castle CastleRightsT, mover dragon.Piece, white bool, from uint8, victim dragon.Piece, victimSq uint8) CastleRightsT {
	if mover == dragon.King {
		if white {
			castle &^= CastleWK | CastleWQ
		} else {
			castle &^= CastleBK | CastleBQ
		}
	}

	if mover == dragon.Rook {
		castle &^= rookSquareRight(from)
	}
	if victim == dragon.Rook {
		castle &^= rookSquareRight(victimSq)
	}

	return castle
}

func rookSquareRight(sq uint8) CastleRightsT {
	switch sq {
	case 0: // a1
		return CastleWQ
	case 7: // h1
		return CastleWK
	case 56: // a8
		return CastleBQ
	case 63: // h8
		return CastleBK
	}
	return 0
}
