// Endgame tablebase probing - exact win/draw/loss results for positions with
// few pieces, consulted before the search.

package tablebase

import (
	"math/bits"
	"os"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
)

// Win/draw/loss from the side to move's perspective
type WDL int8

const (
	WDLLoss        WDL = -2
	WDLBlessedLoss WDL = -1 // lost but drawn under the 50-move rule
	WDLDraw        WDL = 0
	WDLCursedWin   WDL = 1 // won but drawn under the 50-move rule
	WDLWin         WDL = 2
)

func (wdl WDL) String() string {
	switch wdl {
	case WDLLoss:
		return "loss"
	case WDLBlessedLoss:
		return "blessed-loss"
	case WDLDraw:
		return "draw"
	case WDLCursedWin:
		return "cursed-win"
	case WDLWin:
		return "win"
	}
	return "unknown"
}

type ProbeResultT struct {
	WDL WDL
	DTZ int // distance to zeroing move; 0 if unknown
}

// Eval converts a probe result to a centipawn score from the mover's
// perspective. Well inside the mate-score range so the search can
// still prefer a real mate line.
func (r ProbeResultT) Eval() int {
	switch r.WDL {
	case WDLWin:
		return 15000 - r.DTZ
	case WDLLoss:
		return -15000 + r.DTZ
	}
	return 0
}

// Prober answers exact endgame queries for positions with few enough pieces
type Prober interface {
	MaxPieces() int
	Probe(board *dragon.Board) (ProbeResultT, bool)
	BestMove(board *dragon.Board) (dragon.Move, bool)
}

// New returns the best prober available for the given tablebase path.
// Real tablebase files are optional - without them we still recognise
// insufficient-material dead draws.
func New(path string) Prober {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			log.Warn().Str("path", path).Err(err).Msg("tablebase path not usable, falling back to material prober")
		} else {
			log.Warn().Str("path", path).Msg("syzygy probing not supported, falling back to material prober")
		}
	}
	return MaterialProberT{}
}

// MaterialProberT recognises positions that are dead draws by insufficient
// material: K vs K, KN vs K and KB vs K.
type MaterialProberT struct{}

func (MaterialProberT) MaxPieces() int { return 3 }

func (p MaterialProberT) Probe(board *dragon.Board) (ProbeResultT, bool) {
	if !isInsufficientMaterial(board) {
		return ProbeResultT{}, false
	}
	return ProbeResultT{WDL: WDLDraw}, true
}

// BestMove returns any legal move - every move in a dead-draw position
// preserves the draw
func (p MaterialProberT) BestMove(board *dragon.Board) (dragon.Move, bool) {
	if _, ok := p.Probe(board); !ok {
		return 0, false
	}

	legalMoves := board.GenerateLegalMoves()
	if len(legalMoves) == 0 {
		return 0, false
	}
	return legalMoves[0], true
}

func isInsufficientMaterial(board *dragon.Board) bool {
	// Any pawn, rook or queen means mating material
	if board.White.Pawns|board.Black.Pawns != 0 {
		return false
	}
	if board.White.Rooks|board.Black.Rooks != 0 {
		return false
	}
	if board.White.Queens|board.Black.Queens != 0 {
		return false
	}

	minors := bits.OnesCount64(board.White.Knights | board.White.Bishops |
		board.Black.Knights | board.Black.Bishops)

	// K vs K, or a single minor piece on either side
	return minors <= 1
}
