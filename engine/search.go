package engine

import (
	"math/bits"
	"sync/atomic"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Sentinel for positions the search refuses to touch
var ErrInvalidPosition = errors.New("engine: invalid position")

// Game-end classification for a position
type TerminalT uint8

const (
	TerminalNone TerminalT = iota
	TerminalCheckmate
	TerminalStalemate
	TerminalDraw // 50-move rule
)

func TerminalState(board *dragon.Board) TerminalT {
	if len(board.GenerateLegalMoves()) == 0 {
		if board.OurKingInCheck() {
			return TerminalCheckmate
		}
		return TerminalStalemate
	}
	if board.Halfmoveclock >= 100 {
		return TerminalDraw
	}
	return TerminalNone
}

// SessionT owns the state that persists between searches of the same game -
// the transposition table and the killer/history heuristics.
type SessionT struct {
	tt      *TranspositionTableT
	killers KillerMoveTableT
	history HistoryHeuristicT
}

func NewSession(ttEntries int) *SessionT {
	if ttEntries <= 0 {
		ttEntries = DefaultTTSizeEntries
	}
	return &SessionT{tt: NewTranspositionTable(ttEntries)}
}

// NewGame discards all carried state
func (sn *SessionT) NewGame() {
	sn.tt = NewTranspositionTable(sn.tt.NEntries())
	sn.killers.Reset()
	sn.history.Reset()
}

// Per-search context threaded through the recursion
type SearchT struct {
	board    *dragon.Board
	ht       HistoryTableT
	tt       *TranspositionTableT
	killers  *KillerMoveTableT
	history  *HistoryHeuristicT
	seedMove dragon.Move // best move of the previous iterative-deepening iteration
	stats    SearchStatsT
	timeout  *uint32
}

func isTimedOut(timeout *uint32) bool {
	return atomic.LoadUint32(timeout) != 0
}

// Sanity checks on the position before we let the search loose on it.
// The rules library assumes structurally sound boards, so garbage in here
// means undefined behaviour further down.
func ValidatePosition(board *dragon.Board) error {
	if bits.OnesCount64(board.White.Kings) != 1 || bits.OnesCount64(board.Black.Kings) != 1 {
		return errors.Wrap(ErrInvalidPosition, "each side must have exactly one king")
	}

	if board.White.All&board.Black.All != 0 {
		return errors.Wrap(ErrInvalidPosition, "white and black occupancy overlap")
	}

	const backRanks = uint64(0xff) | uint64(0xff)<<56
	if (board.White.Pawns|board.Black.Pawns)&backRanks != 0 {
		return errors.Wrap(ErrInvalidPosition, "pawn on a back rank")
	}

	if bits.OnesCount64(board.White.Pawns) > 8 || bits.OnesCount64(board.Black.Pawns) > 8 {
		return errors.Wrap(ErrInvalidPosition, "too many pawns")
	}

	if bits.OnesCount64(board.White.All) > 16 || bits.OnesCount64(board.Black.All) > 16 {
		return errors.Wrap(ErrInvalidPosition, "too many pieces")
	}

	return nil
}

// Search runs iterative deepening up to maxDepth plies or the time budget,
// whichever bites first.
//
// ht is the game's position history for repetition detection - we mutate it
// during the search but always restore it. seedMove, if not NoMove, is tried
// first at the root - pass the best move of a previous search of this
// position. The timeout flag may be shared with the caller so an external
// stop can interrupt the search; pass nil if the time budget alone should
// control termination.
//
// Returns the best move, its eval from the mover's perspective, search stats,
// the last fully-completed depth, and the principal variation.
func (sn *SessionT) Search(board *dragon.Board, ht HistoryTableT, maxDepth int, timeBudgetMs int, seedMove dragon.Move, timeout *uint32) (dragon.Move, EvalCp, SearchStatsT, int, []dragon.Move, error) {
	if err := ValidatePosition(board); err != nil {
		return NoMove, 0, SearchStatsT{}, 0, nil, err
	}

	if ht == nil {
		ht = make(HistoryTableT)
	}
	if timeout == nil {
		timeout = new(uint32)
	}

	// No legal moves is not an error - report the terminal eval
	if len(board.GenerateLegalMoves()) == 0 {
		return NoMove, negaMateEval(board, 0), SearchStatsT{}, 0, nil, nil
	}

	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	if timeBudgetMs > 0 {
		timer := time.AfterFunc(time.Duration(timeBudgetMs)*time.Millisecond, func() {
			atomic.StoreUint32(timeout, 1)
		})
		defer timer.Stop()
	}

	sn.tt.NewSearch()
	if CarryHeuristics {
		sn.history.Decay()
	} else {
		sn.killers.Reset()
		sn.history.Reset()
	}

	s := &SearchT{
		board:    board,
		ht:       ht,
		tt:       sn.tt,
		killers:  &sn.killers,
		history:  &sn.history,
		seedMove: seedMove,
		timeout:  timeout}

	rootState := StateFromBoard(board)

	// Fallback so we always have a legal move even if depth 1 is interrupted
	legalMoves := board.GenerateLegalMoves()
	s.orderMoves(legalMoves, seedMove, 0)
	bestMove := legalMoves[0]
	bestEval := NegaStaticEval(board)
	finalDepth := 0

	start := time.Now()

	for depthToGo := MinDepth; depthToGo <= maxDepth; depthToGo++ {
		move, eval := s.NegAlphaBeta(depthToGo, 0, YourCheckMateEval, MyCheckMateEval, rootState)

		if isTimedOut(timeout) {
			// Partial iteration - keep the previous depth's result
			break
		}

		if move != NoMove {
			bestMove, bestEval, finalDepth = move, eval, depthToGo
			s.seedMove = move
		}

		elapsed := time.Since(start)
		log.Debug().
			Int("depth", depthToGo).
			Str("move", bestMove.String()).
			Int("eval-cp", int(bestEval)).
			Uint64("nodes", s.stats.Nodes).
			Int64("nps", nodesPerSecond(s.stats.Nodes, elapsed)).
			Msg("search iteration done")

		// A forced mate doesn't improve with depth
		if IsMateEval(eval) {
			break
		}

		// Not worth starting a depth we can't plausibly finish
		if timeBudgetMs > 0 && elapsed > time.Duration(timeBudgetMs*SearchCutoffPercent/100)*time.Millisecond {
			break
		}
	}

	pv := sn.PrincipalVariation(board, bestMove, MaxPVLen)

	if DumpSearchStats {
		s.stats.Dump(finalDepth)
	}

	return bestMove, bestEval, s.stats, finalDepth, pv, nil
}

func nodesPerSecond(nodes uint64, elapsed time.Duration) int64 {
	if elapsed <= 0 {
		return 0
	}
	return int64(float64(nodes) / elapsed.Seconds())
}

// PrincipalVariation walks TT best moves forward from the given position.
// Every move is validated against the legal move list, so a hash collision
// can truncate the line but never corrupt it.
func (sn *SessionT) PrincipalVariation(board *dragon.Board, firstMove dragon.Move, maxLen int) []dragon.Move {
	if firstMove == NoMove {
		return nil
	}

	b := *board // scratch copy
	pv := make([]dragon.Move, 0, maxLen)

	next := firstMove
	for len(pv) < maxLen {
		if !isLegalMove(&b, next) {
			break
		}
		pv = append(pv, next)
		b.Apply(next)

		entry, isHit := sn.tt.Probe(HashBoard(&b))
		if !isHit || entry.bestMove == NoMove {
			break
		}
		next = entry.bestMove
	}

	return pv
}

func isLegalMove(board *dragon.Board, move dragon.Move) bool {
	for _, legal := range board.GenerateLegalMoves() {
		if legal == move {
			return true
		}
	}
	return false
}
