// Heuristic move ordering - TT move, then captures by MVV-LVA, then killer
// moves, then quiet moves by history score.

package engine

import (
	"sort"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Score bands - each class strictly outranks the ones below it
const (
	ttMoveScore      = 1 << 30
	captureBaseScore = 1 << 24
	killerBaseScore  = 1 << 20
)

// Mover and victim piece types for a move on the given (pre-move) board.
// The victim is dragon.Nothing for a quiet move, and a pawn for en passant.
func moverAndVictim(board *dragon.Board, move dragon.Move) (dragon.Piece, dragon.Piece) {
	from := uint8(move.From())
	to := uint8(move.To())

	us, them := &board.White, &board.Black
	if !board.Wtomove {
		us, them = &board.Black, &board.White
	}

	mover := pieceTypeAt(us, SquareBB(from))
	victim := pieceTypeAt(them, SquareBB(to))

	if mover == dragon.Pawn && victim == dragon.Nothing && FileOf(from) != FileOf(to) {
		victim = dragon.Pawn // en passant
	}

	return mover, victim
}

func isCaptureOrPromo(board *dragon.Board, move dragon.Move) bool {
	_, victim := moverAndVictim(board, move)
	return victim != dragon.Nothing || move.Promote() != dragon.Nothing
}

// Most-valuable-victim least-valuable-attacker score, promotion piece folded
// into the victim value so promotions rank with captures
func mvvLva(board *dragon.Board, move dragon.Move) int {
	mover, victim := moverAndVictim(board, move)

	score := int(pieceVals[victim]) - int(pieceVals[mover])
	if promote := move.Promote(); promote != dragon.Nothing {
		score += int(pieceVals[promote])
	}
	return score
}

func (s *SearchT) moveScore(move dragon.Move, ttMove dragon.Move, killers [NKillersPerPly]dragon.Move) int {
	if move == ttMove {
		return ttMoveScore
	}

	if isCaptureOrPromo(s.board, move) {
		return captureBaseScore + mvvLva(s.board, move)
	}

	if UseKillerMoves {
		for i := 0; i < NKillersPerPly; i++ {
			if move == killers[i] {
				return killerBaseScore - i
			}
		}
	}

	if UseHistoryHeuristic {
		mover, _ := moverAndVictim(s.board, move)
		score := s.history.score(s.board.Wtomove, mover, uint8(move.To()))
		if score >= killerBaseScore {
			score = killerBaseScore - 1
		}
		return int(score)
	}

	return 0
}

type scoredMoveT struct {
	move  dragon.Move
	score int
}

func sortScoredMoves(moves []dragon.Move, scored []scoredMoveT) {
	// Stable so that equally-scored moves keep their generation order
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	for i := range scored {
		moves[i] = scored[i].move
	}
}

// Sort the moves best-first
func (s *SearchT) orderMoves(moves []dragon.Move, ttMove dragon.Move, depthFromRoot int) {
	killers := s.killers.killersForPly(depthFromRoot)

	scored := make([]scoredMoveT, len(moves))
	for i, move := range moves {
		scored[i] = scoredMoveT{move, s.moveScore(move, ttMove, killers)}
	}

	sortScoredMoves(moves, scored)
}

// Qsearch ordering - pure MVV-LVA over the noisy moves
func orderNoisyMoves(board *dragon.Board, moves []dragon.Move) {
	scored := make([]scoredMoveT, len(moves))
	for i, move := range moves {
		scored[i] = scoredMoveT{move, mvvLva(board, moves[i])}
	}

	sortScoredMoves(moves, scored)
}
