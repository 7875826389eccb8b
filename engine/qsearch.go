// Quiescence search - resolves captures and promotions at the horizon so that
// the leaf eval is taken from a tactically quiet position.

package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
)

// Noisy moves only - captures and promotions.
// Filters in place, reusing the legal moves slice.
func filterNoisyMoves(board *dragon.Board, legalMoves []dragon.Move) []dragon.Move {
	noisy := legalMoves[:0]
	for _, move := range legalMoves {
		if isCaptureOrPromo(board, move) {
			noisy = append(noisy, move)
		}
	}

	return noisy
}

func generateNoisyMoves(board *dragon.Board) []dragon.Move {
	return filterNoisyMoves(board, board.GenerateLegalMoves())
}

// Return the best move and eval from captures-only search with stand-pat.
// Fail-hard at beta like the main search.
func (s *SearchT) QSearchNegAlphaBeta(depthFromRoot int, alpha EvalCp, beta EvalCp) (dragon.Move, EvalCp) {
	s.stats.QNodes++

	if !UseQSearch {
		return NoMove, NegaStaticEval(s.board)
	}

	legalMoves := s.board.GenerateLegalMoves()

	// Checkmate or stalemate
	if len(legalMoves) == 0 {
		s.stats.QMates++
		return NoMove, negaMateEval(s.board, depthFromRoot)
	}

	// Stand pat - the mover is not obliged to capture, so the static eval is a
	// lower bound on this node unless every continuation is worse
	standPat := NegaStaticEval(s.board)

	if standPat >= beta {
		s.stats.QPatCuts++
		return NoMove, beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	noisyMoves := filterNoisyMoves(s.board, legalMoves)

	if len(noisyMoves) == 0 {
		// Quiet leaf - the stand-pat eval is the answer
		s.stats.QPats++
		return NoMove, alpha
	}

	if len(noisyMoves) > 1 {
		orderNoisyMoves(s.board, noisyMoves)
	}

	bestMove := NoMove

	for _, move := range noisyMoves {
		// Delta pruning - skip captures that can't plausibly raise alpha even
		// with a generous margin. Not sound near mate scores.
		if UseDeltaPruning && !IsMateEval(alpha) {
			_, victim := moverAndVictim(s.board, move)
			gain := pieceVals[victim]
			if promote := move.Promote(); promote != dragon.Nothing {
				gain += pieceVals[promote] - pawnVal
			}
			if standPat+gain+DeltaPruningMargin <= alpha {
				s.stats.QDeltaPrunes++
				continue
			}
		}

		unapply := s.board.Apply(move)
		_, eval := s.QSearchNegAlphaBeta(depthFromRoot+1, -beta, -alpha)
		eval = -eval // back to our perspective
		unapply()

		if eval >= beta {
			s.stats.QCutNodes++
			return move, beta
		}
		if eval > alpha {
			alpha = eval
			bestMove = move
		}
	}

	return bestMove, alpha
}
