package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
)

// Return the eval for stalemate or checkmate from current mover's perspective.
// Only valid if there are no legal moves.
func negaMateEval(board *dragon.Board, depthFromRoot int) EvalCp {
	if board.OurKingInCheck() {
		// checkmate - closer to root is better
		return YourCheckMateEval + EvalCp(depthFromRoot)
	}
	// stalemate
	return DrawEval
}

// Probe the TT. Returns the TT move hint, the hit eval, and whether the hit
// cuts the node entirely.
func (s *SearchT) probeTT(zobrist uint64, depthToGo int, alpha *EvalCp, beta *EvalCp) (dragon.Move, EvalCp, bool) {
	if !UseTT {
		return NoMove, InvalidEval, false
	}

	entry, isHit := s.tt.Probe(zobrist)
	if !isHit {
		return NoMove, InvalidEval, false
	}
	s.stats.TTHits++

	ttMove := entry.bestMove

	if int(entry.depthToGo) >= depthToGo {
		switch entry.evalType {
		case TTEvalExact:
			s.stats.TTTrueEvals++
			return ttMove, entry.eval, true
		case TTEvalLowerBound:
			if entry.eval > *alpha {
				*alpha = entry.eval
			}
		case TTEvalUpperBound:
			if entry.eval < *beta {
				*beta = entry.eval
			}
		}
		if *alpha >= *beta {
			s.stats.TTCuts++
			return ttMove, entry.eval, true
		}
	}

	return ttMove, InvalidEval, false
}

// Return the best eval attainable through alpha-beta from the given position,
// along with the move leading to the principal variation.
// Fail-hard: the result is clamped to [alpha, beta].
func (s *SearchT) NegAlphaBeta(depthToGo int, depthFromRoot int, alpha EvalCp, beta EvalCp, hashState HashStateT) (dragon.Move, EvalCp) {

	// Bail if we've timed out.
	// Return the worst possible eval (opponent checkmate) to invalidate this incomplete search branch.
	if isTimedOut(s.timeout) {
		return NoMove, YourCheckMateEval
	}

	s.stats.Nodes++

	// Draw detection - never at the root, where we must produce a move
	if depthFromRoot > 0 {
		if s.board.Halfmoveclock >= 100 {
			s.stats.Draws50Move++
			return NoMove, DrawEval
		}
		// We consider 2-fold repetition to be a draw, since if a repeat can be
		// forced then it can be forced again.
		if UsePosRepetition && s.ht[hashState.Key] > 1 {
			s.stats.PosRepetitions++
			return NoMove, DrawEval
		}
	}

	if depthToGo <= 0 {
		return s.QSearchNegAlphaBeta(depthFromRoot, alpha, beta)
	}

	s.stats.NonLeafs++

	// Remember these to classify our final eval for the TT
	origAlpha := alpha

	ttMove, ttEval, ttIsCut := s.probeTT(hashState.Key, depthToGo, &alpha, &beta)
	if ttIsCut {
		return ttMove, ttEval
	}

	legalMoves := s.board.GenerateLegalMoves()

	// Checkmate or stalemate
	if len(legalMoves) == 0 {
		s.stats.Mates++
		return NoMove, negaMateEval(s.board, depthFromRoot)
	}

	// Seed the root ordering with the best move of the previous iteration
	if depthFromRoot == 0 && ttMove == NoMove {
		ttMove = s.seedMove
	}

	if UseMoveOrdering && len(legalMoves) > 1 {
		s.orderMoves(legalMoves, ttMove, depthFromRoot)
	}

	bestMove := NoMove
	bestEval := YourCheckMateEval
	timedOut := false

	for i, move := range legalMoves {
		mover, victim := moverAndVictim(s.board, move)
		isQuiet := victim == dragon.Nothing && move.Promote() == dragon.Nothing

		childHashState := ChildHashState(hashState, s.board, move)

		unapply := s.board.Apply(move)
		s.ht.Add(childHashState.Key)

		_, eval := s.NegAlphaBeta(depthToGo-1, depthFromRoot+1, -beta, -alpha, childHashState)
		eval = -eval // back to our perspective

		s.ht.Remove(childHashState.Key)
		unapply()

		// Bail cleanly without polluting search results if we have timed out.
		// The child eval may be the bail-out sentinel, so it must not be used.
		if isTimedOut(s.timeout) {
			timedOut = true
			break
		}

		if eval > bestEval {
			bestEval, bestMove = eval, move
		}
		if bestEval > alpha {
			alpha = bestEval
		}

		if alpha >= beta {
			// beta cut-off
			s.stats.CutNodes++
			if i == 0 {
				s.stats.FirstChildCuts++
			}

			if isQuiet {
				killers := s.killers.killersForPly(depthFromRoot)
				if move == killers[0] || move == killers[1] {
					s.stats.KillerCuts++
				} else {
					s.stats.HistoryCuts++
				}

				s.killers.addKillerMove(move, depthFromRoot)
				if UseHistoryHeuristic {
					s.history.add(s.board.Wtomove, mover, uint8(move.To()), depthToGo)
				}
			}

			if UseTT && !isTimedOut(s.timeout) {
				s.tt.Store(hashState.Key, beta, move, depthToGo, TTEvalLowerBound)
			}

			// Fail-hard at beta
			return move, beta
		}
	}

	if timedOut {
		// Partial result - never write it back to the TT
		return bestMove, bestEval
	}

	evalType := TTEvalExact
	if bestEval <= origAlpha {
		evalType = TTEvalUpperBound
	}
	if UseTT && !isTimedOut(s.timeout) {
		s.tt.Store(hashState.Key, bestEval, bestMove, depthToGo, evalType)
	}

	return bestMove, bestEval
}
