// Plain unpruned negamax - far too slow for play, but it defines the value
// that alpha-beta must agree with, so the tests keep it honest.

package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
)

// Return the best move and eval by exhaustive negamax.
// Terminal handling is identical to NegAlphaBeta; leaves use the static eval.
func (s *SearchT) NegaMax(depthToGo int, depthFromRoot int, hashState HashStateT) (dragon.Move, EvalCp) {
	s.stats.Nodes++

	if depthFromRoot > 0 {
		if s.board.Halfmoveclock >= 100 {
			return NoMove, DrawEval
		}
		if UsePosRepetition && s.ht[hashState.Key] > 1 {
			return NoMove, DrawEval
		}
	}

	if depthToGo <= 0 {
		return NoMove, NegaStaticEval(s.board)
	}

	legalMoves := s.board.GenerateLegalMoves()

	if len(legalMoves) == 0 {
		return NoMove, negaMateEval(s.board, depthFromRoot)
	}

	bestMove := NoMove
	bestEval := YourCheckMateEval

	for _, move := range legalMoves {
		childHashState := ChildHashState(hashState, s.board, move)

		unapply := s.board.Apply(move)
		s.ht.Add(childHashState.Key)

		_, eval := s.NegaMax(depthToGo-1, depthFromRoot+1, childHashState)
		eval = -eval // back to our perspective

		s.ht.Remove(childHashState.Key)
		unapply()

		if eval > bestEval {
			bestEval, bestMove = eval, move
		}
	}

	return bestMove, bestEval
}
