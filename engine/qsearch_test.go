package engine

import (
	"testing"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
)

// With no noisy moves available the qsearch eval is the stand-pat eval exactly
func TestQSearchQuietLeafIsStandPat(t *testing.T) {
	board := dragon.ParseFen(dragon.Startpos)
	s := newOrderingSearch(&board)

	move, eval := s.QSearchNegAlphaBeta(0, YourCheckMateEval, MyCheckMateEval)
	require.Equal(t, NoMove, move)
	require.Equal(t, NegaStaticEval(&board), eval)
}

func TestQSearchStandPatBetaCut(t *testing.T) {
	board := dragon.ParseFen(dragon.Startpos)
	s := newOrderingSearch(&board)

	beta := NegaStaticEval(&board) - 10
	move, eval := s.QSearchNegAlphaBeta(0, YourCheckMateEval, beta)
	require.Equal(t, NoMove, move)
	require.Equal(t, beta, eval, "fail-hard at beta")
}

// White king e1, pawn e4; black king e8, queen d5 hanging
func TestQSearchTakesHangingQueen(t *testing.T) {
	board := dragon.ParseFen("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	s := newOrderingSearch(&board)

	standPat := NegaStaticEval(&board)
	move, eval := s.QSearchNegAlphaBeta(0, YourCheckMateEval, MyCheckMateEval)

	require.Equal(t, "e4d5", move.String())
	require.Greater(t, eval, standPat+500)
}

// White queen a2 can only grab the defended b3 pawn, which loses the queen.
// The qsearch must prefer standing pat.
func TestQSearchRefusesLosingCapture(t *testing.T) {
	board := dragon.ParseFen("4k3/8/8/8/2p5/1p6/Q7/4K3 w - - 0 1")
	s := newOrderingSearch(&board)

	move, eval := s.QSearchNegAlphaBeta(0, YourCheckMateEval, MyCheckMateEval)
	require.Equal(t, NoMove, move)
	require.Equal(t, NegaStaticEval(&board), eval)
}

func TestQSearchDisabled(t *testing.T) {
	defer func(old bool) { UseQSearch = old }(UseQSearch)
	UseQSearch = false

	board := dragon.ParseFen("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	s := newOrderingSearch(&board)

	move, eval := s.QSearchNegAlphaBeta(0, YourCheckMateEval, MyCheckMateEval)
	require.Equal(t, NoMove, move)
	require.Equal(t, NegaStaticEval(&board), eval)
}

func TestGenerateNoisyMoves(t *testing.T) {
	// Both e4 captures are noisy, all king moves are quiet
	board := dragon.ParseFen(orderingFen)

	noisy := generateNoisyMoves(&board)
	require.Len(t, noisy, 2)
	for _, move := range noisy {
		require.True(t, isCaptureOrPromo(&board, move))
	}

	// Startpos has no noisy moves at all
	startpos := dragon.ParseFen(dragon.Startpos)
	require.Empty(t, generateNoisyMoves(&startpos))
}
