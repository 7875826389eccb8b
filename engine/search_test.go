package engine

import (
	"testing"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
)

// Fool's-mate-ish position with white checkmated
const whiteMatedFen = "rnb1kbnr/pppp1ppp/4p3/8/5PPq/8/PPPPP2P/RNBQKBNR w KQkq - 1 3"

// White to move with no moves but not in check
const whiteStalematedFen = "2k5/8/8/8/8/1q6/r7/2K5 w - - 0 1"

func TestSearchStartpos(t *testing.T) {
	sn := NewSession(1 << 16)
	board := dragon.ParseFen(dragon.Startpos)

	move, _, _, finalDepth, pv, err := sn.Search(&board, nil, 3, 0, NoMove, nil)
	require.NoError(t, err)
	require.True(t, isLegalMove(&board, move))
	require.Equal(t, 3, finalDepth)
	require.NotEmpty(t, pv)
	require.Equal(t, move, pv[0])
}

// Rook ladder - 1.Ra7 (or 1.Rb7) then mate on the back rank
func TestSearchFindsMateInTwo(t *testing.T) {
	sn := NewSession(1 << 16)
	board := dragon.ParseFen("7k/8/8/8/8/8/R7/1R5K w - - 0 1")

	move, eval, _, _, _, err := sn.Search(&board, nil, 4, 0, NoMove, nil)
	require.NoError(t, err)
	require.Contains(t, []string{"a2a7", "b1b7"}, move.String())
	require.True(t, IsMateEval(eval))
	require.Greater(t, eval, EvalCp(0))
}

// A terminal position is not a search error - we report the terminal eval
func TestSearchTerminalPositions(t *testing.T) {
	sn := NewSession(1 << 16)

	mated := dragon.ParseFen(whiteMatedFen)
	move, eval, _, _, _, err := sn.Search(&mated, nil, 3, 0, NoMove, nil)
	require.NoError(t, err)
	require.Equal(t, NoMove, move)
	require.Equal(t, YourCheckMateEval, eval)

	stalemated := dragon.ParseFen(whiteStalematedFen)
	move, eval, _, _, _, err = sn.Search(&stalemated, nil, 3, 0, NoMove, nil)
	require.NoError(t, err)
	require.Equal(t, NoMove, move)
	require.Equal(t, DrawEval, eval)
}

func TestTerminalState(t *testing.T) {
	mated := dragon.ParseFen(whiteMatedFen)
	require.Equal(t, TerminalCheckmate, TerminalState(&mated))

	stalemated := dragon.ParseFen(whiteStalematedFen)
	require.Equal(t, TerminalStalemate, TerminalState(&stalemated))

	startpos := dragon.ParseFen(dragon.Startpos)
	require.Equal(t, TerminalNone, TerminalState(&startpos))

	fiftyMove := dragon.ParseFen("4k3/8/8/8/8/8/8/4K2R w - - 100 80")
	require.Equal(t, TerminalDraw, TerminalState(&fiftyMove))
}

func TestValidatePosition(t *testing.T) {
	good := dragon.ParseFen(dragon.Startpos)
	require.NoError(t, ValidatePosition(&good))

	for descr, fen := range map[string]string{
		"two white kings":  "4k3/8/8/8/8/8/8/2K1K3 w - - 0 1",
		"pawn on rank 1":   "4k3/8/8/8/8/8/8/P3K3 w - - 0 1",
		"nine white pawns": "4k3/8/8/P7/8/8/PPPPPPPP/4K3 w - - 0 1",
		"too many pieces":  "4k3/8/8/8/NNNNNNNN/N7/PPPPPPPP/4K3 w - - 0 1",
	} {
		board := dragon.ParseFen(fen)
		err := ValidatePosition(&board)
		require.ErrorIs(t, err, ErrInvalidPosition, descr)
	}
}

func TestSearchRejectsInvalidPosition(t *testing.T) {
	sn := NewSession(1 << 16)
	board := dragon.ParseFen("4k3/8/8/8/8/8/8/2K1K3 w - - 0 1")

	_, _, _, _, _, err := sn.Search(&board, nil, 3, 0, NoMove, nil)
	require.ErrorIs(t, err, ErrInvalidPosition)
}

// With the qsearch and TT disabled, alpha-beta must agree exactly with
// exhaustive negamax - pruning may never change the root value.
func TestNegAlphaBetaMatchesNegaMax(t *testing.T) {
	defer func(qs, tt bool) { UseQSearch, UseTT = qs, tt }(UseQSearch, UseTT)
	UseQSearch, UseTT = false, false

	fens := []string{
		dragon.Startpos,
		orderingFen,
		"r3k2r/pppq1ppp/2n2n2/3pp3/3PP3/2N2N2/PPPQ1PPP/R3K2R w KQkq - 4 8",
		"4k2r/8/8/8/3Pp3/8/8/4K3 b k d3 0 1",
	}

	for _, fen := range fens {
		board := dragon.ParseFen(fen)
		state := StateFromBoard(&board)

		sAB := newOrderingSearch(&board)
		_, abEval := sAB.NegAlphaBeta(3, 0, YourCheckMateEval, MyCheckMateEval, state)

		sNM := newOrderingSearch(&board)
		_, nmEval := sNM.NegaMax(3, 0, state)

		require.Equal(t, nmEval, abEval, "fen %s", fen)
	}
}

// A search cut short by the clock is not an error - it keeps the best move of
// the last fully completed depth, and the interrupted iteration leaves no
// bogus bounds behind in the TT.
func TestSearchTimeBudget(t *testing.T) {
	sn := NewSession(1 << 16)
	board := dragon.ParseFen("r3k2r/pppq1ppp/2n2n2/3pp3/3PP3/2N2N2/PPPQ1PPP/R3K2R w KQkq - 4 8")

	move, eval, _, finalDepth, _, err := sn.Search(&board, nil, MaxDepth, 20, NoMove, nil)
	require.NoError(t, err)
	require.True(t, isLegalMove(&board, move))
	require.Less(t, finalDepth, MaxDepth)
	require.False(t, IsMateEval(eval), "no mate here - a mate score means a poisoned bail-out eval leaked")

	// A follow-up search on the same session must not be misled by anything
	// the interrupted iteration wrote
	move, eval, _, _, _, err = sn.Search(&board, nil, 3, 0, NoMove, nil)
	require.NoError(t, err)
	require.True(t, isLegalMove(&board, move))
	require.False(t, IsMateEval(eval))
}

// A timed-out node reports the bail-out sentinel and writes nothing to the TT
func TestTimedOutNodeStoresNothing(t *testing.T) {
	board := dragon.ParseFen(dragon.Startpos)
	s := newOrderingSearch(&board)
	state := StateFromBoard(&board)

	*s.timeout = 1
	move, eval := s.NegAlphaBeta(3, 0, YourCheckMateEval, MyCheckMateEval, state)
	require.Equal(t, NoMove, move)
	require.Equal(t, YourCheckMateEval, eval)

	_, isHit := s.tt.Probe(state.Key)
	require.False(t, isHit)
}

// An externally-stopped search falls back to the seed move when one is given
func TestSearchStoppedReturnsSeedMove(t *testing.T) {
	sn := NewSession(1 << 16)
	board := dragon.ParseFen(dragon.Startpos)
	seedMove := findLegalMove(t, &board, "g1f3")

	stopped := uint32(1)
	move, _, _, finalDepth, _, err := sn.Search(&board, nil, 10, 0, seedMove, &stopped)
	require.NoError(t, err)
	require.Equal(t, seedMove, move)
	require.Equal(t, 0, finalDepth)
}

// A position already seen twice in the game history evals as a draw, even when
// the mover is winning on material.
func TestSearchScoresRepetitionAsDraw(t *testing.T) {
	board := dragon.ParseFen("7k/8/8/8/8/8/8/Q6K w - - 0 1")
	s := newOrderingSearch(&board)

	state := StateFromBoard(&board)
	for _, move := range board.GenerateLegalMoves() {
		s.ht[ChildHashState(state, &board, move).Key] = 2
	}

	_, eval := s.NegAlphaBeta(2, 0, YourCheckMateEval, MyCheckMateEval, state)
	require.Equal(t, DrawEval, eval)
}

func TestHistoryTableCounts(t *testing.T) {
	ht := make(HistoryTableT)

	require.Equal(t, 1, ht.Add(42))
	require.Equal(t, 2, ht.Add(42))
	require.Equal(t, 1, ht.Remove(42))
	require.Equal(t, 0, ht.Remove(42))

	_, present := ht[42]
	require.False(t, present, "zero-count entries are deleted")
}
