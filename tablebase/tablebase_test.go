package tablebase

import (
	"testing"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
)

func TestMaterialProberDeadDraws(t *testing.T) {
	prober := New("")
	require.Equal(t, 3, prober.MaxPieces())

	for descr, fen := range map[string]string{
		"K vs K":  "4k3/8/8/8/8/8/8/4K3 w - - 0 1",
		"KN vs K": "4k3/8/8/8/8/8/8/3NK3 w - - 0 1",
		"KB vs K": "4k3/8/8/8/8/8/8/3BK3 b - - 0 1",
	} {
		board := dragon.ParseFen(fen)
		result, ok := prober.Probe(&board)
		require.True(t, ok, descr)
		require.Equal(t, WDLDraw, result.WDL, descr)
		require.Equal(t, 0, result.Eval(), descr)
	}
}

func TestMaterialProberRejectsMatingMaterial(t *testing.T) {
	for descr, fen := range map[string]string{
		"KQ vs K":  "4k3/8/8/8/8/8/8/3QK3 w - - 0 1",
		"KR vs K":  "4k3/8/8/8/8/8/8/3RK3 w - - 0 1",
		"KP vs K":  "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
		"KB vs KN": "3nk3/8/8/8/8/8/8/3BK3 w - - 0 1",
	} {
		board := dragon.ParseFen(fen)
		_, ok := New("").Probe(&board)
		require.False(t, ok, descr)
	}
}

func TestMaterialProberBestMove(t *testing.T) {
	prober := New("")

	drawn := dragon.ParseFen("4k3/8/8/8/8/8/8/3NK3 w - - 0 1")
	move, ok := prober.BestMove(&drawn)
	require.True(t, ok)

	legal := false
	for _, m := range drawn.GenerateLegalMoves() {
		if m == move {
			legal = true
		}
	}
	require.True(t, legal)

	// No probe result means no move
	winning := dragon.ParseFen("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	_, ok = prober.BestMove(&winning)
	require.False(t, ok)
}

func TestProbeResultEval(t *testing.T) {
	require.Equal(t, 15000, ProbeResultT{WDL: WDLWin}.Eval())
	require.Equal(t, 14990, ProbeResultT{WDL: WDLWin, DTZ: 10}.Eval())
	require.Equal(t, -14990, ProbeResultT{WDL: WDLLoss, DTZ: 10}.Eval())
	require.Equal(t, 0, ProbeResultT{WDL: WDLCursedWin}.Eval())
	require.Equal(t, 0, ProbeResultT{WDL: WDLDraw}.Eval())
}

func TestWDLString(t *testing.T) {
	require.Equal(t, "win", WDLWin.String())
	require.Equal(t, "draw", WDLDraw.String())
	require.Equal(t, "loss", WDLLoss.String())
	require.Equal(t, "blessed-loss", WDLBlessedLoss.String())
	require.Equal(t, "cursed-win", WDLCursedWin.String())
}
