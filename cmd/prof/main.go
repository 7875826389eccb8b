// Profiling harness - fixed-depth search from the start position

package main

import (
	"fmt"
	"runtime"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"

	"github.com/pkg/profile"

	"github.com/lebiraja/chess-bot/engine"
)

var VersionString = "0.1 " + runtime.GOOS + "-" + runtime.GOARCH

func main() {
	defer profile.Start().Stop()
	fmt.Println("Starting...")
	board := dragon.ParseFen(dragon.Startpos)
	profSearch(&board, 7)
}

// This MUST be per-search-thread but for now we're single-threaded so global is fine.
var ht engine.HistoryTableT = make(engine.HistoryTableT)

func profSearch(board *dragon.Board, depth int) {
	session := engine.NewSession(engine.DefaultTTSizeEntries)

	start := time.Now()

	bestMove, eval, stats, finalDepth, _, err := session.Search(board, ht, depth, 0, engine.NoMove, nil)
	if err != nil {
		fmt.Println("search failed:", err)
		return
	}

	elapsedSecs := time.Since(start).Seconds()

	// Eval is from the mover's perspective, but we report from white's
	if !board.Wtomove {
		eval = -eval
	}

	stats.Dump(finalDepth)
	fmt.Println("info depth", finalDepth, "score cp", eval, "nodes", stats.Nodes, "time", uint64(elapsedSecs*1000), "nps", uint64(float64(stats.Nodes)/elapsedSecs), "pv", &bestMove)

	fmt.Println("bestmove", &bestMove)
}
