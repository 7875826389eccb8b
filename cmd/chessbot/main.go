// UCI front-end. Book and tablebase are consulted before the search.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lebiraja/chess-bot/book"
	"github.com/lebiraja/chess-bot/config"
	"github.com/lebiraja/chess-bot/engine"
	"github.com/lebiraja/chess-bot/tablebase"
)

var VersionString = "0.1 " + runtime.GOOS + "-" + runtime.GOARCH

type botT struct {
	settings config.SettingsT
	session  *engine.SessionT
	book     *book.BookT
	prober   tablebase.Prober

	board   dragon.Board
	history engine.HistoryTableT
	timeout uint32
}

func main() {
	configPath := flag.String("config", "", "path to settings JSON")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to default settings")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(settings.ZerologLevel())

	engine.Weights = settings.EvalWeights()
	engine.UseQSearch = settings.UseQuiescence

	bot := &botT{
		settings: settings,
		session:  engine.NewSession(settings.TTSizeEntries),
		history:  make(engine.HistoryTableT),
	}
	bot.board = dragon.ParseFen(dragon.Startpos)

	if settings.UseOpeningBook {
		bk, err := book.Load(settings.OpeningBookPath)
		if err != nil {
			log.Warn().Err(err).Msg("opening book unavailable")
		} else {
			bot.book = bk
			log.Info().Int("positions", bk.NPositions()).Msg("opening book loaded")
		}
	}
	if settings.UseTablebase {
		bot.prober = tablebase.New(settings.TablebasePath)
	}

	bot.uciLoop()
}

func (bot *botT) uciLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name chessbot", VersionString)
			fmt.Println("id author lebiraja")
			for _, param := range engine.GetConfigParams() {
				if param.Min == 0 && param.Max == 1 {
					fmt.Println("option name", param.Descr, "type check default", param.Get() != 0)
				} else {
					fmt.Println("option name", param.Descr, "type spin default", param.Get(), "min", param.Min, "max", param.Max)
				}
			}
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			bot.session.NewGame()
			bot.resetPosition(dragon.Startpos)
		case "quit":
			return
		case "setoption":
			bot.uciSetOption(tokens)
		case "position":
			bot.uciPosition(line)
		case "go":
			bot.uciGo(line)
		case "stop":
			atomic.StoreUint32(&bot.timeout, 1)
		default:
			fmt.Println("info string Unknown command:", line)
		}
	}
}

func (bot *botT) resetPosition(fen string) {
	bot.board = dragon.ParseFen(fen)
	bot.history = make(engine.HistoryTableT)
	bot.history.Add(engine.HashBoard(&bot.board))
}

func (bot *botT) uciSetOption(tokens []string) {
	if len(tokens) != 5 || tokens[1] != "name" || tokens[3] != "value" {
		fmt.Println("info string Malformed setoption command")
		return
	}

	val, err := strconv.Atoi(tokens[4])
	if err != nil {
		switch strings.ToLower(tokens[4]) {
		case "true":
			val = 1
		case "false":
			val = 0
		default:
			fmt.Println("info string Option value is not an int or bool:", tokens[4])
			return
		}
	}

	if err := engine.SetConfigParam(tokens[2], val); err != nil {
		fmt.Println("info string", err)
	}
}

func (bot *botT) uciPosition(line string) {
	posScanner := bufio.NewScanner(strings.NewReader(line))
	posScanner.Split(bufio.ScanWords)
	posScanner.Scan() // skip the first token
	if !posScanner.Scan() {
		fmt.Println("info string Malformed position command")
		return
	}

	if strings.ToLower(posScanner.Text()) == "startpos" {
		bot.resetPosition(dragon.Startpos)
		posScanner.Scan() // advance the scanner to leave it in a consistent state
	} else if strings.ToLower(posScanner.Text()) == "fen" {
		fenstr := ""
		for posScanner.Scan() && strings.ToLower(posScanner.Text()) != "moves" {
			fenstr += posScanner.Text() + " "
		}
		if fenstr == "" {
			fmt.Println("info string Invalid fen position")
			return
		}
		bot.resetPosition(fenstr)
	} else {
		fmt.Println("info string Invalid position subcommand")
		return
	}

	if strings.ToLower(posScanner.Text()) != "moves" {
		return
	}
	for posScanner.Scan() { // for each move
		moveStr := strings.ToLower(posScanner.Text())
		move, err := dragon.ParseMove(moveStr)
		if err != nil {
			fmt.Println("info string Could not parse move", moveStr)
			return
		}
		bot.board.Apply(move)
		bot.history.Add(engine.HashBoard(&bot.board))
	}
}

func (bot *botT) uciGo(line string) {
	goScanner := bufio.NewScanner(strings.NewReader(line))
	goScanner.Split(bufio.ScanWords)
	goScanner.Scan() // skip the first token
	var wtime, btime, winc, binc, movetime, depth int
	var infinite bool
	for goScanner.Scan() {
		nextToken := strings.ToLower(goScanner.Text())
		switch nextToken {
		case "infinite":
			infinite = true
			continue
		case "wtime":
			wtime = scanIntOption(goScanner, nextToken)
		case "btime":
			btime = scanIntOption(goScanner, nextToken)
		case "winc":
			winc = scanIntOption(goScanner, nextToken)
		case "binc":
			binc = scanIntOption(goScanner, nextToken)
		case "movetime":
			movetime = scanIntOption(goScanner, nextToken)
		case "depth":
			depth = scanIntOption(goScanner, nextToken)
		default:
			fmt.Println("info string Unknown go subcommand", nextToken)
			continue
		}
	}

	timeBudgetMs := 0
	switch {
	case infinite:
		timeBudgetMs = 0
	case movetime > 0:
		timeBudgetMs = movetime
	case wtime != 0 && btime != 0:
		ourtime, ourinc := wtime, winc
		if !bot.board.Wtomove {
			ourtime, ourinc = btime, binc
		}
		timeBudgetMs = allowedTimeMs(ourtime, ourinc)
	default:
		timeBudgetMs = bot.settings.TimeLimitMs()
	}
	if depth == 0 {
		depth = bot.settings.SearchDepth
	}

	atomic.StoreUint32(&bot.timeout, 0)
	go bot.bestMove(depth, timeBudgetMs)
}

func scanIntOption(scanner *bufio.Scanner, name string) int {
	if !scanner.Scan() {
		fmt.Println("info string Malformed go command option", name)
		return 0
	}
	val, err := strconv.Atoi(scanner.Text())
	if err != nil {
		fmt.Println("info string Malformed go command option; could not convert", name)
		return 0
	}
	return val
}

// Simple strategy - use 1/16th of the remaining time plus the increment
func allowedTimeMs(ourtimeMs int, ourincMs int) int {
	result := ourtimeMs / 16
	if result <= 0 {
		return ourincMs
	}
	return result
}

// Book, then tablebase, then search
func (bot *botT) bestMove(depth int, timeBudgetMs int) {
	board := bot.board // search on a copy so a late stop can't corrupt the game board

	if bot.book != nil && int(board.Fullmoveno) <= bot.settings.OpeningBookDepth {
		if move, ok := bot.book.BestMove(&board, bot.settings.OpeningBookRandom); ok {
			log.Info().Str("move", move.String()).Msg("book move")
			fmt.Println("bestmove", &move)
			return
		}
	}

	if bot.prober != nil {
		if result, ok := bot.prober.Probe(&board); ok {
			if move, ok := bot.prober.BestMove(&board); ok {
				log.Info().Str("move", move.String()).Str("wdl", result.WDL.String()).Msg("tablebase move")
				fmt.Println("info score cp", result.Eval())
				fmt.Println("bestmove", &move)
				return
			}
		}
	}

	bestMove, eval, stats, finalDepth, pv, err := bot.session.Search(&board, bot.history, depth, timeBudgetMs, engine.NoMove, &bot.timeout)
	if err != nil {
		fmt.Println("info string search error:", err)
		fmt.Println("bestmove 0000")
		return
	}
	if bestMove == engine.NoMove {
		fmt.Println("bestmove 0000")
		return
	}

	fmt.Println("info depth", finalDepth, "score cp", eval, "nodes", stats.Nodes, "pv", pvString(pv))
	fmt.Println("bestmove", &bestMove)
}

func pvString(pv []dragon.Move) string {
	parts := make([]string, len(pv))
	for i := range pv {
		parts[i] = pv[i].String()
	}
	return strings.Join(parts, " ")
}
