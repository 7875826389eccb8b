// Opening book - pre-computed weighted moves for common positions so the
// engine doesn't burn clock on theory.

package book

import (
	_ "embed"
	"encoding/json"
	"math/rand"
	"os"
	"strings"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
)

//go:embed openings.json
var builtinData []byte

type MoveChoiceT struct {
	Move   string `json:"move"`
	Weight int    `json:"weight"`
}

// Positions are keyed by truncated FEN - "pieces side castling [ep]" - so the
// same position reached by transposition still hits the book.
type BookT struct {
	Source    string                   `json:"source"`
	Positions map[string][]MoveChoiceT `json:"positions"`

	rng *rand.Rand
}

// Builtin returns the compiled-in opening book
func Builtin() *BookT {
	bk, err := parse(builtinData)
	if err != nil {
		// The embedded data is validated by tests - this cannot happen at runtime
		panic(err)
	}
	return bk
}

// Load reads a book from a JSON file, or the builtin book if path is empty
func Load(path string) (*BookT, error) {
	if path == "" {
		return Builtin(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "book: reading %s", path)
	}

	bk, err := parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "book: parsing %s", path)
	}
	return bk, nil
}

func parse(data []byte) (*BookT, error) {
	var bk BookT
	if err := json.Unmarshal(data, &bk); err != nil {
		return nil, err
	}
	if bk.Positions == nil {
		bk.Positions = make(map[string][]MoveChoiceT)
	}
	bk.rng = rand.New(rand.NewSource(rand.Int63()))
	return &bk, nil
}

func (bk *BookT) Save(path string) error {
	data, err := json.MarshalIndent(bk, "", "  ")
	if err != nil {
		return errors.Wrap(err, "book: marshalling")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "book: writing %s", path)
	}
	return nil
}

func (bk *BookT) NPositions() int {
	return len(bk.Positions)
}

// Book key with and without the en-passant field
func positionKeys(board *dragon.Board) (string, string) {
	fields := strings.Fields(board.ToFen())
	if len(fields) < 4 {
		return "", ""
	}
	return strings.Join(fields[:4], " "), strings.Join(fields[:3], " ")
}

func (bk *BookT) choices(board *dragon.Board) []MoveChoiceT {
	withEp, withoutEp := positionKeys(board)

	if choices, ok := bk.Positions[withEp]; ok {
		return choices
	}
	return bk.Positions[withoutEp]
}

func (bk *BookT) Contains(board *dragon.Board) bool {
	return len(bk.choices(board)) > 0
}

// BestMove returns a book move for the position, if there is one.
// With randomChoice the move is picked randomly in proportion to its weight,
// otherwise the top-weighted move wins. The move is validated against the
// legal move list before being returned.
func (bk *BookT) BestMove(board *dragon.Board, randomChoice bool) (dragon.Move, bool) {
	choices := bk.choices(board)
	if len(choices) == 0 {
		return 0, false
	}

	var moveUci string
	if randomChoice {
		moveUci = bk.weightedChoice(choices)
	} else {
		best := choices[0]
		for _, choice := range choices[1:] {
			if choice.Weight > best.Weight {
				best = choice
			}
		}
		moveUci = best.Move
	}

	move, err := dragon.ParseMove(moveUci)
	if err != nil {
		return 0, false
	}
	for _, legal := range board.GenerateLegalMoves() {
		if legal == move {
			return move, true
		}
	}
	return 0, false
}

func (bk *BookT) weightedChoice(choices []MoveChoiceT) string {
	totalWeight := 0
	for _, choice := range choices {
		totalWeight += choice.Weight
	}
	if totalWeight <= 0 {
		return choices[0].Move
	}

	r := bk.rng.Intn(totalWeight)
	for _, choice := range choices {
		r -= choice.Weight
		if r < 0 {
			return choice.Move
		}
	}
	return choices[0].Move
}

// AddMove installs or re-weights a move for the given position
func (bk *BookT) AddMove(board *dragon.Board, move dragon.Move, weight int) {
	_, key := positionKeys(board)
	if key == "" {
		return
	}

	moveUci := move.String()
	for i := range bk.Positions[key] {
		if bk.Positions[key][i].Move == moveUci {
			bk.Positions[key][i].Weight = weight
			return
		}
	}
	bk.Positions[key] = append(bk.Positions[key], MoveChoiceT{Move: moveUci, Weight: weight})
}
