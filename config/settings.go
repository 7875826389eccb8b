// Chess bot configuration settings

package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lebiraja/chess-bot/engine"
)

type SettingsT struct {
	// Engine settings
	SearchDepth   int     `json:"search_depth"`   // ply (half-moves) to search; 0 means depth-unlimited
	TimeLimitSec  float64 `json:"time_limit_sec"` // max seconds per move
	UseQuiescence bool    `json:"use_quiescence"`

	// Opening book settings
	UseOpeningBook    bool   `json:"use_opening_book"`
	OpeningBookPath   string `json:"opening_book_path"`  // empty means builtin
	OpeningBookDepth  int    `json:"opening_book_depth"` // use book for first N full moves
	OpeningBookRandom bool   `json:"opening_book_random"`

	// Endgame tablebase settings
	UseTablebase  bool   `json:"use_tablebase"`
	TablebasePath string `json:"tablebase_path"`

	// Evaluation weights (for tuning)
	MaterialWeight      float64 `json:"material_weight"`
	PositionWeight      float64 `json:"position_weight"`
	MobilityWeight      float64 `json:"mobility_weight"`
	KingSafetyWeight    float64 `json:"king_safety_weight"`
	PawnStructureWeight float64 `json:"pawn_structure_weight"`

	// Transposition table
	TTSizeEntries int `json:"tt_size_entries"`

	// Logging
	LogLevel string `json:"log_level"`
}

func Default() SettingsT {
	return SettingsT{
		SearchDepth:       5,
		TimeLimitSec:      10.0,
		UseQuiescence:     true,
		UseOpeningBook:    true,
		OpeningBookDepth:  10,
		OpeningBookRandom: true,
		UseTablebase:      true,

		MaterialWeight:      engine.DefaultWeights.Material,
		PositionWeight:      engine.DefaultWeights.Position,
		MobilityWeight:      engine.DefaultWeights.Mobility,
		KingSafetyWeight:    engine.DefaultWeights.KingSafety,
		PawnStructureWeight: engine.DefaultWeights.PawnStructure,

		TTSizeEntries: engine.DefaultTTSizeEntries,

		LogLevel: "info",
	}
}

// Load reads settings from a JSON file, filling unset fields with defaults.
// An empty path returns the defaults.
func Load(path string) (SettingsT, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, errors.Wrapf(err, "config: reading %s", path)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, errors.Wrapf(err, "config: parsing %s", path)
	}
	return settings, nil
}

func (s SettingsT) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "config: marshalling")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "config: writing %s", path)
	}
	return nil
}

func (s SettingsT) TimeLimitMs() int {
	return int(s.TimeLimitSec * 1000)
}

func (s SettingsT) EvalWeights() engine.WeightsT {
	return engine.WeightsT{
		Material:      s.MaterialWeight,
		Position:      s.PositionWeight,
		Mobility:      s.MobilityWeight,
		KingSafety:    s.KingSafetyWeight,
		PawnStructure: s.PawnStructureWeight,
	}
}

func (s SettingsT) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
