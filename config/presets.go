package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// MatchPreset is a named bundle of match settings that can be referenced
// by API clients instead of spelling out every generation parameter.
type MatchPreset struct {
	MazeWidth          int     `toml:"maze_width"`
	MazeHeight         int     `toml:"maze_height"`
	CellPercentage     float64 `toml:"cell_percentage"`
	WallPercentage     float64 `toml:"wall_percentage"`
	MudPercentage      float64 `toml:"mud_percentage"`
	MudRangeLow        int     `toml:"mud_range_low"`
	MudRangeHigh       int     `toml:"mud_range_high"`
	NbCheese           int     `toml:"nb_cheese"`
	PreprocessingTime  float64 `toml:"preprocessing_time"` // seconds
	TurnTime           float64 `toml:"turn_time"`          // seconds
	Synchronous        bool    `toml:"synchronous"`
	ContinueOnError    bool    `toml:"continue_on_error"`
	MazeRepresentation string  `toml:"maze_representation"` // "dictionary" or "matrix"
}

// presetsFile is the top-level structure of the presets TOML file.
type presetsFile struct {
	Presets map[string]MatchPreset `toml:"presets"`
}

// LoadPresets parses the TOML file at the given path and returns the
// presets it declares, keyed by name.
func LoadPresets(path string) (map[string]MatchPreset, error) {
	var file presetsFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("decoding match presets: %w", err)
	}
	return file.Presets, nil
}
