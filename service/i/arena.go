package i

import (
	"context"

	dmn "github.com/beka-birhanu/maze-arena/domain"
	"github.com/beka-birhanu/maze-arena/game"
	"github.com/google/uuid"
)

// PlayerSpec describes one requested participant of a match.
type PlayerSpec struct {
	Name  string // display name, must be unique within the match
	Agent string // built-in agent to control the player
	Team  string // optional, defaults to the player name
}

// Arena creates matches from presets and tracks them until completion.
type Arena interface {
	// CreateMatch starts a new match of the named preset with the given
	// lineup and returns its record in the running state.
	CreateMatch(ctx context.Context, preset string, lineup []PlayerSpec) (*dmn.Match, error)

	// MatchByID returns the current record of a match, live or finished.
	MatchByID(id uuid.UUID) (*dmn.Match, error)

	// LatestFrame returns the most recent spectator frame of a running match.
	LatestFrame(id uuid.UUID) (*game.Frame, error)

	// RecentMatches returns the latest finished match records, newest first.
	RecentMatches(limit int64) ([]*dmn.Match, error)

	// Presets lists the names of the configured match presets.
	Presets() []string
}
