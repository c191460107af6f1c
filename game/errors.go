package game

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the umbrella for every pre-game validation failure;
// all configuration errors below wrap it.
var ErrConfiguration = errors.New("invalid game configuration")

// Configuration errors, reported before a game starts.
var (
	ErrNoPlayers             = fmt.Errorf("%w: at least one player is required", ErrConfiguration)
	ErrDuplicatePlayerName   = fmt.Errorf("%w: use distinct names for players", ErrConfiguration)
	ErrMissingTurnFunc       = fmt.Errorf("%w: every player must provide a turn function", ErrConfiguration)
	ErrNegativeTimeBudget    = fmt.Errorf("%w: time budgets cannot be negative", ErrConfiguration)
	ErrInvalidCheeseCount    = fmt.Errorf("%w: cheese count must be positive", ErrConfiguration)
	ErrDuplicateCheese       = fmt.Errorf("%w: duplicate cells in fixed cheese", ErrConfiguration)
	ErrUnplaceableCheese     = fmt.Errorf("%w: some cheese cannot be placed", ErrConfiguration)
	ErrNotEnoughFreeCells    = fmt.Errorf("%w: not enough free cells for the requested cheese", ErrConfiguration)
	ErrInvalidPlacement      = fmt.Errorf("%w: invalid initial location", ErrConfiguration)
	ErrUnknownRepresentation = fmt.Errorf("%w: unknown maze representation", ErrConfiguration)
)

// ErrAgentFault is returned by Start when a decision function faults and the
// game is not configured to continue on errors.
var ErrAgentFault = errors.New("a player has crashed")
