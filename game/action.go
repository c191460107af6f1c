package game

// Action is a token describing what a player did, or tried to do, during one
// turn. Decision functions may only return one of the movement actions; the
// remaining tokens are produced by the engine itself for bookkeeping.
type Action string

// Movement actions, the only valid returns of a turn function.
const (
	ActionNothing Action = "nothing"
	ActionNorth   Action = "north"
	ActionEast    Action = "east"
	ActionSouth   Action = "south"
	ActionWest    Action = "west"
)

// Engine-produced actions.
const (
	ActionMud  Action = "mud"  // player is crossing mud, no decision requested
	ActionMiss Action = "miss" // player did not answer within the turn budget
	ActionWall Action = "wall" // player tried to move through a wall or out of bounds

	ActionError               Action = "error"
	ActionPreprocessing       Action = "preprocessing"
	ActionPreprocessingError  Action = "preprocessing_error"
	ActionPostprocessing      Action = "postprocessing"
	ActionPostprocessingError Action = "postprocessing_error"
)

// MoveActions lists the legal returns of a turn function, in the order they
// are presented to players.
var MoveActions = []Action{ActionNothing, ActionNorth, ActionEast, ActionSouth, ActionWest}

// isMove reports whether the action is a cardinal direction.
func (a Action) isMove() bool {
	return a == ActionNorth || a == ActionEast || a == ActionSouth || a == ActionWest
}

// isLegalReturn reports whether a turn function is allowed to return the action.
func (a Action) isLegalReturn() bool {
	return a == ActionNothing || a.isMove()
}

// isFault reports whether the action records a captured agent fault.
func (a Action) isFault() bool {
	return a == ActionError || a == ActionPreprocessingError || a == ActionPostprocessingError
}
