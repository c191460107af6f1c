package game

import "math"

// Frame is a compact view of the game state published after every applied
// turn, for spectators that follow a match without being part of it.
type Frame struct {
	Turn            int                `json:"turn"`
	TeamScores      map[string]float64 `json:"team_scores"`
	PlayerLocations map[string]int     `json:"player_locations"`
	MudCounts       map[string]int     `json:"mud_counts"`
	Cheese          []int              `json:"cheese"`
	Done            bool               `json:"done"`
}

// applyActions advances the game by one turn: movements, mud progression,
// cheese collection and the termination check, in that order. It returns the
// action that actually took effect for each player, which differs from the
// submitted one when a move hit a wall.
func (g *Game) applyActions(actions map[string]Action) map[string]Action {
	effective := make(map[string]Action, len(actions))

	for _, name := range g.order {
		a := actions[name]
		effective[name] = a
		if !a.isMove() {
			continue
		}
		p := g.players[name]
		target, ok := g.moveTarget(p.location, a)
		if !ok {
			effective[name] = ActionWall
			continue
		}
		if w := g.maze.Weight(p.location, target); w == 1 {
			p.location = target
		} else {
			p.mud = MudState{Target: target, Count: w}
		}
	}

	// Every player inside a mud passage advances one step, including players
	// that entered it this very turn.
	for _, name := range g.order {
		p := g.players[name]
		if !p.mud.Crossing() {
			continue
		}
		p.mud.Count--
		if p.mud.Count == 0 {
			p.location = p.mud.Target
			p.mud = MudState{Target: NoTarget}
		}
	}

	// Each cheese is split evenly among the players standing on it.
	remaining := make([]int, 0, len(g.cheese))
	for _, c := range g.cheese {
		var catchers []string
		for _, name := range g.order {
			if g.players[name].location == c {
				catchers = append(catchers, name)
			}
		}
		if len(catchers) == 0 {
			remaining = append(remaining, c)
			continue
		}
		share := 1.0 / float64(len(catchers))
		for _, name := range catchers {
			g.players[name].score += share
		}
	}
	g.cheese = remaining

	g.turn++
	g.checkTermination()
	return effective
}

// moveTarget returns the cell one step in the given direction from the given
// location, and whether the maze has a passage between the two.
func (g *Game) moveTarget(location int, a Action) (int, bool) {
	row, col := location/g.width, location%g.width
	switch a {
	case ActionNorth:
		row--
	case ActionSouth:
		row++
	case ActionWest:
		col--
	case ActionEast:
		col++
	}
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return 0, false
	}
	target := row*g.width + col
	return target, g.maze.Weight(location, target) > 0
}

// checkTermination flips the game to done when no cheese remains, or when no
// trailing team can catch up with the leader anymore. Done is sticky.
func (g *Game) checkTermination() {
	if g.done {
		return
	}
	if len(g.cheese) == 0 {
		g.done = true
		return
	}

	scores := g.TeamScores()
	best, bestTeam := math.Inf(-1), ""
	for _, team := range g.teamOrder {
		if scores[team] > best {
			best, bestTeam = scores[team], team
		}
	}
	second := math.Inf(1)
	if len(g.teamOrder) > 1 {
		second = math.Inf(-1)
		for _, team := range g.teamOrder {
			if team != bestTeam && scores[team] > second {
				second = scores[team]
			}
		}
	}
	if second+float64(len(g.cheese)) < best {
		g.done = true
	}
}

// TeamScores sums player scores per team, rounded to limit the drift of
// repeated fractional cheese shares.
func (g *Game) TeamScores() map[string]float64 {
	scores := make(map[string]float64, len(g.teamOrder))
	for _, team := range g.teamOrder {
		var sum float64
		for _, name := range g.teams[team] {
			sum += g.players[name].score
		}
		scores[team] = math.Round(sum*1e5) / 1e5
	}
	return scores
}

// frame builds the spectator view of the current state. Players crossing mud
// are reported on the cell they are moving toward, with the remaining count.
func (g *Game) frame() Frame {
	locations := make(map[string]int, len(g.order))
	mudCounts := make(map[string]int, len(g.order))
	for _, name := range g.order {
		p := g.players[name]
		if p.mud.Crossing() {
			locations[name] = p.mud.Target
			mudCounts[name] = p.mud.Count
		} else {
			locations[name] = p.location
			mudCounts[name] = 0
		}
	}
	return Frame{
		Turn:            g.turn,
		TeamScores:      g.TeamScores(),
		PlayerLocations: locations,
		MudCounts:       mudCounts,
		Cheese:          append([]int(nil), g.cheese...),
		Done:            g.done,
	}
}

// publishFrame pushes the current frame without ever blocking the scheduler;
// a slow spectator drops frames instead of slowing the game down.
func (g *Game) publishFrame() {
	select {
	case g.frames <- g.frame():
	default:
	}
}
