// Package agents provides ready-made decision functions, from a purely
// random walker to a greedy shortest-path chaser. They serve as baseline
// opponents and as living documentation of the decision function contract.
package agents

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/beka-birhanu/maze-arena/game"
)

// ErrUnknownAgent is returned when no built-in agent has the requested name.
var ErrUnknownAgent = errors.New("unknown built-in agent")

// Agent bundles the decision functions of one built-in player. Instances are
// independent; each carries its own private memory.
type Agent struct {
	Turn           game.TurnFunc
	Preprocessing  game.PreprocessingFunc
	Postprocessing game.PostprocessingFunc
}

// Builder creates a fresh instance of a built-in agent with its own random
// source, so that two instances of the same agent never share state.
type Builder func(rng *rand.Rand) Agent

var builders = map[string]Builder{
	"random":   NewRandom,
	"explorer": NewExplorer,
	"greedy":   NewGreedy,
}

// New builds a fresh instance of the named built-in agent.
func New(name string, rng *rand.Rand) (Agent, error) {
	builder, ok := builders[name]
	if !ok {
		return Agent{}, ErrUnknownAgent
	}
	return builder(rng), nil
}

// Names lists the built-in agents in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// actionTo translates a step between two adjacent cells into an action.
func actionTo(from, to, width int) game.Action {
	switch to - from {
	case -width:
		return game.ActionNorth
	case width:
		return game.ActionSouth
	case -1:
		return game.ActionWest
	case 1:
		return game.ActionEast
	}
	return game.ActionNothing
}
