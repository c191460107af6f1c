package agents

import (
	"container/heap"
	"math/rand"

	"github.com/beka-birhanu/maze-arena/game"
	"github.com/beka-birhanu/maze-arena/game/maze"
)

// NewGreedy builds an agent that repeatedly walks the mud-aware shortest path
// to the closest remaining cheese, replanning whenever its target disappears.
func NewGreedy(_ *rand.Rand) Agent {
	var path []int
	target := -1

	return Agent{
		Turn: func(s *game.Snapshot) game.Action {
			location := s.PlayerLocations[s.Name]
			if !stillAvailable(target, s.Cheese) || len(path) == 0 {
				target, path = closestCheese(s.Maze, location, s.Cheese)
			}
			if len(path) == 0 {
				return game.ActionNothing
			}
			next := path[0]
			path = path[1:]
			return actionTo(location, next, s.Width)
		},
	}
}

func stillAvailable(cell int, cheese []int) bool {
	for _, c := range cheese {
		if c == cell {
			return true
		}
	}
	return false
}

// closestCheese runs Dijkstra from the given source and returns the nearest
// cheese together with the path leading to it, source excluded.
func closestCheese(g maze.Graph, source int, cheese []int) (int, []int) {
	targets := make(map[int]bool, len(cheese))
	for _, c := range cheese {
		targets[c] = true
	}

	dist := map[int]int{source: 0}
	previous := make(map[int]int)
	pq := &cellQueue{{cell: source, priority: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(cellDistance)
		if current.priority > dist[current.cell] {
			continue
		}
		if targets[current.cell] {
			return current.cell, rebuildPath(previous, source, current.cell)
		}
		for _, n := range g.Neighbors(current.cell) {
			candidate := current.priority + g.Weight(current.cell, n)
			if best, seen := dist[n]; !seen || candidate < best {
				dist[n] = candidate
				previous[n] = current.cell
				heap.Push(pq, cellDistance{cell: n, priority: candidate})
			}
		}
	}
	return -1, nil
}

func rebuildPath(previous map[int]int, source, target int) []int {
	var reversed []int
	for cell := target; cell != source; cell = previous[cell] {
		reversed = append(reversed, cell)
	}
	path := make([]int, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}

// cellDistance is one Dijkstra frontier entry.
type cellDistance struct {
	cell     int
	priority int
}

// cellQueue is a min-heap of frontier entries keyed by distance.
type cellQueue []cellDistance

func (q cellQueue) Len() int            { return len(q) }
func (q cellQueue) Less(i, j int) bool  { return q[i].priority < q[j].priority }
func (q cellQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *cellQueue) Push(x interface{}) { *q = append(*q, x.(cellDistance)) }
func (q *cellQueue) Pop() interface{} {
	old := *q
	last := old[len(old)-1]
	*q = old[:len(old)-1]
	return last
}
