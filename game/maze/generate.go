package maze

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

// Generation-related errors.
var (
	ErrInvalidDimensions = errors.New("maze dimensions must be positive")
	ErrInvalidPercentage = errors.New("percentages must be between 0 and 100")
	ErrInvalidMudRange   = errors.New("mud range must be ordered with a low bound greater than 1")
)

// GeneratorConfig holds the parameters of a random maze generation.
// The random source is owned by the generator so that maze generation stays
// reproducible and independent of the other game subsystems.
type GeneratorConfig struct {
	Width          int        // Width of the maze in number of cells
	Height         int        // Height of the maze in number of cells
	CellPercentage float64    // Fraction of grid cells included in the playable region
	WallPercentage float64    // Fraction of removable passages that are walled off
	MudPercentage  float64    // Fraction of remaining passages that become mud
	MudRange       [2]int     // Inclusive interval of turns needed to cross mud
	Rand           *rand.Rand // Seeded random source dedicated to maze generation
}

// edge is an undirected maze edge with u < v.
type edge struct {
	u, v int
}

// Generate synthesizes a random maze:
//
//  1. Grow a connected region from the grid center by repeatedly connecting a
//     random included cell to a random grid neighbor, until the requested cell
//     percentage is reached. Every new cell is also connected to its already
//     included grid neighbors.
//  2. Compute a spanning tree of the grown region. Tree edges are mandatory;
//     the requested fraction of the remaining edges is removed, so the region
//     stays connected after wall removal.
//  3. Assign the requested fraction of the remaining edges a uniform random
//     weight from the mud range; all other edges keep weight 1.
func Generate(cfg GeneratorConfig) (Adjacency, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrInvalidDimensions
	}
	for _, p := range []float64{cfg.CellPercentage, cfg.WallPercentage, cfg.MudPercentage} {
		if p < 0 || p > 100 {
			return nil, ErrInvalidPercentage
		}
	}
	if cfg.MudRange[0] <= 1 || cfg.MudRange[0] > cfg.MudRange[1] {
		return nil, ErrInvalidMudRange
	}

	adj := make(Adjacency)
	rng := cfg.Rand

	// Grow the playable region from the center of the grid.
	total := cfg.Width * cfg.Height
	center := (cfg.Height/2)*cfg.Width + cfg.Width/2
	cells := []int{center}
	included := map[int]bool{center: true}
	for float64(len(cells))/float64(total)*100 < cfg.CellPercentage {
		cell := cells[rng.Intn(len(cells))]
		neighbor, ok := gridNeighbor(cell, rng.Intn(4), cfg.Width, cfg.Height)
		if !ok {
			continue
		}
		adj.connect(cell, neighbor, 1)
		for direction := 0; direction < 4; direction++ {
			if next, ok := gridNeighbor(neighbor, direction, cfg.Width, cfg.Height); ok && included[next] {
				adj.connect(neighbor, next, 1)
			}
		}
		if !included[neighbor] {
			included[neighbor] = true
			cells = append(cells, neighbor)
		}
	}

	// Remove walls, keeping a spanning tree of the region intact.
	tree := spanningTree(adj)
	var removable []edge
	for _, e := range sortedEdges(adj) {
		if !tree[e] {
			removable = append(removable, e)
		}
	}
	rng.Shuffle(len(removable), func(i, j int) {
		removable[i], removable[j] = removable[j], removable[i]
	})
	nbWalls := int(math.Ceil(cfg.WallPercentage / 100.0 * float64(len(removable))))
	for _, e := range removable[:nbWalls] {
		adj.disconnect(e.u, e.v)
	}

	// Turn a fraction of the remaining passages into mud.
	paths := sortedEdges(adj)
	rng.Shuffle(len(paths), func(i, j int) {
		paths[i], paths[j] = paths[j], paths[i]
	})
	nbMud := int(math.Ceil(cfg.MudPercentage / 100.0 * float64(len(paths))))
	for _, e := range paths[:nbMud] {
		weight := cfg.MudRange[0] + rng.Intn(cfg.MudRange[1]-cfg.MudRange[0]+1)
		adj.connect(e.u, e.v, weight)
	}

	return adj, nil
}

// gridNeighbor returns the cell adjacent to the given one in one of the four
// grid directions, and whether it is in bounds.
func gridNeighbor(cell, direction, width, height int) (int, bool) {
	row, col := cell/width, cell%width
	switch direction {
	case 0:
		row--
	case 1:
		row++
	case 2:
		col--
	default:
		col++
	}
	if row < 0 || row >= height || col < 0 || col >= width {
		return 0, false
	}
	return row*width + col, true
}

// sortedEdges returns every undirected edge of the maze exactly once, in a
// deterministic order.
func sortedEdges(adj Adjacency) []edge {
	var edges []edge
	for u, neighbors := range adj {
		for v := range neighbors {
			if u < v {
				edges = append(edges, edge{u, v})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].u != edges[j].u {
			return edges[i].u < edges[j].u
		}
		return edges[i].v < edges[j].v
	})
	return edges
}

// spanningTree returns a set of edges forming a spanning tree of each
// connected component of the maze, computed with a union-find over the
// deterministic edge order.
func spanningTree(adj Adjacency) map[edge]bool {
	parent := make(map[int]int, len(adj))
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	for v := range adj {
		parent[v] = v
	}

	tree := make(map[edge]bool)
	for _, e := range sortedEdges(adj) {
		ru, rv := find(e.u), find(e.v)
		if ru != rv {
			parent[ru] = rv
			tree[e] = true
		}
	}
	return tree
}
