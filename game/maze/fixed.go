package maze

import (
	"errors"
	"fmt"
)

// Fixed-maze errors.
var (
	ErrAsymmetricWeights = errors.New("maze weights must be symmetric")
	ErrSelfLoop          = errors.New("maze cells cannot be their own neighbor")
	ErrRaggedMatrix      = errors.New("maze matrix must be square")
	ErrInconsistentShape = errors.New("maze description has inconsistent dimensions")
	ErrInvalidWeight     = errors.New("maze weights must be positive")
)

// FromAdjacency validates a caller-supplied adjacency description and infers
// the maze dimensions. The width is deduced from the first neighbor offset
// greater than 1 (vertical passages), defaulting to 1 for single-column mazes.
func FromAdjacency(desc map[int]map[int]int) (Adjacency, int, int, error) {
	adj := make(Adjacency, len(desc))
	maxVertex := 0
	for u, neighbors := range desc {
		for v, w := range neighbors {
			if u == v {
				return nil, 0, 0, fmt.Errorf("%w: cell %d", ErrSelfLoop, u)
			}
			if desc[v][u] != w {
				return nil, 0, 0, fmt.Errorf("%w: between cells %d and %d", ErrAsymmetricWeights, u, v)
			}
			if w <= 0 {
				return nil, 0, 0, fmt.Errorf("%w: weight %d between cells %d and %d", ErrInvalidWeight, w, u, v)
			}
			adj.connect(u, v, w)
			if v > maxVertex {
				maxVertex = v
			}
		}
		if u > maxVertex {
			maxVertex = u
		}
	}

	width := 1
	for _, u := range adj.Vertices() {
		for _, v := range adj.Neighbors(u) {
			if v-u > 1 {
				width = v - u
				break
			}
		}
		if width != 1 {
			break
		}
	}
	height := (maxVertex + width) / width

	if width < 1 || height < 1 {
		return nil, 0, 0, ErrInvalidDimensions
	}
	return adj, width, height, nil
}

// FromMatrix validates a caller-supplied dense matrix description and infers
// the maze dimensions from its shape.
func FromMatrix(m [][]int) (Adjacency, int, int, error) {
	size := len(m)
	if size == 0 {
		return nil, 0, 0, ErrInvalidDimensions
	}
	for _, row := range m {
		if len(row) != size {
			return nil, 0, 0, ErrRaggedMatrix
		}
	}

	adj := make(Adjacency)
	width := 1
	for u := 0; u < size; u++ {
		if m[u][u] != 0 {
			return nil, 0, 0, fmt.Errorf("%w: cell %d", ErrSelfLoop, u)
		}
		for v := 0; v < size; v++ {
			if m[u][v] == 0 {
				continue
			}
			if m[u][v] != m[v][u] {
				return nil, 0, 0, fmt.Errorf("%w: between cells %d and %d", ErrAsymmetricWeights, u, v)
			}
			if v-u > 1 {
				width = v - u
			}
			adj.connect(u, v, m[u][v])
		}
	}

	if width < 1 || size%width != 0 {
		return nil, 0, 0, ErrInconsistentShape
	}
	height := size / width
	if height < 1 {
		return nil, 0, 0, ErrInvalidDimensions
	}
	return adj, width, height, nil
}
