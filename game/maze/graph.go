/*
Package maze provides tools for creating and inspecting weighted rectangular mazes.

A maze is an undirected graph over grid cells, identified by their index in
lexicographic order (row*width + col). Edge weights count the number of turns
needed to cross: 1 is a plain passage, anything greater is mud.

The package supports random generation (connected-region growth, spanning-tree
preserving wall removal, weighted mud assignment) as well as fixed mazes given
as an adjacency mapping or a dense matrix. Both representations are exposed to
players behind the Graph interface, and a small ASCII renderer is included.
*/
package maze

import "sort"

// Graph is the read-only view of a maze handed to decision functions.
// It abstracts over the sparse and dense representations.
type Graph interface {
	// Vertices returns all cells that have at least one neighbor, in increasing order.
	Vertices() []int

	// Neighbors returns the cells adjacent to the given vertex, in increasing order.
	Neighbors(vertex int) []int

	// Weight returns the weight of the edge between two vertices, or 0 if they
	// are not adjacent.
	Weight(from, to int) int
}

// Adjacency is the sparse maze representation: cell -> neighbor -> weight.
type Adjacency map[int]map[int]int

// Vertices returns all connected cells in increasing order.
func (a Adjacency) Vertices() []int {
	vertices := make([]int, 0, len(a))
	for v := range a {
		vertices = append(vertices, v)
	}
	sort.Ints(vertices)
	return vertices
}

// Neighbors returns the cells adjacent to the given vertex in increasing order.
func (a Adjacency) Neighbors(vertex int) []int {
	neighbors := make([]int, 0, len(a[vertex]))
	for n := range a[vertex] {
		neighbors = append(neighbors, n)
	}
	sort.Ints(neighbors)
	return neighbors
}

// Weight returns the weight of the edge between two vertices, or 0 if absent.
func (a Adjacency) Weight(from, to int) int {
	return a[from][to]
}

// connect adds a symmetric edge between two vertices.
func (a Adjacency) connect(u, v, weight int) {
	if a[u] == nil {
		a[u] = make(map[int]int)
	}
	if a[v] == nil {
		a[v] = make(map[int]int)
	}
	a[u][v] = weight
	a[v][u] = weight
}

// disconnect removes the symmetric edge between two vertices, dropping a
// vertex entirely once it has no neighbors left.
func (a Adjacency) disconnect(u, v int) {
	delete(a[u], v)
	delete(a[v], u)
	if len(a[u]) == 0 {
		delete(a, u)
	}
	if len(a[v]) == 0 {
		delete(a, v)
	}
}

// Matrix converts the adjacency to a dense size x size matrix.
func (a Adjacency) Matrix(size int) Matrix {
	m := make(Matrix, size)
	for i := range m {
		m[i] = make([]int, size)
	}
	for u, neighbors := range a {
		for v, w := range neighbors {
			m[u][v] = w
		}
	}
	return m
}

// Matrix is the dense maze representation: an adjacency matrix of weights.
type Matrix [][]int

// Vertices returns all cells with at least one neighbor, in increasing order.
func (m Matrix) Vertices() []int {
	var vertices []int
	for v := range m {
		for _, w := range m[v] {
			if w != 0 {
				vertices = append(vertices, v)
				break
			}
		}
	}
	return vertices
}

// Neighbors returns the cells adjacent to the given vertex in increasing order.
func (m Matrix) Neighbors(vertex int) []int {
	var neighbors []int
	if vertex < 0 || vertex >= len(m) {
		return neighbors
	}
	for n, w := range m[vertex] {
		if w != 0 {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Weight returns the weight of the edge between two vertices, or 0 if absent.
func (m Matrix) Weight(from, to int) int {
	if from < 0 || from >= len(m) || to < 0 || to >= len(m[from]) {
		return 0
	}
	return m[from][to]
}
