package engine

import "fmt"

// MutatePair returns pointers to s[i] and s[j] in argument order. The two
// cells live on opposite sides of a split at min(i,j)+1, so the pointers can
// never alias. i == j is a programming error and panics.
func MutatePair[T any](s []T, i, j int) (*T, *T) {
	if i == j {
		panic(fmt.Sprintf("mutate pair: index %d used twice", i))
	}
	lo, hi := i, j
	if hi < lo {
		lo, hi = hi, lo
	}
	head, tail := s[:lo+1], s[lo+1:]
	low, high := &head[lo], &tail[hi-lo-1]
	if i < j {
		return low, high
	}
	return high, low
}

// Neighborhood is the Moore neighbourhood of a centre cell, addressed through
// the two halves of a buffer split around the centre.
type Neighborhood[T any] struct {
	before []T
	after  []T
	width  int
}

// MutateNeighborhood splits s around index and returns the centre together
// with its eight neighbours. index needs at least width+1 cells on each side;
// anything less panics.
func MutateNeighborhood[T any](s []T, index, width int) (*T, Neighborhood[T]) {
	if width < 2 {
		panic(fmt.Sprintf("mutate neighborhood: width %d too small", width))
	}
	if index < width+1 || index+width+1 >= len(s) {
		panic(fmt.Sprintf("mutate neighborhood: index %d lacks a %d cell margin in buffer of %d", index, width+1, len(s)))
	}
	before, rest := s[:index], s[index:]
	center, after := &rest[0], rest[1:]
	return center, Neighborhood[T]{before: before, after: after, width: width}
}

// ForEach visits the neighbours in raster order: up-left, up, up-right,
// left, right, down-left, down, down-right.
func (n Neighborhood[T]) ForEach(fn func(*T)) {
	i, w := len(n.before), n.width
	fn(&n.before[i-w-1])
	fn(&n.before[i-w])
	fn(&n.before[i-w+1])
	fn(&n.before[i-1])
	fn(&n.after[0])
	fn(&n.after[w-2])
	fn(&n.after[w-1])
	fn(&n.after[w])
}

// MutatePair returns pointers to two distinct cells of the world.
func (w *World) MutatePair(i, j int) (*Tile, *Tile) {
	return MutatePair(w.cells, i, j)
}

// MutateNeighbors returns the tile at index and its neighbourhood. It panics
// when the cell is empty.
func (w *World) MutateNeighbors(index int) (*Tile, Neighborhood[Tile]) {
	center, hood := MutateNeighborhood(w.cells, index, w.grid.W)
	if center.IsEmpty() {
		panic(fmt.Sprintf("mutate neighbors: cell %d is empty", index))
	}
	return center, hood
}
