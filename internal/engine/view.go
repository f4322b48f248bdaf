package engine

import (
	"fmt"

	"github.com/rdavidson1994/sand/internal/core"
)

// NeighborhoodView is what a periodic reaction sees of the grid: its own
// cell, the in-bounds Moore neighbours, and a random source seeded for this
// cell and pass. Indices are global grid indices; the view only reaches the
// chunk slice it was built on.
type NeighborhoodView struct {
	cells   []Tile
	base    int
	grid    core.Grid
	index   int
	catalog *Catalog
	rng     core.RNG
	buf     [8]int
	n       int
}

func (v *NeighborhoodView) reset(cells []Tile, base int, grid core.Grid, index int, catalog *Catalog) {
	v.cells = cells
	v.base = base
	v.grid = grid
	v.index = index
	v.catalog = catalog
	v.n = len(grid.AppendNeighbors(v.buf[:0], index))
}

// Index returns the grid index of the reacting cell.
func (v *NeighborhoodView) Index() int { return v.index }

// Coords returns the grid coordinates of the reacting cell.
func (v *NeighborhoodView) Coords() (int, int) { return v.grid.Coords(v.index) }

// Grid returns the grid geometry.
func (v *NeighborhoodView) Grid() core.Grid { return v.grid }

// Catalog returns the element catalog.
func (v *NeighborhoodView) Catalog() *Catalog { return v.catalog }

// Rand returns the cell's random source.
func (v *NeighborhoodView) Rand() *core.RNG { return &v.rng }

// Neighbors returns the in-bounds neighbour indices in raster order. The
// slice is reused by the next cell's view.
func (v *NeighborhoodView) Neighbors() []int { return v.buf[:v.n] }

// At returns the tile at global index j. The reacting cell itself is handed
// to the reaction by value, so asking for it here panics.
func (v *NeighborhoodView) At(j int) *Tile {
	if j == v.index {
		panic(fmt.Sprintf("neighborhood view: cell %d is the reacting cell", j))
	}
	return &v.cells[j-v.base]
}

// Above returns the tile directly above, or nil on the top row.
func (v *NeighborhoodView) Above() *Tile {
	if j, ok := v.grid.Above(v.index); ok {
		return v.At(j)
	}
	return nil
}

// Below returns the tile directly below, or nil on the bottom row.
func (v *NeighborhoodView) Below() *Tile {
	if j, ok := v.grid.Below(v.index); ok {
		return v.At(j)
	}
	return nil
}

// ForEachNeighbor calls fn with every in-bounds neighbour.
func (v *NeighborhoodView) ForEachNeighbor(fn func(j int, t *Tile)) {
	for _, j := range v.Neighbors() {
		fn(j, v.At(j))
	}
}

// Count returns how many neighbours satisfy pred.
func (v *NeighborhoodView) Count(pred func(t Tile) bool) int {
	n := 0
	for _, j := range v.Neighbors() {
		if pred(*v.At(j)) {
			n++
		}
	}
	return n
}

// CountElement returns how many neighbours currently hold element id.
func (v *NeighborhoodView) CountElement(id ElementID) int {
	return v.Count(func(t Tile) bool { return t.Is(id) })
}

// RandomNeighbor returns a uniformly chosen in-bounds neighbour index.
func (v *NeighborhoodView) RandomNeighbor() int {
	return v.buf[v.rng.IntN(v.n)]
}

// CollisionView is what a collision side effect sees: the two participants'
// positions and the cells around them. The participants themselves are
// handed over by value and cannot be reached through the view.
type CollisionView struct {
	cells   []Tile
	grid    core.Grid
	first   int
	second  int
	catalog *Catalog
	rng     *core.RNG
}

// First returns the grid index of the first (lower id) participant.
func (v *CollisionView) First() int { return v.first }

// Second returns the grid index of the second participant.
func (v *CollisionView) Second() int { return v.second }

// Grid returns the grid geometry.
func (v *CollisionView) Grid() core.Grid { return v.grid }

// Catalog returns the element catalog.
func (v *CollisionView) Catalog() *Catalog { return v.catalog }

// Rand returns the world's sequential random source.
func (v *CollisionView) Rand() *core.RNG { return v.rng }

// At returns the tile at global index j, which must neighbour one of the
// participants. Participants and cells further away panic.
func (v *CollisionView) At(j int) *Tile {
	if j == v.first || j == v.second {
		panic(fmt.Sprintf("collision view: cell %d is a participant", j))
	}
	if !v.touches(v.first, j) && !v.touches(v.second, j) {
		panic(fmt.Sprintf("collision view: cell %d is outside the neighbourhood of %d and %d", j, v.first, v.second))
	}
	return &v.cells[j]
}

func (v *CollisionView) touches(center, j int) bool {
	if !v.grid.Contains(j) {
		return false
	}
	cx, cy := v.grid.Coords(center)
	x, y := v.grid.Coords(j)
	return x >= cx-1 && x <= cx+1 && y >= cy-1 && y <= cy+1
}

// ForNeighborsOfFirst calls fn for each neighbour of the first participant
// except the second.
func (v *CollisionView) ForNeighborsOfFirst(fn func(j int, t *Tile)) {
	v.forNeighbors(v.first, v.second, fn)
}

// ForNeighborsOfSecond calls fn for each neighbour of the second participant
// except the first.
func (v *CollisionView) ForNeighborsOfSecond(fn func(j int, t *Tile)) {
	v.forNeighbors(v.second, v.first, fn)
}

func (v *CollisionView) forNeighbors(center, skip int, fn func(j int, t *Tile)) {
	var buf [8]int
	for _, j := range v.grid.AppendNeighbors(buf[:0], center) {
		if j == skip {
			continue
		}
		fn(j, &v.cells[j])
	}
}
