package core

// Grid describes the dimensions of a row-major cell buffer and converts
// between coordinates and linear indices. Unlike a toroidal board it never
// wraps: lookups that would leave the grid report false instead.
type Grid struct {
	W, H int
}

// NewGrid returns a grid with the given dimensions, clamping each side to at
// least one cell.
func NewGrid(w, h int) Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Grid{W: w, H: h}
}

// Len returns the number of cells in the grid.
func (g Grid) Len() int { return g.W * g.H }

// Point returns the linear slice index for coordinates (x, y). Callers are
// responsible for checking InBounds first.
func (g Grid) Point(x, y int) int { return x + y*g.W }

// Coords returns the (x, y) coordinates of a linear index.
func (g Grid) Coords(i int) (int, int) { return i % g.W, i / g.W }

// InBounds reports whether (x, y) lies inside the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Contains reports whether i is a valid linear index.
func (g Grid) Contains(i int) bool { return i >= 0 && i < g.Len() }

// Above returns the index directly above i.
func (g Grid) Above(i int) (int, bool) {
	if !g.Contains(i) || i < g.W {
		return 0, false
	}
	return i - g.W, true
}

// Below returns the index directly below i.
func (g Grid) Below(i int) (int, bool) {
	if !g.Contains(i) || i+g.W >= g.Len() {
		return 0, false
	}
	return i + g.W, true
}

// Left returns the index directly left of i. The first column has no left
// neighbour.
func (g Grid) Left(i int) (int, bool) {
	if !g.Contains(i) || i%g.W == 0 {
		return 0, false
	}
	return i - 1, true
}

// Right returns the index directly right of i.
func (g Grid) Right(i int) (int, bool) {
	if !g.Contains(i) || i%g.W == g.W-1 {
		return 0, false
	}
	return i + 1, true
}

// AdjacentX reports whether j is the left or right neighbour of i.
func (g Grid) AdjacentX(i, j int) bool {
	if l, ok := g.Left(i); ok && l == j {
		return true
	}
	if r, ok := g.Right(i); ok && r == j {
		return true
	}
	return false
}

// AdjacentY reports whether j is directly above or below i.
func (g Grid) AdjacentY(i, j int) bool {
	if a, ok := g.Above(i); ok && a == j {
		return true
	}
	if b, ok := g.Below(i); ok && b == j {
		return true
	}
	return false
}

// Interior reports whether every Moore neighbour of i is inside the grid.
func (g Grid) Interior(i int) bool {
	if !g.Contains(i) {
		return false
	}
	x, y := g.Coords(i)
	return x > 0 && x < g.W-1 && y > 0 && y < g.H-1
}

// RawNeighbors returns the eight Moore offsets of i in raster order
// (up-left, up, up-right, left, right, down-left, down, down-right) without
// any bounds filtering. Only use it where the caller knows i has a margin.
func (g Grid) RawNeighbors(i int) [8]int {
	w := g.W
	return [8]int{
		i - w - 1, i - w, i - w + 1,
		i - 1, i + 1,
		i + w - 1, i + w, i + w + 1,
	}
}

// AppendNeighbors appends the in-bounds Moore neighbours of i to dst in
// raster order and returns the extended slice.
func (g Grid) AppendNeighbors(dst []int, i int) []int {
	if g.Interior(i) {
		raw := g.RawNeighbors(i)
		return append(dst, raw[:]...)
	}
	x, y := g.Coords(i)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			dst = append(dst, g.Point(nx, ny))
		}
	}
	return dst
}

// Neighbors returns the in-bounds Moore neighbours of i.
func (g Grid) Neighbors(i int) []int {
	return g.AppendNeighbors(make([]int, 0, 8), i)
}

// NeighborCount counts the in-bounds neighbours of i matching pred.
func (g Grid) NeighborCount(i int, pred func(j int) bool) int {
	var buf [8]int
	n := 0
	for _, j := range g.AppendNeighbors(buf[:0], i) {
		if pred(j) {
			n++
		}
	}
	return n
}
