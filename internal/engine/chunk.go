package engine

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rdavidson1994/sand/internal/core"
)

// DefaultBandRows is the number of rows each chunk owns.
const DefaultBandRows = 10

// Margin is the number of extra rows on each side of a chunk's own rows that
// its slice covers: the Moore radius plus one row of slack for reactions
// that peek a step further.
const Margin = 2

// Chunk is one band of rows handed to a worker. Its slice covers the band
// plus Margin rows above and below, clipped to the grid.
type Chunk struct {
	cells []Tile
	grid  core.Grid
	base  int
	start int
	end   int
	hood  NeighborhoodView
}

// At returns the tile at global index i. Indices outside the chunk slice
// panic.
func (c *Chunk) At(i int) *Tile { return &c.cells[i-c.base] }

// Bounds returns the half-open range of global indices the chunk owns.
func (c *Chunk) Bounds() (start, end int) { return c.start, c.end }

// Slice returns the global index range covered by the chunk slice.
func (c *Chunk) Slice() (start, end int) { return c.base, c.base + len(c.cells) }

func (c *Chunk) view(i int, catalog *Catalog, seed int64, pass uint64) *NeighborhoodView {
	c.hood.reset(c.cells, c.base, c.grid, i, catalog)
	c.hood.rng.Reseed(seed, pass, i)
	return &c.hood
}

// Driver runs a per-cell function over the grid in two passes over
// alternating bands. Bands within a pass are at least 2*Margin rows apart so
// their slices never overlap and can run concurrently.
type Driver struct {
	grid     core.Grid
	bandRows int
	workers  int
	chunks   []Chunk
}

// NewDriver returns a driver for grid. It panics when bandRows cannot keep
// concurrent slices apart.
func NewDriver(grid core.Grid, bandRows, workers int) *Driver {
	if bandRows < 2*Margin {
		panic(fmt.Sprintf("chunk driver: band of %d rows is shorter than twice the %d row margin", bandRows, Margin))
	}
	if workers < 1 {
		workers = 1
	}
	n := (grid.H + bandRows - 1) / bandRows
	return &Driver{
		grid:     grid,
		bandRows: bandRows,
		workers:  workers,
		chunks:   make([]Chunk, n),
	}
}

// Workers returns the concurrency limit.
func (d *Driver) Workers() int { return d.workers }

// BandRows returns the number of rows per chunk.
func (d *Driver) BandRows() int { return d.bandRows }

// Chunks returns the number of bands.
func (d *Driver) Chunks() int { return len(d.chunks) }

// ForEach calls fn once for every cell index. The first pass covers even
// bands and the second odd ones; fn must only touch cells through the chunk.
func (d *Driver) ForEach(cells []Tile, fn func(c *Chunk, i int)) {
	if len(cells) != d.grid.Len() {
		panic(fmt.Sprintf("chunk driver: %d cells for a %dx%d grid", len(cells), d.grid.W, d.grid.H))
	}
	for pass := 0; pass < 2; pass++ {
		if d.workers <= 1 {
			for b := pass; b < len(d.chunks); b += 2 {
				d.run(b, cells, fn)
			}
			continue
		}
		var g errgroup.Group
		g.SetLimit(d.workers)
		for b := pass; b < len(d.chunks); b += 2 {
			g.Go(func() error {
				d.run(b, cells, fn)
				return nil
			})
		}
		_ = g.Wait()
	}
}

func (d *Driver) run(b int, cells []Tile, fn func(c *Chunk, i int)) {
	w := d.grid.W
	top := b * d.bandRows
	bottom := min(top+d.bandRows, d.grid.H)
	lo := max(top-Margin, 0)
	hi := min(bottom+Margin, d.grid.H)

	c := &d.chunks[b]
	c.grid = d.grid
	c.base = lo * w
	c.cells = cells[lo*w : hi*w : hi*w]
	c.start = top * w
	c.end = bottom * w
	for i := c.start; i < c.end; i++ {
		fn(c, i)
	}
}
