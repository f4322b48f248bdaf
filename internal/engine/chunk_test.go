package engine

import (
	"slices"
	"testing"

	"github.com/rdavidson1994/sand/internal/core"
)

func TestDriverVisitsEveryCellOnce(t *testing.T) {
	grid := core.NewGrid(7, 37)
	for _, workers := range []int{1, 4} {
		d := NewDriver(grid, 4, workers)
		visits := make([]int, grid.Len())
		cells := make([]Tile, grid.Len())
		d.ForEach(cells, func(c *Chunk, i int) {
			visits[i]++
			lo, hi := c.Slice()
			for _, j := range grid.Neighbors(i) {
				if j < lo || j >= hi {
					t.Errorf("neighbour %d of %d outside chunk slice [%d,%d)", j, i, lo, hi)
				}
			}
		})
		for i, n := range visits {
			if n != 1 {
				t.Fatalf("workers=%d: cell %d visited %d times", workers, i, n)
			}
		}
	}
}

func TestDriverRejectsThinBands(t *testing.T) {
	expectPanic(t, "band thinner than two margins", func() {
		NewDriver(core.NewGrid(10, 10), 2*Margin-1, 1)
	})
}

// noisyCatalog has an element whose periodic reaction depends on both its
// neighbours' state and the per-cell random source.
func noisyCatalog() *Catalog {
	noise := Custom(func(t Tile, v *NeighborhoodView) Tile {
		crowd := v.CountElement(2)
		if v.Rand().OneIn(3) {
			t.AdjustInfo(crowd + 1)
		}
		if crowd > 5 && v.Rand().Bool() {
			t.SetElement(1)
		}
		return t
	})
	return MustCatalog(
		Element{ID: 1, Name: "dust"},
		Element{ID: 2, Name: "noise", Periodic: noise},
	)
}

func seededWorld(bandRows, workers int) *World {
	phys := testPhysics()
	phys.BandRows = bandRows
	phys.Workers = workers
	w := NewWorld(Config{Width: 23, Height: 41, Seed: 77, Physics: phys}, noisyCatalog())
	rng := core.NewRNG(5)
	for i := range w.cells {
		if rng.OneIn(3) {
			continue
		}
		w.cells[i] = w.Spawn(ElementID(1 + rng.IntN(2)))
	}
	return w
}

func TestChunkedPassesMatchSequential(t *testing.T) {
	whole := seededWorld(41, 1)
	banded := seededWorld(4, 1)
	parallel := seededWorld(6, 8)

	for tick := 0; tick < 12; tick++ {
		whole.ApplyPeriodicReactions()
		banded.ApplyPeriodicReactions()
		parallel.ApplyPeriodicReactions()
		whole.ApplyGravity()
		banded.ApplyGravity()
		parallel.ApplyGravity()
	}

	if !slices.Equal(whole.Cells(), banded.Cells()) {
		t.Fatal("banded sequential run diverged from the single band run")
	}
	if !slices.Equal(whole.Cells(), parallel.Cells()) {
		t.Fatal("parallel run diverged from the single band run")
	}
}
