package engine

import (
	"slices"
	"testing"
)

func expectPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s did not panic", what)
		}
	}()
	fn()
}

func TestMutatePairIsExclusive(t *testing.T) {
	const n = 6
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			data := make([]int, n)
			a, b := MutatePair(data, i, j)
			*a = 1
			*b = 2
			if *a != 1 {
				t.Fatalf("pair (%d,%d): write through second reached first", i, j)
			}
			if data[i] != 1 || data[j] != 2 {
				t.Fatalf("pair (%d,%d): got %v", i, j, data)
			}
		}
	}
}

func TestMutatePairSameIndexPanics(t *testing.T) {
	expectPanic(t, "MutatePair(3,3)", func() {
		MutatePair(make([]int, 5), 3, 3)
	})
}

func TestMutateNeighborhoodRasterOrder(t *testing.T) {
	data := make([]int, 25)
	center, hood := MutateNeighborhood(data, 2+5*2, 5)
	*center += 9

	index := 1
	hood.ForEach(func(v *int) {
		*v += index
		index++
	})

	want := []int{
		0, 0, 0, 0, 0,
		0, 1, 2, 3, 0,
		0, 4, 9, 5, 0,
		0, 6, 7, 8, 0,
		0, 0, 0, 0, 0,
	}
	if !slices.Equal(data, want) {
		t.Fatalf("neighbourhood writes landed in the wrong cells:\n got %v\nwant %v", data, want)
	}
}

func TestMutateNeighborhoodNeedsMargin(t *testing.T) {
	expectPanic(t, "neighbourhood on the top row", func() {
		MutateNeighborhood(make([]int, 25), 2, 5)
	})
	expectPanic(t, "neighbourhood on the bottom row", func() {
		MutateNeighborhood(make([]int, 25), 22, 5)
	})
}

func TestWorldMutateNeighborsEmptyCenterPanics(t *testing.T) {
	w := newTestWorld(5, 5)
	expectPanic(t, "MutateNeighbors on empty cell", func() {
		w.MutateNeighbors(w.Grid().Point(2, 2))
	})

	center := w.Grid().Point(2, 2)
	w.Set(center, w.Spawn(testSand))
	tile, hood := w.MutateNeighbors(center)
	tile.Velocity.Y = 4
	hood.ForEach(func(n *Tile) { *n = w.Spawn(testWater) })
	if got := w.At(center).Velocity.Y; got != 4 {
		t.Fatalf("centre velocity = %d, want 4", got)
	}
	if got := w.Histogram()[testWater]; got != 8 {
		t.Fatalf("water count = %d, want 8", got)
	}
}
