package engine

import "testing"

func TestCollisionReactionRunsOnceWithAscendingOrder(t *testing.T) {
	for _, sandOnTop := range []bool{true, false} {
		w := newTestWorld(5, 5)
		calls := 0
		w.RegisterCollisionReaction(testSand, testWater, func(first, second Tile) (Tile, Tile) {
			calls++
			if !first.Is(testSand) || !second.Is(testWater) {
				t.Fatalf("reaction got (%d,%d), want (sand,water)", first.Element(), second.Element())
			}
			return first, Tile{}
		})

		top, bottom := testSand, testWater
		if !sandOnTop {
			top, bottom = testWater, testSand
		}
		dst := place(w, 2, 4, bottom)
		src := place(w, 2, 3, top)
		w.cells[src].Velocity.Y = 5

		w.MoveParticle(src, dst)

		if calls != 1 {
			t.Fatalf("sand on top %v: reaction ran %d times", sandOnTop, calls)
		}
		if got := w.Histogram()[testWater]; got != 0 {
			t.Fatalf("sand on top %v: water survived the reaction", sandOnTop)
		}
		if got := w.Stats().Reactions; got != 1 {
			t.Fatalf("reaction count = %d", got)
		}
	}
}

func TestRegistrationRejectsMisuse(t *testing.T) {
	noop := func(a, b Tile) (Tile, Tile) { return a, b }
	w := newTestWorld(5, 5)
	w.RegisterCollisionReaction(testSand, testWater, noop)

	expectPanic(t, "duplicate reaction", func() {
		w.RegisterCollisionReaction(testSand, testWater, noop)
	})
	expectPanic(t, "descending ids", func() {
		w.RegisterCollisionReaction(testWater, testWall, noop)
	})
	expectPanic(t, "unknown id", func() {
		w.RegisterCollisionReaction(testSand, 200, noop)
	})
	expectPanic(t, "empty id", func() {
		w.RegisterCollisionSideEffect(Empty, testSand, nil)
	})

	side := func(a, b Tile, _ *CollisionView) (Tile, Tile) { return a, b }
	w.RegisterCollisionSideEffect(testSand, testWater, side)
	expectPanic(t, "duplicate side effect", func() {
		w.RegisterCollisionSideEffect(testSand, testWater, side)
	})

	w.RegisterFlagCollisionReaction(testFire, Fixed, noop)
	expectPanic(t, "duplicate flag reaction", func() {
		w.RegisterFlagCollisionReaction(testFire, Fixed, noop)
	})
}

func TestSideEffectTakesPrecedenceAndSpawns(t *testing.T) {
	w := newTestWorld(6, 6)
	w.RegisterCollisionReaction(testSand, testFire, func(a, b Tile) (Tile, Tile) {
		t.Fatal("pair reaction ran although a side effect is registered")
		return a, b
	})
	w.RegisterCollisionSideEffect(testSand, testFire, func(sand, fire Tile, v *CollisionView) (Tile, Tile) {
		v.ForNeighborsOfFirst(func(j int, n *Tile) {
			if j == v.Second() {
				t.Fatal("neighbours of first include second")
			}
			if n.IsEmpty() {
				n.SetElement(testFire)
			}
		})
		sand.SetElement(testFire)
		return sand, fire
	})

	sand := place(w, 2, 2, testSand)
	fire := place(w, 2, 3, testFire)
	w.cells[sand].Velocity.Y = 4
	w.MoveParticle(sand, fire)

	if got := w.Histogram()[testFire]; got != 9 {
		t.Fatalf("fire count = %d, want 9", got)
	}
	if got := w.Histogram()[testSand]; got != 0 {
		t.Fatal("sand did not ignite")
	}
}

func TestFlagReactionMatchesEitherOrder(t *testing.T) {
	w := newTestWorld(5, 5)
	calls := 0
	w.RegisterFlagCollisionReaction(testFire, Fixed, func(fire, other Tile) (Tile, Tile) {
		calls++
		if !fire.Is(testFire) || !other.Is(testWall) {
			t.Fatalf("flag reaction got (%d,%d)", fire.Element(), other.Element())
		}
		return Tile{}, other
	})

	wall := place(w, 2, 4, testWall)
	fire := place(w, 2, 3, testFire)
	w.cells[fire].Velocity.Y = 3
	w.MoveParticle(fire, wall)

	if calls != 1 || !w.At(fire).IsEmpty() {
		t.Fatalf("calls=%d fire left=%v", calls, !w.At(fire).IsEmpty())
	}

	sand := place(w, 1, 3, testSand)
	w.cells[sand].Velocity = Vector{X: 3, Y: 3}
	w.MoveParticle(sand, wall)
	if calls != 1 {
		t.Fatal("flag reaction ran for an element it was not registered for")
	}
}

func TestReactionRemovalWakesTileAbove(t *testing.T) {
	w := newTestWorld(5, 5)
	w.RegisterCollisionReaction(testSand, testWater, func(a, b Tile) (Tile, Tile) {
		return a, Tile{}
	})
	water := place(w, 2, 3, testWater)
	sleeper := place(w, 2, 2, testSand)
	w.cells[sleeper].Paused = true
	src := place(w, 3, 3, testSand)
	w.cells[src].Velocity.X = -5

	w.MoveParticle(src, water)

	if w.At(sleeper).Paused {
		t.Fatal("tile above a removed participant stayed asleep")
	}
}

func TestSideEffectViewStopsAtNeighbourhood(t *testing.T) {
	w := newTestWorld(8, 8)
	far := place(w, 6, 6, testSand)
	near := place(w, 3, 1, testSand)
	w.RegisterCollisionSideEffect(testSand, testFire, func(sand, fire Tile, v *CollisionView) (Tile, Tile) {
		v.At(near).SetElement(testFire)
		v.At(far).SetElement(testWater)
		return sand, fire
	})

	sand := place(w, 2, 2, testSand)
	fire := place(w, 2, 3, testFire)
	w.cells[sand].Velocity.Y = 4
	expectPanic(t, "side effect reaching a distant cell", func() {
		w.MoveParticle(sand, fire)
	})
	if got := w.At(far); !got.Is(testSand) || got.Staged().Element != testSand {
		t.Fatalf("distant cell changed: element %d staged %d", got.Element(), got.Staged().Element)
	}
}

func TestFlagReactionMatchesCombinedMask(t *testing.T) {
	w := newTestWorld(5, 5)
	calls := 0
	w.RegisterFlagCollisionReaction(testFire, Fixed|Fluid, func(fire, other Tile) (Tile, Tile) {
		calls++
		return fire, other
	})

	water := place(w, 2, 4, testWater)
	fire := place(w, 2, 3, testFire)
	w.cells[fire].Velocity.Y = 3
	w.MoveParticle(fire, water)
	if calls != 1 {
		t.Fatalf("flag reaction ran %d times for a fluid partner, want 1", calls)
	}

	sand := place(w, 1, 3, testSand)
	w.cells[sand].Velocity.X = 3
	w.MoveParticle(sand, fire)
	if calls != 1 {
		t.Fatal("flag reaction ran for a partner carrying neither flag")
	}
}
