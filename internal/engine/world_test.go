package engine

import (
	"image/color"
	"testing"
)

const (
	testWall ElementID = iota + 1
	testSand
	testWater
	testFire
	testBall
)

func testCatalog() *Catalog {
	return MustCatalog(
		Element{ID: testWall, Name: "wall", Flags: Fixed, Mass: 100, Color: color.RGBA{A: 255}},
		Element{ID: testSand, Name: "sand", Flags: Gravity, Mass: 10},
		Element{ID: testWater, Name: "water", Flags: Gravity | Fluid, Mass: 10},
		Element{ID: testFire, Name: "fire", Flags: PauseExempt, Mass: 1},
		Element{ID: testBall, Name: "ball", Flags: Gravity | PerfectRestitution, Mass: 10},
	)
}

func testPhysics() Physics {
	p := DefaultPhysics()
	p.Workers = 1
	p.FluidPushChance = 0
	p.BandRows = 4
	return p
}

func newTestWorld(width, height int) *World {
	return NewWorld(Config{Width: width, Height: height, Seed: 1, Physics: testPhysics()}, testCatalog())
}

func place(w *World, x, y int, id ElementID) int {
	i := w.Grid().Point(x, y)
	w.cells[i] = w.Spawn(id)
	return i
}

func TestFlagsHasMatchesAnyBit(t *testing.T) {
	f := Gravity | Fluid
	if !f.Has(Fluid) || !f.Has(Fixed|Fluid) {
		t.Fatal("flag set misses a bit it carries")
	}
	if f.Has(Fixed) || f.Has(Fixed|PauseExempt) || f.Has(NoFlags) {
		t.Fatal("flag set matched bits it does not carry")
	}
}

func TestCatalogRejectsGaps(t *testing.T) {
	if _, err := NewCatalog(Element{ID: 2, Name: "two"}); err == nil {
		t.Fatal("catalog accepted id 2 without id 1")
	}
	if _, err := NewCatalog(Element{ID: 1, Name: "a"}, Element{ID: 1, Name: "b"}); err == nil {
		t.Fatal("catalog accepted a duplicate id")
	}
	c := testCatalog()
	if id, ok := c.Lookup("water"); !ok || id != testWater {
		t.Fatalf("lookup water = %d,%v", id, ok)
	}
	if c.Has(Empty, Fixed) {
		t.Fatal("empty must carry no flags")
	}
}

func TestPauseParticlesNeedsFloorAndLowSpeed(t *testing.T) {
	w := newTestWorld(6, 6)
	floor := place(w, 1, 5, testSand)
	w.cells[floor].Velocity = Vector{X: 1, Y: 2}
	falling := place(w, 2, 2, testSand)
	fast := place(w, 3, 5, testSand)
	w.cells[fast].Velocity.X = 10
	exempt := place(w, 4, 5, testFire)
	place(w, 5, 5, testWall)
	onWall := place(w, 5, 4, testSand)

	w.PauseParticles()

	if got := w.At(floor); !got.Paused || !got.Velocity.IsZero() {
		t.Fatalf("tile on world floor: paused=%v velocity=%+v", got.Paused, got.Velocity)
	}
	if w.At(falling).Paused {
		t.Fatal("unsupported tile fell asleep")
	}
	if w.At(fast).Paused {
		t.Fatal("fast tile fell asleep")
	}
	if w.At(exempt).Paused {
		t.Fatal("pause exempt tile fell asleep")
	}
	if !w.At(onWall).Paused {
		t.Fatal("tile resting on a fixed tile stayed awake")
	}
}

func TestSwapWakesStackAboveSource(t *testing.T) {
	w := newTestWorld(5, 5)
	var column []int
	for y := 1; y <= 4; y++ {
		column = append(column, place(w, 2, y, testSand))
	}
	// Each scan settles one more layer of the pile.
	for range column {
		w.PauseParticles()
	}
	for _, i := range column {
		if !w.At(i).Paused {
			t.Fatalf("cell %d should sleep before the disturbance", i)
		}
	}

	bottom := column[len(column)-1]
	w.MoveParticle(bottom, w.Grid().Point(3, 4))

	for _, i := range column[:len(column)-1] {
		if w.At(i).Paused {
			x, y := w.Grid().Coords(i)
			t.Fatalf("tile at (%d,%d) still asleep after its support moved", x, y)
		}
	}
}

func TestCollisionWakesDestinationAndExchangesMomentum(t *testing.T) {
	w := newTestWorld(5, 5)
	target := place(w, 2, 4, testSand)
	w.cells[target].Paused = true
	source := place(w, 2, 3, testSand)
	w.cells[source].Velocity.Y = 10

	w.MoveParticle(source, target)

	s, d := w.At(source), w.At(target)
	if d.Paused {
		t.Fatal("collision left the destination asleep")
	}
	if s.Velocity.Y != 0 || d.Velocity.Y != 8 {
		t.Fatalf("velocities after collision = (%d,%d), want (0,8)", s.Velocity.Y, d.Velocity.Y)
	}
	if got := w.Stats().Collisions; got != 1 {
		t.Fatalf("collisions = %d, want 1", got)
	}
}

func TestBounceOffFixed(t *testing.T) {
	w := newTestWorld(5, 5)
	wall := place(w, 2, 4, testWall)
	sand := place(w, 2, 3, testSand)
	w.cells[sand].Velocity.Y = 10
	ball := place(w, 3, 3, testBall)
	w.cells[ball].Velocity.X = 10
	place(w, 4, 3, testWall)

	w.MoveParticle(sand, wall)
	w.MoveParticle(ball, w.Grid().Point(4, 3))

	if got := w.At(sand).Velocity.Y; got != -5 {
		t.Fatalf("sand bounce = %d, want -5", got)
	}
	if got := w.At(ball).Velocity.X; got != -10 {
		t.Fatalf("perfect bounce = %d, want -10", got)
	}
	if !w.At(wall).Is(testWall) {
		t.Fatal("fixed tile moved")
	}
}

func TestBounceDropsOverflowedOffset(t *testing.T) {
	w := newTestWorld(5, 5)
	place(w, 2, 4, testWall)
	sand := place(w, 2, 3, testSand)
	w.cells[sand].Velocity.Y = 10
	w.cells[sand].Position.Y = 120
	place(w, 3, 1, testWall)
	ball := place(w, 2, 1, testBall)
	w.cells[ball].Velocity.X = 10
	w.cells[ball].Position.X = 120

	w.ApplyVelocity()
	if p := w.At(sand).Position; p.Y != 0 {
		t.Fatalf("sand offset after bounce = %d, want 0", p.Y)
	}
	if p := w.At(ball).Position; p.X != 0 {
		t.Fatalf("ball offset after bounce = %d, want 0", p.X)
	}

	w.ApplyVelocity()
	if !w.At(sand).Is(testSand) || w.At(sand).Position.Y != -5 {
		t.Fatalf("sand left its cell after bouncing: %+v", w.At(sand))
	}
	if !w.At(ball).Is(testBall) || w.At(ball).Position.X != -10 {
		t.Fatalf("ball left its cell after bouncing: %+v", w.At(ball))
	}
}

func TestFluidPushThrough(t *testing.T) {
	for _, tc := range []struct {
		chance float64
		swap   bool
	}{{0, false}, {1, true}} {
		w := newTestWorld(5, 5)
		w.physics.FluidPushChance = tc.chance
		water := place(w, 2, 4, testWater)
		sand := place(w, 2, 3, testSand)
		w.cells[sand].Velocity.Y = 10

		w.MoveParticle(sand, water)

		if got := w.At(water).Is(testSand); got != tc.swap {
			t.Fatalf("chance %.0f: sand below = %v, want %v", tc.chance, got, tc.swap)
		}
	}
}

func TestApplyGravity(t *testing.T) {
	w := newTestWorld(5, 5)
	awake := place(w, 1, 1, testSand)
	full := place(w, 2, 1, testSand)
	w.cells[full].Velocity.Y = 127
	asleep := place(w, 3, 1, testSand)
	w.cells[asleep].Paused = true
	wall := place(w, 4, 1, testWall)
	fire := place(w, 0, 1, testFire)

	w.ApplyGravity()

	if got := w.At(awake).Velocity.Y; got != 1 {
		t.Fatalf("awake sand velocity = %d, want 1", got)
	}
	if got := w.At(full).Velocity.Y; got != 127 {
		t.Fatalf("gravity wrapped: %d", got)
	}
	if !w.At(asleep).Velocity.IsZero() || !w.At(wall).Velocity.IsZero() || !w.At(fire).Velocity.IsZero() {
		t.Fatal("gravity touched a sleeping, fixed or weightless tile")
	}
}

func TestApplyVelocityMovesOnOverflow(t *testing.T) {
	w := newTestWorld(5, 5)
	i := place(w, 2, 2, testSand)
	w.cells[i].Velocity.Y = 127
	w.cells[i].Position.Y = 10

	if !w.ApplyVelocity() {
		t.Fatal("overflow not reported")
	}
	below := w.Grid().Point(2, 3)
	if !w.At(i).IsEmpty() || !w.At(below).Is(testSand) {
		t.Fatal("tile did not move down one cell")
	}

	slow := place(w, 0, 0, testSand)
	w.cells[slow].Velocity.X = 1
	w.cells[below].Velocity = Vector{}
	if w.ApplyVelocity() {
		t.Fatal("slow tile should not overflow in one tick")
	}
}

func TestMotionQueueOrder(t *testing.T) {
	var q motionQueue
	q.push(move{source: 1}, 1, 0)
	q.push(move{source: 2}, 0, -1)
	q.push(move{source: 3}, 0, 1)
	q.push(move{source: 4}, -1, 0)

	var got []int
	q.each(func(m move) { got = append(got, m.source) })
	want := []int{3, 1, 2, 4}
	if len(got) != len(want) || q.len() != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for k := range want {
		if got[k] != want[k] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestTrainMovesWithoutSelfCollision(t *testing.T) {
	w := newTestWorld(6, 5)
	lead := place(w, 2, 2, testSand)
	tail := place(w, 1, 2, testSand)
	for _, i := range []int{lead, tail} {
		w.cells[i].Velocity.X = 127
		w.cells[i].Position.X = 10
	}

	w.ApplyVelocity()

	if got := w.Stats().Collisions; got != 0 {
		t.Fatalf("train collided with itself %d times", got)
	}
	if !w.At(w.Grid().Point(3, 2)).Is(testSand) || !w.At(w.Grid().Point(2, 2)).Is(testSand) {
		t.Fatal("train did not advance one cell")
	}
	if !w.At(tail).IsEmpty() {
		t.Fatal("tail cell not vacated")
	}
}

func TestCreateWallsAndCounts(t *testing.T) {
	w := newTestWorld(5, 4)
	w.CreateWalls(testWall)
	occupied, paused := w.Counts()
	if occupied != 14 || paused != 0 {
		t.Fatalf("counts = (%d,%d), want (14,0)", occupied, paused)
	}
	if !w.At(w.Grid().Point(1, 1)).IsEmpty() {
		t.Fatal("interior cell walled")
	}
	if !w.HasStableFloor(w.Grid().Point(1, 2)) {
		t.Fatal("cell above the bottom wall must have a stable floor")
	}
	if w.HasStableFloor(w.Grid().Point(1, 1)) {
		t.Fatal("cell above empty space has no stable floor")
	}
}
