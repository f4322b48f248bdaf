package engine

import "math"

// ElementID identifies an entry in the element catalog. Zero is reserved for
// empty space.
type ElementID uint8

// Empty is the element of an unoccupied cell.
const Empty ElementID = 0

// InfoNone is the special info of a tile whose element has not set any. Special
// info is never zero on an occupied tile.
const InfoNone uint8 = 1

// ElementState is the part of a tile that reactions stage and commit.
type ElementState struct {
	Element ElementID
	Info    uint8
}

// StateOf returns the default state for an element.
func StateOf(id ElementID) ElementState {
	return ElementState{Element: id, Info: InfoNone}
}

// NewState returns a state with explicit special info. Zero info is coerced
// to InfoNone.
func NewState(id ElementID, info uint8) ElementState {
	if info == 0 {
		info = InfoNone
	}
	return ElementState{Element: id, Info: info}
}

// Vector is a small signed 2D displacement.
type Vector struct {
	X, Y int8
}

// IsZero reports whether both components are zero.
func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Tile is the occupant of one grid cell. The zero value is empty space.
//
// Element state is double buffered: reads see the current state, writes go to
// the staged state, and Commit publishes staged into current.
type Tile struct {
	current ElementState
	staged  ElementState

	Velocity    Vector
	Position    Vector
	Temperature int16
	Paused      bool
}

// NewTile builds an occupied tile. An Empty state yields the empty tile.
func NewTile(state ElementState, position, velocity Vector, temperature int16) Tile {
	if state.Element == Empty {
		return Tile{}
	}
	if state.Info == 0 {
		state.Info = InfoNone
	}
	return Tile{
		current:     state,
		staged:      state,
		Position:    position,
		Velocity:    velocity,
		Temperature: temperature,
	}
}

// Stationary builds a tile at rest.
func Stationary(state ElementState, temperature int16) Tile {
	return NewTile(state, Vector{}, Vector{}, temperature)
}

// IsEmpty reports whether the cell holds no particle.
func (t Tile) IsEmpty() bool { return t.current.Element == Empty }

// Element returns the committed element id.
func (t Tile) Element() ElementID { return t.current.Element }

// SpecialInfo returns the committed special info byte.
func (t Tile) SpecialInfo() uint8 { return t.current.Info }

// State returns the committed element state.
func (t Tile) State() ElementState { return t.current }

// Staged returns the state that the next Commit will publish.
func (t Tile) Staged() ElementState { return t.staged }

// Is reports whether the committed element is id.
func (t Tile) Is(id ElementID) bool { return t.current.Element == id }

// HasState reports whether the committed state is exactly (id, info).
func (t Tile) HasState(id ElementID, info uint8) bool {
	return t.current == ElementState{Element: id, Info: info}
}

// SetElement stages a change of element, resetting special info. On an
// empty cell it stages a new tile that appears at the next Commit.
func (t *Tile) SetElement(id ElementID) {
	t.staged = StateOf(id)
}

// SetState stages a full element state.
func (t *Tile) SetState(s ElementState) {
	t.staged = NewState(s.Element, s.Info)
}

// SetInfo stages new special info for the staged element.
func (t *Tile) SetInfo(info uint8) {
	if info == 0 {
		info = InfoNone
	}
	t.staged.Info = info
}

// AdjustInfo adds delta to the staged special info, saturating at 1 and 255.
func (t *Tile) AdjustInfo(delta int) {
	v := int(t.staged.Info) + delta
	switch {
	case v < int(InfoNone):
		v = int(InfoNone)
	case v > math.MaxUint8:
		v = math.MaxUint8
	}
	t.staged.Info = uint8(v)
}

// Commit publishes the staged state. Committing a staged Empty clears the
// tile.
func (t *Tile) Commit() {
	if t.staged.Element == Empty {
		*t = Tile{}
		return
	}
	t.current = t.staged
}

// AddVelocity adds (dx, dy) to the velocity, saturating each axis.
func (t *Tile) AddVelocity(dx, dy int) {
	t.Velocity.X = saturateInt8(int(t.Velocity.X) + dx)
	t.Velocity.Y = saturateInt8(int(t.Velocity.Y) + dy)
}

// Stop zeroes the velocity.
func (t *Tile) Stop() { t.Velocity = Vector{} }

func saturateInt8(v int) int8 {
	if v > math.MaxInt8 {
		return math.MaxInt8
	}
	if v < math.MinInt8 {
		return math.MinInt8
	}
	return int8(v)
}

func saturatingAdd(a, b int8) int8 {
	return saturateInt8(int(a) + int(b))
}

// truncSaturate truncates f toward zero and clamps it into int8.
func truncSaturate(f float64) int8 {
	f = math.Trunc(f)
	if math.IsNaN(f) {
		return 0
	}
	if f > math.MaxInt8 {
		return math.MaxInt8
	}
	if f < math.MinInt8 {
		return math.MinInt8
	}
	return int8(f)
}

// overflowingAdd adds two int8 values with wraparound and reports whether the
// true sum left the int8 range.
func overflowingAdd(a, b int8) (int8, bool) {
	sum := int(a) + int(b)
	return int8(sum), sum > math.MaxInt8 || sum < math.MinInt8
}

func abs8(v int8) int {
	if v < 0 {
		return -int(v)
	}
	return int(v)
}

func sign8(v int8) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// elasticCollide resolves a one-dimensional elastic collision between masses
// m1 and m2 and scales each outgoing velocity by its restitution.
func elasticCollide(v1, v2, m1, m2 int8, r1, r2 float64) (int8, int8) {
	fv1, fv2 := float64(v1), float64(v2)
	fm1, fm2 := float64(m1), float64(m2)
	total := fm1 + fm2
	if total == 0 {
		return truncSaturate(fv2 * r1), truncSaturate(fv1 * r2)
	}
	out1 := ((fm1-fm2)/total*fv1 + 2*fm2/total*fv2) * r1
	out2 := ((fm2-fm1)/total*fv2 + 2*fm1/total*fv1) * r2
	return truncSaturate(out1), truncSaturate(out2)
}

// reflect bounces v off an immovable obstacle.
func reflect(v int8, restitution float64) int8 {
	return truncSaturate(-float64(v) * restitution)
}
