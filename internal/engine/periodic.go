package engine

// PeriodicReaction is the per-element hook run on every occupied cell once
// per reaction period. The variants are Custom, NoReaction, DecayInto and
// DecayToNothing.
type PeriodicReaction interface {
	react(t Tile, view *NeighborhoodView) Tile
}

// Custom runs arbitrary per-cell logic. The returned tile replaces the cell;
// return Tile{} to delete it at the end of the pass. Changes to the element
// state of the tile or a neighbour must go through SetElement, SetState or
// AdjustInfo so they stay staged until the pass commits.
type Custom func(t Tile, view *NeighborhoodView) Tile

func (f Custom) react(t Tile, view *NeighborhoodView) Tile { return f(t, view) }

// NoReaction leaves the tile alone.
type NoReaction struct{}

func (NoReaction) react(t Tile, _ *NeighborhoodView) Tile { return t }

// DecayInto ages the tile by one with a 1-in-Rarity chance per period and
// turns it into Element once its special info reaches Lifetime.
type DecayInto struct {
	Element  ElementID
	Lifetime uint8
	Rarity   int
}

func (d DecayInto) react(t Tile, view *NeighborhoodView) Tile {
	if age(&t, d.Lifetime, d.Rarity, view) {
		t.SetElement(d.Element)
	}
	return t
}

// DecayToNothing ages the tile like DecayInto and deletes it at end of life.
type DecayToNothing struct {
	Lifetime uint8
	Rarity   int
}

func (d DecayToNothing) react(t Tile, view *NeighborhoodView) Tile {
	if age(&t, d.Lifetime, d.Rarity, view) {
		return Tile{}
	}
	return t
}

// age advances the decay counter stored in special info and reports whether
// the tile reached the end of its life.
func age(t *Tile, lifetime uint8, rarity int, view *NeighborhoodView) bool {
	if !view.Rand().OneIn(rarity) {
		return false
	}
	t.AdjustInfo(1)
	return t.Staged().Info >= lifetime
}

// ApplyPeriodicReactions runs every occupied cell's periodic reaction through
// the chunk driver, then commits staged state for every cell. A reaction sees
// its neighbours' element state as it was before this pass.
func (w *World) ApplyPeriodicReactions() {
	pass := w.passes
	w.passes++

	w.driver.ForEach(w.cells, func(c *Chunk, i int) {
		t := c.At(i)
		if t.IsEmpty() {
			return
		}
		reaction := w.catalog.Get(t.Element()).Periodic
		if _, none := reaction.(NoReaction); none {
			return
		}
		view := c.view(i, w.catalog, w.seed, pass)
		next := reaction.react(*t, view)
		if next.IsEmpty() {
			// Deletion is staged like any other change so neighbours still
			// see this tile until the commit.
			t.SetElement(Empty)
			return
		}
		*t = next
	})

	w.driver.ForEach(w.cells, func(c *Chunk, i int) {
		t := c.At(i)
		wasEmpty := t.IsEmpty()
		t.Commit()
		if wasEmpty || !t.IsEmpty() {
			return
		}
		// The tile resting here lost its support; waking it lets the next
		// move out of it wake the rest of the stack.
		if a, ok := w.grid.Above(i); ok {
			c.At(a).Paused = false
		}
	})
}
