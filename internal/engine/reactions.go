package engine

import "fmt"

// CollisionReaction transforms two colliding tiles. first always holds the
// lower element id. Return Tile{} to delete a participant.
type CollisionReaction func(first, second Tile) (Tile, Tile)

// CollisionSideEffect is a CollisionReaction that may also read and write the
// cells around both participants through the view.
type CollisionSideEffect func(first, second Tile, view *CollisionView) (Tile, Tile)

type reagents struct {
	first, second ElementID
}

type flagReaction struct {
	flag Flags
	fn   CollisionReaction
}

// Reactions maps element pairs and element/flag combinations to collision
// handlers. Registration happens once at startup; dispatch is read-only.
type Reactions struct {
	catalog     *Catalog
	reactions   map[reagents]CollisionReaction
	sideEffects map[reagents]CollisionSideEffect
	flagged     map[ElementID][]flagReaction
}

func newReactions(catalog *Catalog) *Reactions {
	return &Reactions{
		catalog:     catalog,
		reactions:   make(map[reagents]CollisionReaction),
		sideEffects: make(map[reagents]CollisionSideEffect),
		flagged:     make(map[ElementID][]flagReaction),
	}
}

func (r *Reactions) key(kind string, a, b ElementID) reagents {
	r.checkID(kind, a)
	r.checkID(kind, b)
	if b < a {
		panic(fmt.Sprintf("%s registered for %s and %s: ids must be ascending (%d > %d)",
			kind, r.catalog.Name(a), r.catalog.Name(b), a, b))
	}
	return reagents{first: a, second: b}
}

func (r *Reactions) checkID(kind string, id ElementID) {
	if id == Empty || int(id) >= r.catalog.Len() {
		panic(fmt.Sprintf("%s registered for unknown element id %d", kind, id))
	}
}

// RegisterCollisionReaction binds fn to the pair (a, b). It panics on
// descending or unknown ids and on a second registration for the same pair.
func (r *Reactions) RegisterCollisionReaction(a, b ElementID, fn CollisionReaction) {
	k := r.key("collision reaction", a, b)
	if _, dup := r.reactions[k]; dup {
		panic(fmt.Sprintf("duplicate collision reaction for %s and %s", r.catalog.Name(a), r.catalog.Name(b)))
	}
	r.reactions[k] = fn
}

// RegisterCollisionSideEffect binds fn to the pair (a, b) with the same rules
// as RegisterCollisionReaction.
func (r *Reactions) RegisterCollisionSideEffect(a, b ElementID, fn CollisionSideEffect) {
	k := r.key("collision side effect", a, b)
	if _, dup := r.sideEffects[k]; dup {
		panic(fmt.Sprintf("duplicate collision side effect for %s and %s", r.catalog.Name(a), r.catalog.Name(b)))
	}
	r.sideEffects[k] = fn
}

// RegisterFlagCollisionReaction binds fn to collisions between id and any
// element carrying flag. fn receives the id tile first.
func (r *Reactions) RegisterFlagCollisionReaction(id ElementID, flag Flags, fn CollisionReaction) {
	r.checkID("flag reaction", id)
	if flag == NoFlags {
		panic(fmt.Sprintf("flag reaction for %s needs a flag", r.catalog.Name(id)))
	}
	for _, fr := range r.flagged[id] {
		if fr.flag == flag {
			panic(fmt.Sprintf("duplicate flag reaction for %s and flag %d", r.catalog.Name(id), flag))
		}
	}
	r.flagged[id] = append(r.flagged[id], flagReaction{flag: flag, fn: fn})
}

// dispatch runs the first matching handler for the tiles at i and j: the pair
// side effect, the pair reaction, then flag reactions in both orders. Changed
// cells are committed straight away because later moves in the same queue
// must see them. It reports whether a handler ran.
func (r *Reactions) dispatch(w *World, i, j int) bool {
	a, b := w.cells[i], w.cells[j]
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	first, second := i, j
	if b.Element() < a.Element() {
		first, second = j, i
	}
	k := reagents{first: w.cells[first].Element(), second: w.cells[second].Element()}

	if fn, ok := r.sideEffects[k]; ok {
		view := &CollisionView{
			cells:   w.cells,
			grid:    w.grid,
			first:   first,
			second:  second,
			catalog: r.catalog,
			rng:     w.rng,
		}
		x, y := fn(w.cells[first], w.cells[second], view)
		w.settle(first, second, x, y)
		w.commitAround(first)
		w.commitAround(second)
		return true
	}
	if fn, ok := r.reactions[k]; ok {
		x, y := fn(w.cells[first], w.cells[second])
		w.settle(first, second, x, y)
		return true
	}
	for _, order := range [2][2]int{{first, second}, {second, first}} {
		p, q := order[0], order[1]
		for _, fr := range r.flagged[w.cells[p].Element()] {
			if !r.catalog.Has(w.cells[q].Element(), fr.flag) {
				continue
			}
			x, y := fr.fn(w.cells[p], w.cells[q])
			w.settle(p, q, x, y)
			return true
		}
	}
	return false
}

// settle writes reaction results back, publishes their staged state and wakes
// anything that lost its support.
func (w *World) settle(i, j int, x, y Tile) {
	x.Commit()
	y.Commit()
	w.cells[i], w.cells[j] = x, y
	for _, k := range [2]int{i, j} {
		w.cells[k].Paused = false
		if !w.cells[k].IsEmpty() {
			continue
		}
		if a, ok := w.grid.Above(k); ok {
			w.Unpause(a)
		}
	}
}

// commitAround publishes staged state in the neighbourhood of i and wakes
// every neighbour a side effect may have touched.
func (w *World) commitAround(i int) {
	var buf [8]int
	for _, j := range w.grid.AppendNeighbors(buf[:0], i) {
		t := &w.cells[j]
		wasEmpty, before := t.IsEmpty(), t.State()
		t.Commit()
		if t.IsEmpty() {
			if wasEmpty {
				continue
			}
			if a, ok := w.grid.Above(j); ok {
				w.Unpause(a)
			}
			continue
		}
		if t.State() != before {
			t.Paused = false
		}
	}
}
