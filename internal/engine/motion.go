package engine

type move struct {
	source, destination int
}

// motionQueue orders the moves found by one velocity scan. Moves heading up
// or left are appended to the back, the rest are pushed to the front, so a
// row of tiles travelling together moves leader first and does not collide
// with itself.
type motionQueue struct {
	front []move // stored in push order, drained in reverse
	back  []move
}

func (q *motionQueue) reset() {
	q.front = q.front[:0]
	q.back = q.back[:0]
}

func (q *motionQueue) push(m move, dx, dy int) {
	if dy < 0 || (dy == 0 && dx < 0) {
		q.back = append(q.back, m)
		return
	}
	q.front = append(q.front, m)
}

func (q *motionQueue) len() int { return len(q.front) + len(q.back) }

func (q *motionQueue) each(fn func(m move)) {
	for i := len(q.front) - 1; i >= 0; i-- {
		fn(q.front[i])
	}
	for _, m := range q.back {
		fn(m)
	}
}

// ApplyVelocity integrates every awake, unfixed tile's velocity into its
// sub-cell position. A tile whose position overflows on an axis is queued for
// a one-cell move in that axis' direction; the queue is applied after the
// scan, in order. It reports whether any position overflowed.
func (w *World) ApplyVelocity() bool {
	w.queue.reset()
	overflowed := false
	for i := range w.cells {
		t := &w.cells[i]
		if t.IsEmpty() || t.Paused || w.catalog.Has(t.Element(), Fixed) {
			continue
		}
		nx, ox := overflowingAdd(t.Position.X, t.Velocity.X)
		ny, oy := overflowingAdd(t.Position.Y, t.Velocity.Y)
		t.Position = Vector{X: nx, Y: ny}
		if !ox && !oy {
			continue
		}
		overflowed = true

		dx, dy := 0, 0
		if ox {
			dx = sign8(t.Velocity.X)
		}
		if oy {
			dy = sign8(t.Velocity.Y)
		}
		x, y := w.grid.Coords(i)
		if !w.grid.InBounds(x+dx, y+dy) {
			continue
		}
		w.queue.push(move{source: i, destination: w.grid.Point(x+dx, y+dy)}, dx, dy)
	}

	w.queue.each(func(m move) {
		w.MoveParticle(m.source, m.destination)
	})
	return overflowed
}
