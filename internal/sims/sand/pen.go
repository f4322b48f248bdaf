package sand

import (
	"github.com/rdavidson1994/sand/internal/core"
	"github.com/rdavidson1994/sand/internal/elements"
	"github.com/rdavidson1994/sand/internal/engine"
)

// MaxPenRadius bounds the brush size.
const MaxPenRadius = 12

// penSpeed bounds the random launch speed of freshly painted tiles.
const penSpeed = 20

// Pen edits the square of cells within Radius of a grid coordinate.
type Pen interface {
	Draw(w *engine.World, rng *core.RNG, x, y int)
	Radius() int
	SetRadius(r int)
	Label() string
}

type brush struct{ radius int }

func (b *brush) Radius() int { return b.radius }

func (b *brush) SetRadius(r int) { b.radius = min(max(r, 0), MaxPenRadius) }

func (b *brush) each(g core.Grid, x, y int, fn func(i int)) {
	for py := y - b.radius; py <= y+b.radius; py++ {
		for px := x - b.radius; px <= x+b.radius; px++ {
			if g.InBounds(px, py) {
				fn(g.Point(px, py))
			}
		}
	}
}

// ElementPen fills empty cells with one element. Non-fixed tiles start with
// a random velocity.
type ElementPen struct {
	brush
	Element engine.ElementID
	name    string
}

// NewElementPen returns a pen painting element id of catalog c.
func NewElementPen(c *engine.Catalog, id engine.ElementID, radius int) *ElementPen {
	p := &ElementPen{Element: id, name: c.Name(id)}
	p.SetRadius(radius)
	return p
}

// Label names the painted element.
func (p *ElementPen) Label() string { return p.name }

// Draw paints around (x, y), leaving occupied cells alone.
func (p *ElementPen) Draw(w *engine.World, rng *core.RNG, x, y int) {
	catalog := w.Catalog()
	fixed := catalog.Has(p.Element, engine.Fixed)
	temperature := catalog.Get(p.Element).DefaultTemperature
	p.each(w.Grid(), x, y, func(i int) {
		if !w.At(i).IsEmpty() {
			return
		}
		var velocity engine.Vector
		if !fixed {
			velocity.X = int8(rng.Range(-penSpeed, penSpeed+1))
			velocity.Y = int8(rng.Range(-penSpeed, penSpeed+1))
		}
		w.Set(i, engine.NewTile(engine.StateOf(p.Element), engine.Vector{}, velocity, temperature))
	})
}

// DeletePen empties cells. Boundary walls survive it.
type DeletePen struct {
	brush
}

// NewDeletePen returns an eraser.
func NewDeletePen(radius int) *DeletePen {
	p := &DeletePen{}
	p.SetRadius(radius)
	return p
}

// Label names the pen.
func (p *DeletePen) Label() string { return "delete" }

// Draw erases around (x, y).
func (p *DeletePen) Draw(w *engine.World, _ *core.RNG, x, y int) {
	p.each(w.Grid(), x, y, func(i int) {
		t := w.At(i)
		if t.IsEmpty() || t.Is(elements.Wall) {
			return
		}
		w.Set(i, engine.Tile{})
	})
}

// Paint applies pen at grid coordinate (x, y) and refreshes Cells.
func (s *Sim) Paint(pen Pen, x, y int) {
	if pen == nil {
		return
	}
	pen.Draw(s.world, s.rng, x, y)
	s.refreshDisplay()
}
