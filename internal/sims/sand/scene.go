package sand

import (
	"fmt"
	"slices"

	"github.com/rdavidson1994/sand/internal/core"
	"github.com/rdavidson1994/sand/internal/elements"
	"github.com/rdavidson1994/sand/internal/engine"
)

// Stock scene names.
const (
	SceneEmpty   = "empty"
	SceneDemo    = "demo"
	SceneWire    = "wire"
	SceneVolcano = "volcano"
)

// Scenes lists the scene names PaintScene accepts.
func Scenes() []string {
	return []string{SceneEmpty, SceneDemo, SceneWire, SceneVolcano}
}

// PaintScene fills the empty cells of w with the named layout.
func PaintScene(name string, w *engine.World, rng *core.RNG) error {
	if !slices.Contains(Scenes(), name) {
		return fmt.Errorf("unknown scene %q", name)
	}
	g := w.Grid()
	// Scenes are laid out in fractions of the interior.
	fx := func(f float64) int { return 1 + int(f*float64(g.W-2)) }
	fy := func(f float64) int { return 1 + int(f*float64(g.H-2)) }
	switch name {
	case SceneDemo:
		fill(w, fx(0.1), fy(0.05), fx(0.35), fy(0.3), elements.Sand)
		fill(w, fx(0.6), fy(0.05), fx(0.9), fy(0.25), elements.Water)
		fill(w, fx(0.05), fy(0.55), fx(0.45), fy(0.58), elements.Rock)
		fill(w, fx(0.55), fy(0.7), fx(0.95), fy(0.72), elements.Metal)
		fill(w, fx(0.4), fy(0.85), fx(0.6), fy(0.99), elements.Oil)
		fill(w, fx(0.05), fy(0.9), fx(0.3), fy(0.99), elements.Dirt)
		scatter(w, rng, fx(0.35), fy(0.3), fx(0.65), fy(0.5), elements.Gas, 8)
	case SceneWire:
		y := fy(0.5)
		fill(w, fx(0.1), y, fx(0.9), y, elements.Metal)
		head := w.At(g.Point(fx(0.1), y))
		head.SetInfo(elements.ChargedHead)
		head.Commit()
		w.Set(g.Point(fx(0.1), y), head)
		fill(w, fx(0.3), fy(0.1), fx(0.7), fy(0.2), elements.Glass)
		scatter(w, rng, fx(0.1), fy(0.6), fx(0.9), fy(0.9), elements.Electron, 20)
	case SceneVolcano:
		fill(w, fx(0), fy(0.8), fx(1), fy(1), elements.Rock)
		fill(w, fx(0.4), fy(0.7), fx(0.6), fy(0.85), elements.Lava)
		fill(w, fx(0.1), fy(0.05), fx(0.9), fy(0.15), elements.Snow)
		fill(w, fx(0.75), fy(0.6), fx(0.85), fy(0.7), elements.Metal)
	}
	return nil
}

// fill paints every empty cell of the inclusive rectangle with a resting id.
func fill(w *engine.World, x0, y0, x1, y1 int, id engine.ElementID) {
	g := w.Grid()
	t := w.Spawn(id)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !g.InBounds(x, y) {
				continue
			}
			i := g.Point(x, y)
			if w.At(i).IsEmpty() {
				w.Set(i, t)
			}
		}
	}
}

// scatter drops roughly one id tile per oneIn empty cells of the rectangle.
func scatter(w *engine.World, rng *core.RNG, x0, y0, x1, y1 int, id engine.ElementID, oneIn int) {
	g := w.Grid()
	t := w.Spawn(id)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !g.InBounds(x, y) || !rng.OneIn(oneIn) {
				continue
			}
			i := g.Point(x, y)
			if w.At(i).IsEmpty() {
				w.Set(i, t)
			}
		}
	}
}
