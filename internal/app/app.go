//go:build ebiten

package app

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rdavidson1994/sand/internal/elements"
	"github.com/rdavidson1994/sand/internal/render"
	"github.com/rdavidson1994/sand/internal/sims/sand"
	"github.com/rdavidson1994/sand/internal/ui"
)

// PanelWidth is the width of the HUD to the right of the grid.
const PanelWidth = 200

// Game adapts the sand simulation to the ebiten.Game interface.
type Game struct {
	sim     *sand.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	pen     sand.Pen

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim *sand.Sim, scale int, seed int64) *Game {
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, scale),
		scale:   max(scale, 1),
		seed:    seed,
	}
	g.hud = ui.NewHUD(sim, PanelWidth, func(p sand.Pen) { g.pen = p })
	g.hud.Select(elements.Sand)
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.hud.SetRadius(g.hud.Radius() - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.hud.SetRadius(g.hud.Radius() + 1)
	}

	g.overlay.Update()
	size := g.sim.Size()
	g.hud.Update(size.W * g.scale)
	g.paint()

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// paint applies the selected pen while the left button is held over the grid.
func (g *Game) paint() {
	if g.pen == nil || !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	size := g.sim.Size()
	if mx < 0 || my < 0 || x >= size.W || y >= size.H {
		return
	}
	g.sim.Paint(g.pen, x, y)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.PaintRGBA, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + PanelWidth, s.H * g.scale
}
