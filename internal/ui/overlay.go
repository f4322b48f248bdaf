//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rdavidson1994/sand/internal/render"
	"github.com/rdavidson1994/sand/internal/sims/sand"
)

var sleepPalette = []color.RGBA{{}, {R: 64, G: 164, B: 223, A: 140}}

// Overlay draws optional debugging visuals on top of the base simulation.
// Key 1 toggles the temperature field, key 2 the sleeping tiles.
type Overlay struct {
	sim       *sand.Sim
	scale     int
	showHeat  bool
	showSleep bool

	heat    *render.GridPainter
	sleep   *render.GridPainter
	field   []uint8
	palette []color.RGBA
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim *sand.Sim, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{
		sim:     sim,
		scale:   max(scale, 1),
		heat:    render.NewGridPainter(size.W, size.H),
		sleep:   render.NewGridPainter(size.W, size.H),
		palette: sand.HeatPalette(),
	}
}

// Update allows the overlay to update internal state.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showSleep = !o.showSleep
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showHeat {
		o.field = o.sim.HeatField(o.field)
		o.heat.Blit(screen, func(buf []byte) {
			render.FillPaletteRGBA(buf, o.field, o.palette)
		}, o.scale)
	}
	if o.showSleep {
		o.field = o.sim.PausedMask(o.field)
		o.sleep.Blit(screen, func(buf []byte) {
			render.FillPaletteRGBA(buf, o.field, sleepPalette)
		}, o.scale)
	}
}
