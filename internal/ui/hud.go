//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/rdavidson1994/sand/internal/elements"
	"github.com/rdavidson1994/sand/internal/engine"
	"github.com/rdavidson1994/sand/internal/sims/sand"
)

const (
	panelPadding   = 8
	headerBaseline = 12
	lineHeight     = 16
	swatchSize     = 10
	buttonSize     = 14
	buttonGap      = 4
	labelBaseline  = 12
)

var (
	panelBg    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	selectBg   = color.RGBA{R: 54, G: 56, B: 64, A: 255}
)

// scheduleKeys are the parameters the panel can step up and down.
var scheduleKeys = []struct{ key, label string }{
	{"gravity_period", "Gravity period"},
	{"reaction_period", "Reaction period"},
	{"updates_per_step", "Updates/frame"},
}

type paletteEntry struct {
	id    engine.ElementID // Empty marks the eraser
	label string
	color color.RGBA
	rect  image.Rectangle
}

type scheduleControl struct {
	key, label string
	value      int
	top        int
	minusRect  image.Rectangle
	plusRect   image.Rectangle
}

// HUD renders the element palette and schedule controls to the right of the
// simulation view.
type HUD struct {
	sim        *sand.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	pixel      *ebiten.Image

	entries  []paletteEntry
	selected int
	controls []scheduleControl
	status   string

	panelOffsetX int
	onSelect     func(sand.Pen)
	radius       int
}

// NewHUD constructs a HUD for the provided simulation and panel width.
// onSelect receives a new pen whenever the user picks a palette entry.
func NewHUD(sim *sand.Sim, width int, onSelect func(sand.Pen)) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), onSelect: onSelect}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)

	catalog := sim.World().Catalog()
	colors := sim.Palette()
	for _, id := range elements.Palette() {
		h.entries = append(h.entries, paletteEntry{id: id, label: catalog.Name(id), color: colors[id]})
	}
	h.entries = append(h.entries, paletteEntry{id: engine.Empty, label: "delete", color: sand.Background})
	for _, k := range scheduleKeys {
		h.controls = append(h.controls, scheduleControl{key: k.key, label: k.label})
	}
	h.layout()
	return h
}

// Select highlights the entry painting id and emits a matching pen.
func (h *HUD) Select(id engine.ElementID) {
	for i, e := range h.entries {
		if e.id == id {
			h.selected = i
			h.emit()
			return
		}
	}
}

// SetRadius changes the radius of pens created from now on and re-emits the
// current selection.
func (h *HUD) SetRadius(r int) {
	h.radius = min(max(r, 0), sand.MaxPenRadius)
	h.emit()
}

// Radius reports the pen radius.
func (h *HUD) Radius() int { return h.radius }

func (h *HUD) emit() {
	if h.onSelect == nil || len(h.entries) == 0 {
		return
	}
	e := h.entries[h.selected]
	if e.id == engine.Empty {
		h.onSelect(sand.NewDeletePen(h.radius))
		return
	}
	h.onSelect(sand.NewElementPen(h.sim.World().Catalog(), e.id, h.radius))
}

// Update refreshes the displayed values and handles clicks inside the panel.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	snapshot := h.sim.Parameters()
	for i := range h.controls {
		c := &h.controls[i]
		if p, ok := snapshot.Lookup(c.key); ok {
			if v, err := strconv.Atoi(p.Value); err == nil {
				c.value = v
			}
		}
	}
	occupied, paused := h.sim.World().Counts()
	h.status = fmt.Sprintf("tick %d  cells %d  asleep %d", h.sim.Turn(), occupied, paused)
	h.handleInput()
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i, e := range h.entries {
		if pointInRect(px, my, h.rowRect(e)) {
			h.selected = i
			h.emit()
			return
		}
	}
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case pointInRect(px, my, c.minusRect):
			h.adjust(c, -1)
			return
		case pointInRect(px, my, c.plusRect):
			h.adjust(c, 1)
			return
		}
	}
}

func (h *HUD) adjust(c *scheduleControl, direction int) {
	target := c.value + direction
	if target < 1 {
		return
	}
	if h.sim.SetIntParameter(c.key, target) {
		c.value = target
	}
}

// Draw paints the HUD panel at offsetX, matching the scaled grid height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBg)
	h.drawPanel()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawPanel() {
	face := basicfont.Face7x13
	text.Draw(h.panel, "Elements", face, panelPadding, panelPadding+headerBaseline, titleColor)
	for i, e := range h.entries {
		if i == h.selected {
			h.fillRect(h.rowRect(e), selectBg)
		}
		h.fillRect(e.rect, e.color)
		text.Draw(h.panel, e.label, face, e.rect.Max.X+buttonGap*2, e.rect.Min.Y+swatchSize, textColor)
	}
	radiusY := h.scheduleTop() - lineHeight/2
	text.Draw(h.panel, fmt.Sprintf("Pen radius %d  [ ]", h.radius), face, panelPadding, radiusY, dimColor)
	for _, c := range h.controls {
		y := c.top + labelBaseline
		text.Draw(h.panel, c.label, face, panelPadding, y, textColor)
		value := strconv.Itoa(c.value)
		w := text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, c.minusRect.Min.X-buttonGap-w, y, textColor)
		h.drawButton(c.minusRect, "-", c.value > 1)
		h.drawButton(c.plusRect, "+", true)
	}
	if len(h.controls) > 0 {
		last := h.controls[len(h.controls)-1]
		text.Draw(h.panel, h.status, face, panelPadding, last.top+lineHeight+labelBaseline+panelPadding, dimColor)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := selectBg, color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)
	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) fillRect(rect image.Rectangle, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) rowRect(e paletteEntry) image.Rectangle {
	return image.Rect(0, e.rect.Min.Y-2, h.width, e.rect.Max.Y+2)
}

func (h *HUD) scheduleTop() int {
	return panelPadding + headerBaseline + (len(h.entries)+2)*lineHeight
}

func (h *HUD) layout() {
	top := panelPadding + headerBaseline + panelPadding
	for i := range h.entries {
		y := top + i*lineHeight
		h.entries[i].rect = image.Rect(panelPadding, y, panelPadding+swatchSize, y+swatchSize)
	}
	for i := range h.controls {
		t := h.scheduleTop() + i*lineHeight
		buttonY := t + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = t
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
