package sand

import (
	"image/color"

	"github.com/rdavidson1994/sand/internal/engine"
	"github.com/rdavidson1994/sand/internal/render"
)

// Background is the colour of empty cells.
var Background = color.RGBA{A: 255}

// heatLevels is the number of buckets HeatField quantises temperatures into.
const heatLevels = 64

// Heat range mapped onto the buckets, in engine temperature units.
const (
	heatMin = -40
	heatMax = 1200
)

// PaintRGBA colours every cell by element and special info.
func (s *Sim) PaintRGBA(buf []byte) {
	catalog := s.world.Catalog()
	cells := s.world.Cells()
	render.FillRGBA(buf, len(cells), func(i int) (color.RGBA, bool) {
		return catalog.ColorOf(cells[i])
	}, Background)
}

// Palette returns the base colour of every element indexed by id, with the
// background at index zero.
func (s *Sim) Palette() []color.RGBA {
	elems := s.world.Catalog().Elements()
	palette := make([]color.RGBA, len(elems)+1)
	palette[0] = Background
	for _, e := range elems {
		palette[e.ID] = e.Color
	}
	return palette
}

// HeatField quantises the temperature of every occupied cell into
// [1, heatLevels]. Empty cells report zero.
func (s *Sim) HeatField(dst []uint8) []uint8 {
	cells := s.world.Cells()
	if cap(dst) < len(cells) {
		dst = make([]uint8, len(cells))
	}
	dst = dst[:len(cells)]
	for i := range cells {
		dst[i] = heatLevel(cells[i])
	}
	return dst
}

func heatLevel(t engine.Tile) uint8 {
	if t.IsEmpty() {
		return 0
	}
	v := min(max(int(t.Temperature), heatMin), heatMax)
	return uint8(1 + (v-heatMin)*(heatLevels-1)/(heatMax-heatMin))
}

// HeatPalette maps HeatField values to colours running from blue through red
// to white. Index zero is transparent.
func HeatPalette() []color.RGBA {
	palette := make([]color.RGBA, heatLevels+1)
	for i := 1; i <= heatLevels; i++ {
		f := float64(i-1) / float64(heatLevels-1)
		switch {
		case f < 0.5:
			g := f * 2
			palette[i] = color.RGBA{R: uint8(255 * g), B: uint8(255 * (1 - g)), A: 160}
		default:
			g := (f - 0.5) * 2
			palette[i] = color.RGBA{R: 255, G: uint8(255 * g), B: uint8(255 * g), A: 160}
		}
	}
	return palette
}

// PausedMask reports 1 for every sleeping cell and 0 otherwise.
func (s *Sim) PausedMask(dst []uint8) []uint8 {
	cells := s.world.Cells()
	if cap(dst) < len(cells) {
		dst = make([]uint8, len(cells))
	}
	dst = dst[:len(cells)]
	for i := range cells {
		dst[i] = 0
		if !cells[i].IsEmpty() && cells[i].Paused {
			dst[i] = 1
		}
	}
	return dst
}
