package render

import "image/color"

// FillRGBA writes one pixel per cell into buf, which holds at least 4*n
// bytes. colorAt reports the colour of cell i; cells it rejects get bg.
func FillRGBA(buf []byte, n int, colorAt func(i int) (color.RGBA, bool), bg color.RGBA) {
	for i := 0; i < n; i++ {
		col, ok := colorAt(i)
		if !ok {
			col = bg
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// FillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette use its last entry. When the palette is
// empty the buffer is cleared to transparent black.
func FillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	last := len(palette) - 1
	FillRGBA(buf, len(cells), func(i int) (color.RGBA, bool) {
		return palette[min(int(cells[i]), last)], true
	}, color.RGBA{})
}
