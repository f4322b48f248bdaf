package render

import (
	"image/color"
	"testing"
)

func TestFillRGBAUsesBackgroundForRejectedCells(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	bg := color.RGBA{B: 9, A: 255}
	buf := make([]byte, 12)
	FillRGBA(buf, 3, func(i int) (color.RGBA, bool) {
		return red, i == 1
	}, bg)

	want := []byte{0, 0, 9, 255, 255, 0, 0, 255, 0, 0, 9, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d (buf %v)", i, buf[i], want[i], buf)
		}
	}
}

func TestFillPaletteRGBAClampsToLastEntry(t *testing.T) {
	palette := []color.RGBA{{A: 255}, {R: 10, A: 255}}
	buf := make([]byte, 8)
	FillPaletteRGBA(buf, []uint8{0, 7}, palette)
	if buf[0] != 0 || buf[4] != 10 {
		t.Fatalf("unexpected pixels %v", buf)
	}

	FillPaletteRGBA(buf, []uint8{0, 1}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d after empty palette", i, b)
		}
	}
}
