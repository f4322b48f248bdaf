package sand

import (
	"testing"

	"github.com/rdavidson1994/sand/internal/core"
	"github.com/rdavidson1994/sand/internal/elements"
)

func TestEveryScenePaints(t *testing.T) {
	for _, name := range Scenes() {
		cfg := testConfig(40, 40)
		cfg.Scene = name
		s := NewWithConfig(cfg)
		hist := s.World().Histogram()
		occupied := len(s.Cells()) - hist[0]
		walls := hist[elements.Wall]
		if name == SceneEmpty && occupied != walls {
			t.Fatalf("empty scene holds %d non-wall tiles", occupied-walls)
		}
		if name != SceneEmpty && occupied == walls {
			t.Fatalf("scene %q painted nothing", name)
		}
	}
}

func TestWireSceneStartsWithOneSignal(t *testing.T) {
	cfg := testConfig(40, 40)
	cfg.Scene = SceneWire
	s := NewWithConfig(cfg)
	heads := 0
	for _, tile := range s.World().Cells() {
		if tile.HasState(elements.Metal, elements.ChargedHead) {
			heads++
		}
	}
	if heads != 1 {
		t.Fatalf("wire scene has %d charged heads, want 1", heads)
	}
}

func TestUnknownSceneIsRejected(t *testing.T) {
	s := NewWithConfig(testConfig(8, 8))
	if err := PaintScene("hourglass", s.World(), core.NewRNG(1)); err == nil {
		t.Fatal("unknown scene accepted")
	}
}

func TestSettleRunIsDeterministic(t *testing.T) {
	cfg := testConfig(32, 32)
	cfg.Scene = SceneDemo
	a := SettleRun(cfg, 200, 0.9)
	b := SettleRun(cfg, 200, 0.9)
	if a != b {
		t.Fatalf("runs differ:\n%+v\n%+v", a, b)
	}
	if a.TicksSimulated != 200 || a.Mobile == 0 || a.PeakAwake == 0 {
		t.Fatalf("unexpected telemetry %+v", a)
	}
	if a.SettledTick > a.TicksSimulated {
		t.Fatalf("settled at %d after %d ticks", a.SettledTick, a.TicksSimulated)
	}
	if none := SettleRun(cfg, 0, 0.9); none.SettledTick != -1 || none.TicksSimulated != 0 {
		t.Fatalf("zero-tick run = %+v", none)
	}
}
