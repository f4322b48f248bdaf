package sand

import "github.com/rdavidson1994/sand/internal/engine"

// SettleResult captures telemetry from a deterministic run used for tuning.
type SettleResult struct {
	// TicksSimulated reports how many ticks the run executed.
	TicksSimulated int
	// SettledTick is the first tick at which the sleeping share of mobile
	// tiles reached the threshold, or -1 when it never did.
	SettledTick int
	// PeakAwake tracks the largest number of awake mobile tiles seen.
	PeakAwake int
	// Mobile and Sleeping count tiles that can sleep, and those asleep, at
	// the end of the run.
	Mobile   int
	Sleeping int
	// Stats accumulates engine events over the whole run.
	Stats engine.Stats
}

// SettleRun builds a world from cfg, runs it for up to ticks ticks and
// reports how quickly it came to rest. A tile is mobile when it is neither
// fixed nor exempt from sleeping.
func SettleRun(cfg Config, ticks int, threshold float64) SettleResult {
	res := SettleResult{SettledTick: -1}
	if ticks <= 0 {
		return res
	}
	s := NewWithConfig(cfg)
	for tick := 1; tick <= ticks; tick++ {
		s.Tick()
		res.TicksSimulated = tick
		mobile, sleeping := s.restCounts()
		res.Mobile, res.Sleeping = mobile, sleeping
		res.PeakAwake = max(res.PeakAwake, mobile-sleeping)
		if res.SettledTick < 0 && mobile > 0 && float64(sleeping) >= threshold*float64(mobile) {
			res.SettledTick = tick
		}
	}
	res.Stats = s.world.Stats()
	return res
}

func (s *Sim) restCounts() (mobile, sleeping int) {
	catalog := s.world.Catalog()
	for _, t := range s.world.Cells() {
		if t.IsEmpty() {
			continue
		}
		e := catalog.Get(t.Element())
		if e.Has(engine.Fixed) || e.Has(engine.PauseExempt) {
			continue
		}
		mobile++
		if t.Paused {
			sleeping++
		}
	}
	return mobile, sleeping
}
