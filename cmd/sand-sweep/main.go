package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rdavidson1994/sand/internal/sims/sand"
	"github.com/rdavidson1994/sand/pkg/logger"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type paramSet struct {
	restitution   float64
	collide       float64
	fluidPush     float64
	pauseVelocity int
}

func (p paramSet) String() string {
	return fmt.Sprintf("restitution=%.2f collide=%.2f push=%.2f pause=%d",
		p.restitution, p.collide, p.fluidPush, p.pauseVelocity)
}

type scenarioResult struct {
	params paramSet
	sand.SettleResult
}

// settledBefore orders runs that settled by settle tick, ahead of runs that
// never did.
func settledBefore(a, b scenarioResult) bool {
	switch {
	case a.SettledTick < 0:
		return false
	case b.SettledTick < 0:
		return true
	}
	return a.SettledTick < b.SettledTick
}

func main() {
	ticks := flag.Int("ticks", 2000, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	threshold := flag.Float64("threshold", 0.95, "sleeping share of mobile tiles that counts as settled")
	var overrides kvList
	flag.Var(&overrides, "set", "base parameter override in key=value form (repeatable)")
	flag.Parse()

	logger.Init()
	log := logger.For("sweep")

	opts := map[string]string{"w": "96", "h": "96", "scene": sand.SceneDemo}
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			log.WithField("override", kv).Warn("ignoring malformed override")
			continue
		}
		opts[parts[0]] = parts[1]
	}
	baseCfg := sand.FromMap(opts)
	// Each scenario already runs on its own goroutine.
	baseCfg.Params.Workers = 1

	var sets []paramSet
	for _, restitution := range []float64{0.3, 0.5, 0.7} {
		for _, collide := range []float64{0.6, 0.8, 0.95} {
			for _, push := range []float64{0.25, 0.5, 0.75} {
				for _, pause := range []int{2, 3, 4} {
					sets = append(sets, paramSet{restitution: restitution, collide: collide, fluidPush: push, pauseVelocity: pause})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d ticks)\n", len(sets), *workers, *ticks)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(baseCfg, params, *ticks, *threshold)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return settledBefore(all[i], all[j]) })
	elapsed := time.Since(start)

	fmt.Printf("\nTop 5 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) settled=%d peakAwake=%d asleep=%d/%d moves=%d collisions=%d params=%s\n",
			i+1, res.SettledTick, res.PeakAwake, res.Sleeping, res.Mobile, res.Stats.Moves, res.Stats.Collisions, res.params)
	}
	unsettled := 0
	for _, res := range all {
		if res.SettledTick < 0 {
			unsettled++
		}
	}
	fmt.Printf("\n%d of %d scenarios never settled\n", unsettled, len(all))
}

func runScenario(base sand.Config, params paramSet, ticks int, threshold float64) scenarioResult {
	cfg := base
	cfg.Params.Restitution = params.restitution
	cfg.Params.CollideRestitution = params.collide
	cfg.Params.FluidPushChance = params.fluidPush
	cfg.Params.PauseVelocity = params.pauseVelocity
	return scenarioResult{params: params, SettleResult: sand.SettleRun(cfg, ticks, threshold)}
}
