package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rdavidson1994/sand/internal/core"
	"github.com/rdavidson1994/sand/internal/engine"
	"github.com/rdavidson1994/sand/internal/metrics"
	"github.com/rdavidson1994/sand/internal/sims/sand"
	"github.com/rdavidson1994/sand/pkg/logger"
)

func main() {
	steps := flag.Int("steps", 100, "frames to simulate")
	width := flag.Int("w", 200, "grid width in cells")
	height := flag.Int("h", 200, "grid height in cells")
	seed := flag.Int64("seed", 1, "world seed")
	workers := flag.Int("workers", 0, "band workers (0 = GOMAXPROCS)")
	scene := flag.String("scene", sand.SceneDemo, "initial scene")
	tuning := flag.String("tuning", "", "YAML tuning file")
	tps := flag.Int("tps", 0, "frames per second (0 = unpaced)")
	compare := flag.Bool("compare", false, "also run single-threaded and check the results match")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address while running")
	showParams := flag.Bool("params", false, "print the active parameters")
	flag.Parse()

	logger.Init()
	log := logger.For("bench")

	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Seed, cfg.Scene = *width, *height, *seed, *scene
	if *tuning != "" {
		p, err := sand.LoadTuning(*tuning, cfg.Params)
		if err != nil {
			log.WithError(err).Fatal("tuning")
		}
		cfg.Params = p
	}
	if *workers > 0 {
		cfg.Params.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sim := sand.NewWithConfig(cfg)
	if *showParams {
		fmt.Print(sim.Parameters())
	}

	var recorder *metrics.Recorder
	g, gctx := errgroup.WithContext(ctx)
	runCtx, finish := context.WithCancel(gctx)
	if *metricsAddr != "" {
		recorder = metrics.NewRecorder()
		sim.Observe(recorder.ObserveStep)
		g.Go(func() error { return recorder.Serve(runCtx, *metricsAddr) })
	}

	var reference *sand.Sim
	if *compare {
		single := cfg
		single.Params.Workers = 1
		reference = sand.NewWithConfig(single)
	}

	g.Go(func() error {
		defer finish()
		pace := core.NewFixedStep(*tps)
		start := time.Now()
		done := 0
		for ; done < *steps; done++ {
			if runCtx.Err() != nil {
				break
			}
			if !pace.Unpaced() {
				pace.Wait()
			}
			sim.Step()
		}
		elapsed := time.Since(start)
		log.WithField("steps", done).WithField("elapsed", elapsed.Round(time.Millisecond)).Info("run finished")
		fmt.Printf("%d frames (%d ticks) in %s, %.2f ms/frame\n",
			done, sim.Turn(), elapsed.Round(time.Millisecond), float64(elapsed.Microseconds())/1000/float64(max(done, 1)))
		return nil
	})
	if reference != nil {
		g.Go(func() error {
			for step := 0; step < *steps; step++ {
				if gctx.Err() != nil {
					return nil
				}
				reference.Step()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("bench failed")
	}

	printHistogram(sim)
	if reference != nil {
		match, ok := compareRuns(ctx, sim, reference)
		switch {
		case !ok:
			log.Warn("run interrupted, skipping comparison")
		case !match:
			log.Fatal("parallel run diverged from the single-threaded run")
		default:
			fmt.Println("parallel and single-threaded runs match")
		}
	}
}

// compareRuns reports whether both worlds hold the same cells. ok is false
// when the run was interrupted or the two sims stopped on different turns.
func compareRuns(ctx context.Context, sim, reference *sand.Sim) (match, ok bool) {
	if ctx.Err() != nil || sim.Turn() != reference.Turn() {
		return false, false
	}
	return slices.Equal(sim.World().Cells(), reference.World().Cells()), true
}

func printHistogram(sim *sand.Sim) {
	w := sim.World()
	hist := w.Histogram()
	occupied, paused := w.Counts()
	stats := w.Stats()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "element\tcells\t")
	for id := 1; id < len(hist); id++ {
		if hist[id] == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t\n", w.Catalog().Name(engine.ElementID(id)), hist[id])
	}
	fmt.Fprintf(tw, "empty\t%d\t\n", hist[0])
	tw.Flush()
	fmt.Printf("occupied %d, asleep %d\n", occupied, paused)
	fmt.Printf("last frame: moves %d, collisions %d, bounces %d, push-throughs %d, reactions %d\n",
		stats.Moves, stats.Collisions, stats.Bounces, stats.PushThroughs, stats.Reactions)
}
