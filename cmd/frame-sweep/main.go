// Command frame-sweep renders the molten scene across a grid of entity
// counts and reports which combinations fit a per-frame time budget.
package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"molten-core/internal/render"
	"molten-core/internal/sims/molten"
)

type countSet struct {
	blobs     int
	flowNodes int
	cracks    int
	embers    int
	octaves   int
}

func (c countSet) String() string {
	return fmt.Sprintf("blobs=%d flow_nodes=%d cracks=%d embers=%d octaves=%d",
		c.blobs, c.flowNodes, c.cracks, c.embers, c.octaves)
}

func (c countSet) entities() int {
	return c.blobs + c.flowNodes + c.cracks + c.embers
}

type sweepResult struct {
	counts    countSet
	step      time.Duration
	draw      time.Duration
	luminance float64
	err       error
}

func (r sweepResult) frame() time.Duration { return r.step + r.draw }

func main() {
	frames := pflag.Int("frames", 60, "frames to render per combination")
	width := pflag.Int("width", 800, "viewport width")
	height := pflag.Int("height", 600, "viewport height")
	seed := pflag.Int64("seed", 1337, "scene seed")
	budget := pflag.Duration("budget", 16*time.Millisecond, "per-frame time budget")
	workers := pflag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	verbose := pflag.BoolP("verbose", "v", false, "log every combination")
	pflag.Parse()

	level := log.InfoLevel
	if *verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, TimeFormat: "15:04:05.00", Level: level})

	base := molten.DefaultConfig()
	base.Width = *width
	base.Height = *height
	base.Seed = *seed

	var sets []countSet
	for _, blobs := range []int{3, 6, 9} {
		for _, flow := range []int{12, 24} {
			for _, cracks := range []int{6, 12} {
				for _, embers := range []int{40, 80, 160} {
					for _, octaves := range []int{3, 5} {
						sets = append(sets, countSet{blobs, flow, cracks, embers, octaves})
					}
				}
			}
		}
	}

	logger.Info("sweeping", "combinations", len(sets), "workers", *workers, "frames", *frames)

	jobs := make(chan countSet)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < max(*workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for counts := range jobs {
				results <- runScenario(base, counts, *frames)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, counts := range sets {
			jobs <- counts
		}
		close(jobs)
	}()

	start := time.Now()
	var fits []sweepResult
	for res := range results {
		if res.err != nil {
			logger.Error("scenario failed", "counts", res.counts, "err", res.err)
			continue
		}
		logger.Debug("scenario", "counts", res.counts, "step", res.step, "draw", res.draw, "luminance", fmt.Sprintf("%.3f", res.luminance))
		if res.frame() <= *budget {
			fits = append(fits, res)
		}
	}

	sort.Slice(fits, func(i, j int) bool {
		if fits[i].counts.entities() != fits[j].counts.entities() {
			return fits[i].counts.entities() > fits[j].counts.entities()
		}
		return fits[i].frame() < fits[j].frame()
	})

	fmt.Printf("\n%d of %d combinations fit %s per frame (elapsed %s)\n",
		len(fits), len(sets), *budget, time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(fits) && i < 5; i++ {
		res := fits[i]
		fmt.Printf("%2d) frame=%s step=%s draw=%s luminance=%.3f %s\n",
			i+1, res.frame().Round(time.Microsecond), res.step.Round(time.Microsecond),
			res.draw.Round(time.Microsecond), res.luminance, res.counts)
	}
}

// runScenario renders frames of a fresh scene and averages the cost of
// stepping and compositing.
func runScenario(base molten.Config, counts countSet, frames int) sweepResult {
	cfg := base
	cfg.Params.Blobs = counts.blobs
	cfg.Params.FlowNodes = counts.flowNodes
	cfg.Params.Cracks = counts.cracks
	cfg.Params.Embers = counts.embers
	cfg.Params.Octaves = counts.octaves

	res := sweepResult{counts: counts}
	scene := molten.NewWithConfig(cfg)
	raster, err := render.NewRaster(cfg.Width, cfg.Height)
	if err != nil {
		res.err = err
		return res
	}
	frames = max(frames, 1)
	for i := 0; i < frames; i++ {
		t0 := time.Now()
		scene.Step()
		t1 := time.Now()
		scene.Draw(raster)
		res.step += t1.Sub(t0)
		res.draw += time.Since(t1)
	}
	res.step /= time.Duration(frames)
	res.draw /= time.Duration(frames)
	res.luminance = meanLuminance(raster)
	return res
}

func meanLuminance(r *render.Raster) float64 {
	img := r.Image()
	var sum float64
	n := 0
	for i := 0; i+3 < len(img.Pix); i += 4 {
		sum += 0.2126*float64(img.Pix[i]) + 0.7152*float64(img.Pix[i+1]) + 0.0722*float64(img.Pix[i+2])
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n) / 255
}
