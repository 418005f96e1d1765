// Package engine runs scenario files through the animation engine and
// writes their traces.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/tweek/internal/clock"
	"github.com/ivlev/tweek/internal/config"
	"github.com/ivlev/tweek/internal/director"
	"github.com/ivlev/tweek/internal/logging"
	"github.com/ivlev/tweek/internal/system"
	"github.com/ivlev/tweek/internal/trace"
)

// epoch anchors every sampled run so traces are reproducible.
var epoch = time.Unix(0, 0)

// Result describes one sampled scenario.
type Result struct {
	Path     string
	Output   string
	Frames   int
	Sprites  int
	Duration time.Duration // sampled animation time
	Elapsed  time.Duration // wall time spent
	Trace    *trace.Trace
}

// Project runs the scenarios named by its Config.
type Project struct {
	Config *config.Config
}

func NewProject(cfg *config.Config) *Project {
	return &Project{Config: cfg}
}

// Run samples every scenario concurrently, at most Config.Workers at a
// time, and writes one trace per scenario. Results are in scenario order.
// The first failure cancels the remaining runs.
func (p *Project) Run(ctx context.Context) ([]Result, error) {
	startTime := time.Now()

	paths, err := system.FindScenarios(p.Config.ScenarioPaths...)
	if err != nil {
		return nil, err
	}

	fmt.Println("--- [PROJECT: TWEEK RUNNER] ---")
	fmt.Printf("[*] Scenarios: %d | %d FPS | Workers: %d | Format: %s\n", len(paths), p.Config.FPS, p.Config.Workers, p.Config.Format)
	fmt.Println("-------------------------------")

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.Config.Workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			res, err := p.RunScenario(gctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			fmt.Printf("[>] Ready: %s -> %s (%d frames)\n", filepath.Base(path), res.Output, res.Frames)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if p.Config.ShowStats {
		p.report(results, time.Since(startTime))
	}
	return results, nil
}

// RunScenario reads, builds, samples and writes a single scenario.
func (p *Project) RunScenario(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	scenario, err := director.ReadScenario(path)
	if err != nil {
		return Result{}, fmt.Errorf("read scenario %s: %w", path, err)
	}

	clk := clock.NewManual(epoch)
	c, stage, err := scenario.Build(clk)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}

	sampler := trace.Sampler{FPS: p.Config.FPS, Duration: p.Config.Duration}
	tr, err := sampler.Sample(ctx, c, stage, clk)
	if err != nil {
		return Result{}, fmt.Errorf("sample %s: %w", path, err)
	}
	tr.Name = scenario.Name
	if tr.Name == "" {
		tr.Name = filepath.Base(path)
	}

	out := p.Config.TracePath(path)
	if err := trace.WriteFile(out, tr); err != nil {
		return Result{}, fmt.Errorf("write trace %s: %w", out, err)
	}
	logging.Logger().Info("scenario traced", "scenario", path, "trace", out, "frames", len(tr.Frames))

	return Result{
		Path:     path,
		Output:   out,
		Frames:   len(tr.Frames),
		Sprites:  stage.Len(),
		Duration: time.Duration(tr.Duration * float64(time.Second)),
		Elapsed:  time.Since(start),
		Trace:    tr,
	}, nil
}

// Generate writes a demo scenario and returns its path.
func (p *Project) Generate() (string, error) {
	fmt.Println("[*] Generating scenario...")
	d := director.NewDirector(p.Config.Width, p.Config.Height)
	scenario, err := d.GenerateScenario(p.Config.GenerateCount, p.Config.TotalDuration)
	if err != nil {
		return "", err
	}

	outputPath := p.Config.GenerateOutput
	if outputPath == "" {
		outputPath = director.GenerateScenarioPath(director.DefaultDir, director.YAML)
	}
	if err := director.WriteScenario(scenario, outputPath); err != nil {
		return "", err
	}

	fmt.Printf("[+++] Success! Scenario saved: %s\n", outputPath)
	return outputPath, nil
}

func (p *Project) report(results []Result, total time.Duration) {
	frames := 0
	for _, r := range results {
		frames += r.Frames
	}
	fps := float64(frames) / total.Seconds()

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.3fs\n"+
			"Scenarios: %d\n"+
			"Frames: %d\n"+
			"Effective FPS: %.0f\n",
		p.Config.BuildVersion, total.Seconds(), len(results), frames, fps,
	)
	if s, err := system.CollectStats(); err == nil {
		fmt.Println(s.String())
	} else {
		fmt.Printf("[!] Could not collect stats: %v\n", err)
	}
	fmt.Println("----------------------------")

	logEntry := fmt.Sprintf("[%s] Build: %s | Scenarios: %d | Frames: %d | Total: %.3fs | FPS: %.0f\n",
		time.Now().Format("2006-01-02 15:04:05"), p.Config.BuildVersion, len(results), frames, total.Seconds(), fps)
	if err := appendLog(filepath.Join(p.Config.OutputDir, "benchmark.log"), logEntry); err != nil {
		fmt.Printf("[!] Could not write benchmark.log: %v\n", err)
	}
}

// appendLog appends entry to the file at path, creating it if needed.
func appendLog(path, entry string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = f.WriteString(entry)
	return err
}
