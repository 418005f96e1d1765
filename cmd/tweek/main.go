package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/ivlev/tweek/internal/config"
	"github.com/ivlev/tweek/internal/director"
	"github.com/ivlev/tweek/internal/effects"
	"github.com/ivlev/tweek/internal/engine"
	"github.com/ivlev/tweek/internal/logging"
	"github.com/ivlev/tweek/internal/system"
)

// buildVersion is set with -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

func main() {
	system.InitResourceLimits(2048)

	defaults := config.Default()
	inputPtr := flag.String("input", "", "Comma-separated scenario files or directories (default: latest file in internal/scenarios/)")
	outputPtr := flag.String("output", defaults.OutputDir, "Directory for trace files")
	formatPtr := flag.String("format", defaults.Format, "Trace format: csv, yaml")
	fpsPtr := flag.Int("fps", defaults.FPS, "Sampling rate")
	durationPtr := flag.Float64("duration", 0, "Seconds to sample (0: each scenario's own length)")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Scenarios traced in parallel")
	statsPtr := flag.Bool("stats", false, "Print a performance report")
	watchPtr := flag.Bool("watch", false, "Re-trace scenarios whenever they change")
	verbosePtr := flag.Bool("v", false, "Verbose engine logging")

	generatePtr := flag.Bool("generate", false, "Write a demo scenario instead of tracing")
	countPtr := flag.Int("count", defaults.GenerateCount, "Sprites in the generated scenario")
	totalPtr := flag.Float64("total", defaults.TotalDuration, "Target length of the generated scenario (sec)")
	widthPtr := flag.Int("width", defaults.Width, "Viewport width")
	heightPtr := flag.Int("height", defaults.Height, "Viewport height")
	presetPtr := flag.String("preset", "", "Viewport preset: 16:9, 9:16, 4:5")
	scenarioOutPtr := flag.String("scenario-out", "", "Generated scenario path (.yaml or .toml)")
	listPtr := flag.Bool("effects", false, "List effect presets and exit")

	flag.Parse()

	if *listPtr {
		fmt.Println(strings.Join(effects.Names(), "\n"))
		return
	}

	if *verbosePtr {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	width, height := *widthPtr, *heightPtr
	switch *presetPtr {
	case "16:9":
		width, height = 1280, 720
	case "9:16":
		width, height = 720, 1280
	case "4:5":
		width, height = 1080, 1350
	}

	var paths []string
	for _, p := range strings.Split(*inputPtr, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	paths = append(paths, flag.Args()...)
	if len(paths) == 0 && !*generatePtr {
		latest, err := director.FindLatestScenario(director.DefaultDir)
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a scenario in %s/ or run with -generate", err, director.DefaultDir)
		}
		paths = []string{latest}
		fmt.Printf("[*] Selected scenario: %s\n", latest)
	}

	cfg := &config.Config{
		ScenarioPaths:  paths,
		OutputDir:      *outputPtr,
		Format:         *formatPtr,
		FPS:            *fpsPtr,
		Duration:       director.Seconds(*durationPtr),
		Workers:        *workersPtr,
		ShowStats:      *statsPtr,
		Watch:          *watchPtr,
		Verbose:        *verbosePtr,
		BuildVersion:   buildVersion,
		Generate:       *generatePtr,
		GenerateCount:  *countPtr,
		GenerateOutput: *scenarioOutPtr,
		Width:          width,
		Height:         height,
		TotalDuration:  *totalPtr,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Invalid configuration: %v", err)
	}

	project := engine.NewProject(cfg)
	if cfg.Generate {
		if _, err := project.Generate(); err != nil {
			log.Fatalf("[-] Generation failed: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := project.Run(ctx)
	if err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}
	fmt.Printf("[+++] Success! %d traces in %s\n", len(results), cfg.OutputDir)

	if cfg.Watch {
		if err := project.Watch(ctx); err != nil {
			log.Fatalf("[-] Watch error: %v", err)
		}
	}
}
