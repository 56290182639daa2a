package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/turing/config"
	"github.com/pthm-cable/turing/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	record := flag.String("record", "", "Record frames to an MJPEG AVI file")
	seed := flag.Int64("seed", 0, "RNG seed for blob placement (0 = config value)")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	preset := flag.String("preset", "", "Start from a named feed/kill preset")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *seed != 0 {
		cfg.Seed.RNGSeed = *seed
	}

	opts := game.Options{
		LogStats:   *logStats,
		OutputDir:  *outputDir,
		RecordPath: *record,
		Headless:   *headless,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g := newGame(cfg, opts, *preset)
		defer g.Unload()

		slog.Info("starting headless simulation",
			"grid", cfg.Grid.Width*cfg.Grid.Height,
			"seed", cfg.Seed.RNGSeed,
			"max_ticks", *maxTicks,
		)
		if *maxTicks == 0 && *record != "" {
			slog.Warn("recording without -max-ticks runs until interrupted")
		}

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && g.Tick() >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick(), "steps", g.Engine().Steps())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(cfg.Screen.Width, cfg.Screen.Height, "Turing Patterns")
	defer rl.CloseWindow()

	rl.SetTargetFPS(cfg.Screen.TargetFPS)

	g := newGame(cfg, opts, *preset)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && g.Tick() >= *maxTicks {
			break
		}
	}
}

func newGame(cfg *config.Config, opts game.Options, preset string) *game.Game {
	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	if preset != "" {
		if err := g.Engine().ApplyNamedPreset(preset); err != nil {
			slog.Error("unknown preset", "preset", preset, "error", err)
			g.Unload()
			os.Exit(1)
		}
	}
	return g
}
