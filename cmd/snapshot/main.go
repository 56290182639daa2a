// Snapshot tool - runs the simulation headless and writes the final frame.
//
// Usage: go run ./cmd/snapshot -preset coral -ticks 2000 -out coral.png
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pthm-cable/turing/config"
	"github.com/pthm-cable/turing/engine"
	"github.com/pthm-cable/turing/recorder"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	preset := flag.String("preset", "", "Named feed/kill preset")
	ticks := flag.Int("ticks", 1000, "Frames to simulate")
	outPath := flag.String("out", "snapshot.png", "Output PNG path")
	videoPath := flag.String("video", "", "Also record every frame to an MJPEG AVI")
	width := flag.Int("width", 0, "Render width (0 = config)")
	height := flag.Int("height", 0, "Render height (0 = config)")
	blobs := flag.Bool("blobs", false, "Start from random blobs instead of the centre seed")
	flag.Parse()

	if err := run(*configPath, *preset, *ticks, *outPath, *videoPath, *width, *height, *blobs); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, preset string, ticks int, outPath, videoPath string, width, height int, blobs bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if width > 0 {
		cfg.Render.OutputWidth = width
	}
	if height > 0 {
		cfg.Render.OutputHeight = height
	}
	if err := cfg.Finalize(); err != nil {
		return err
	}

	e, err := engine.New(cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	if preset != "" {
		if err := e.ApplyNamedPreset(preset); err != nil {
			return err
		}
	}
	if blobs {
		e.ClearField()
		e.AddRandomBlobs()
	}

	var video *recorder.Video
	if videoPath != "" {
		video, err = recorder.NewVideo(videoPath, cfg.Derived.OutputW, cfg.Derived.OutputH,
			cfg.Recording.FPS, cfg.Recording.JPEGQuality)
		if err != nil {
			return err
		}
	}

	frame := e.Render()
	for i := 0; i < ticks; i++ {
		frame = e.Tick()
		if video != nil {
			if err := video.AddFrame(frame); err != nil {
				video.Close()
				return err
			}
		}
	}
	if video != nil {
		if err := video.Close(); err != nil {
			return err
		}
		fmt.Printf("Recorded %d frames to: %s\n", video.Frames(), videoPath)
	}

	if err := recorder.SavePNG(outPath, frame); err != nil {
		return err
	}
	b := frame.Bounds()
	fmt.Printf("Rendered %d steps to: %s (%dx%d)\n", e.Steps(), outPath, b.Dx(), b.Dy())
	return nil
}
