package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

var debugMode = os.Getenv("IV_DEBUG") != ""

func debugLog(format string, args ...interface{}) {
	if debugMode {
		log.Printf("Debug: "+format, args...)
	}
}

func main() {
	var (
		flagScale      = flag.String("scale", "", "initial scale mode (optimal, fit, width, height, fill, real)")
		flagSlideshow  = flag.Bool("slideshow", false, "start in slideshow mode")
		flagFullscreen = flag.Bool("fullscreen", false, "start in fullscreen mode")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] FILE...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	result := loadConfig()
	cfg := result.Config
	for _, warning := range result.Warnings {
		log.Printf("Warning: %s", warning)
	}

	// Command line overrides
	if *flagScale != "" {
		if _, ok := ParseScaleMode(*flagScale); !ok {
			log.Fatalf("Error: Unknown scale mode %q", *flagScale)
		}
		cfg.Scale = *flagScale
	}
	if *flagSlideshow {
		cfg.Slideshow = true
	}
	if *flagFullscreen {
		cfg.Fullscreen = true
	}

	entries, err := collectEntries(flag.Args(), cfg.SortMethod)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if len(entries) == 0 {
		log.Fatal("Error: No image files found")
	}
	debugLog("collected %d entries, sort: %s", len(entries), getSortMethodName(cfg.SortMethod))

	if err := InitGraphics(); err != nil {
		log.Fatalf("Error: Failed to initialize graphics: %v", err)
	}

	events := make(chan Event, eventQueueSize)
	list := NewImageList(entries, cfg.Loop)

	preload := 0
	if cfg.PreloadEnabled {
		preload = cfg.PreloadCount
	}
	fetcher := NewFetcher(list, cfg.CacheSize, preload, events)
	defer fetcher.Stop()

	info := NewInfo(cfg.ShowInfo)
	game := NewGame(&cfg, info, events)

	animTimer := NewPlaybackTimer(events, eventAnimationTick)
	slideTimer := NewPlaybackTimer(events, eventSlideshowTick)
	viewer := NewViewer(list, fetcher, game, info, animTimer, slideTimer, &cfg)

	game.viewer = viewer
	game.renderer = NewRenderer(viewer, info, &cfg)
	game.input = NewInputHandler(game,
		NewKeybindingManager(cfg.Keybindings),
		NewMousebindingManager(cfg.Mousebindings, cfg.Mouse))

	if err := viewer.Init(0); err != nil {
		log.Fatalf("Error: %v", err)
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("iv")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Error: %v", err)
	}

	// Persist the windowed size and the toggles that changed at runtime
	if !ebiten.IsFullscreen() {
		cfg.WindowWidth, cfg.WindowHeight = game.width, game.height
	}
	cfg.Fullscreen = ebiten.IsFullscreen()
	cfg.ShowInfo = info.Visible()
	saveConfig(cfg)
}
