// Package main is the entry point for the juncci splash preview.
package main

import (
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/juncci-splash/internal/config"
	"github.com/Faultbox/juncci-splash/internal/engine/capture"
	"github.com/Faultbox/juncci-splash/internal/engine/renderer"
	"github.com/Faultbox/juncci-splash/internal/engine/window"
	"github.com/Faultbox/juncci-splash/internal/logger"
	"github.com/Faultbox/juncci-splash/internal/preview"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Save error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("config written to", path)
		return
	}

	if err := logger.Init(loggerOptions(cfg.Logging)); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== juncci splash ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("splash error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("splash closed normally")
}

func run(cfg *config.Config) error {
	opts, err := previewOptions(cfg)
	if err != nil {
		return err
	}

	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    cfg.Window.Samples,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	var gpu *renderer.Renderer
	newRenderer := rendererFactory(cfg.Window.Samples > 0, func(r *renderer.Renderer) { gpu = r })

	viewer := preview.New(newRenderer, opts)
	if err := viewer.Start(win); err != nil {
		return err
	}

	// F12 saves the frame just drawn; registered after the viewer so it
	// runs between the draw and the buffer swap.
	snapshots := capture.NewSnapshotter(cfg.Preview.ScreenshotDir, "splash")
	snapshotPending := false
	keys := win.ObserveKey(func(key sdl.Scancode) {
		if key == sdl.SCANCODE_F12 {
			snapshotPending = true
		}
	})
	defer keys.Disconnect()
	shots := win.OnFrame(func() {
		if !snapshotPending || gpu == nil {
			return
		}
		snapshotPending = false
		saveSnapshot(snapshots, gpu)
	})
	defer shots.Disconnect()

	for win.Pump() {
		win.Frame()
	}

	return viewer.Stop()
}

func saveSnapshot(s *capture.Snapshotter, r *renderer.Renderer) {
	pixels, w, h := r.ReadPixels()
	img, err := capture.FromBottomUp(pixels, w, h)
	if err != nil {
		logger.Warn("snapshot failed", zap.Error(err))
		return
	}
	path, err := s.Save(img)
	if err != nil {
		logger.Warn("snapshot failed", zap.Error(err))
		return
	}
	logger.Info("snapshot saved", zap.String("path", path))
}
