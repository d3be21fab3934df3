package main

import (
	"fmt"

	"github.com/Faultbox/juncci-splash/internal/config"
	"github.com/Faultbox/juncci-splash/internal/engine/renderer"
	"github.com/Faultbox/juncci-splash/internal/engine/window"
	"github.com/Faultbox/juncci-splash/internal/logger"
	"github.com/Faultbox/juncci-splash/internal/preview"
)

// rendererFactory creates GL renderers bound to window surfaces. The
// surface's context is made current before any GL call.
func rendererFactory(multisample bool, created func(*renderer.Renderer)) preview.RendererFactory {
	return func(s preview.Surface, ro preview.RendererOptions) (preview.Renderer, error) {
		surface, ok := s.(*window.Surface)
		if !ok {
			return nil, fmt.Errorf("renderer needs a window surface, got %T", s)
		}
		if err := surface.MakeCurrent(); err != nil {
			return nil, fmt.Errorf("bind surface: %w", err)
		}
		r, err := renderer.New(renderer.Options{Antialias: ro.Antialias && multisample})
		if err != nil {
			return nil, err
		}
		if created != nil {
			created(r)
		}
		return r, nil
	}
}

// previewOptions copies the preview settings over the viewer defaults.
func previewOptions(cfg *config.Config) (preview.Options, error) {
	background, err := cfg.Preview.BackgroundRGB()
	if err != nil {
		return preview.Options{}, err
	}
	opts := preview.DefaultOptions()
	opts.Label = cfg.Preview.Label
	opts.Background = background
	opts.AutoRotateSpeed = cfg.Preview.AutoRotateSpeed
	opts.DampingFactor = cfg.Preview.DampingFactor
	opts.Logger = logger.Named("preview")
	return opts, nil
}

func loggerOptions(cfg config.LoggingConfig) logger.Options {
	opts := logger.Options{Level: cfg.Level, Console: true}
	if cfg.LogFile != "" {
		opts.File = logger.FileConfig{
			Path:       cfg.LogFile,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
	}
	return opts
}
