// Package config handles splash configuration loading and management.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Config holds all splash settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Samples    int    `yaml:"samples"` // MSAA samples, 0 disables
}

// PreviewConfig holds the 3D preview settings.
type PreviewConfig struct {
	Label           string  `yaml:"label"`
	Background      string  `yaml:"background"` // "#rrggbb"
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
	DampingFactor   float32 `yaml:"damping_factor"`
	ScreenshotDir   string  `yaml:"screenshot_dir"` // F12 snapshots
}

// LoggingConfig holds logging settings. The rotation fields apply only
// when LogFile is set.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "juncci",
			Width:      960,
			Height:     540,
			Fullscreen: false,
			VSync:      true,
			Samples:    4,
		},
		Preview: PreviewConfig{
			Label:           "juncci",
			Background:      "#111111",
			AutoRotateSpeed: 5,
			DampingFactor:   0.05,
			ScreenshotDir:   "screenshots",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
			Compress:   true,
		},
	}
}

// BackgroundRGB parses Preview.Background into 0xRRGGBB.
func (p PreviewConfig) BackgroundRGB() (uint32, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(p.Background, "#"), "0x")
	if len(s) != 6 {
		return 0, fmt.Errorf("background %q: want #rrggbb", p.Background)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("background %q: %w", p.Background, err)
	}
	return uint32(v), nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.Samples < 0 {
		return fmt.Errorf("window samples %d must not be negative", c.Window.Samples)
	}
	if _, err := c.Preview.BackgroundRGB(); err != nil {
		return err
	}
	if c.Preview.DampingFactor < 0 || c.Preview.DampingFactor > 1 {
		return fmt.Errorf("damping factor %v outside [0, 1]", c.Preview.DampingFactor)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	l := c.Logging
	if l.MaxSizeMB < 0 || l.MaxBackups < 0 || l.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation %dMB/%d backups/%d days must not be negative",
			l.MaxSizeMB, l.MaxBackups, l.MaxAgeDays)
	}
	return nil
}
