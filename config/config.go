// Package config loads defaults for the clipper from the environment.
//
// Environment Variables:
//   - CLIPPER_BEFORE: seconds kept before each target (default: 40)
//   - CLIPPER_AFTER: seconds kept after each target (default: 20)
//   - CLIPPER_OUTPUT_DIR: directory for clips (default: "<video>-clips" next to the video)
//   - CLIPPER_EXT: output media extension (default: mp4)
//   - CLIPPER_FFMPEG: ffmpeg binary (default: ffmpeg)
//   - CLIPPER_FFPROBE: ffprobe binary (default: ffprobe)
//   - CLIPPER_MPV: mpv binary (default: mpv)
//   - CLIPPER_WORKERS: concurrent cuts in batch mode (default: 1)
//   - CLIPPER_DB_PATH: run history database (default: ~/.local/share/video-clipper/history.db)
//   - CLIPPER_LOG_LEVEL: debug, info, warn or error (default: info)
//
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application defaults. Command-line flags override them.
type Config struct {
	Before    int
	After     int
	OutputDir string
	Ext       string
	FFmpeg    string
	FFprobe   string
	Mpv       string
	Workers   int
	DBPath    string
	LogLevel  string
}

// Option adjusts a Config after it has been read from the environment.
type Option func(*Config)

// Load reads .env (if any) and the environment.
func Load(opts ...Option) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return NewFromEnv(opts...)
}

// NewFromEnv builds a Config from environment variables and options.
func NewFromEnv(opts ...Option) (*Config, error) {
	cfg := &Config{
		Before:    getEnvInt("CLIPPER_BEFORE", 40),
		After:     getEnvInt("CLIPPER_AFTER", 20),
		OutputDir: getEnvString("CLIPPER_OUTPUT_DIR", ""),
		Ext:       getEnvString("CLIPPER_EXT", "mp4"),
		FFmpeg:    getEnvString("CLIPPER_FFMPEG", "ffmpeg"),
		FFprobe:   getEnvString("CLIPPER_FFPROBE", "ffprobe"),
		Mpv:       getEnvString("CLIPPER_MPV", "mpv"),
		Workers:   getEnvInt("CLIPPER_WORKERS", 1),
		DBPath:    getEnvString("CLIPPER_DB_PATH", ""),
		LogLevel:  getEnvString("CLIPPER_LOG_LEVEL", "info"),
	}

	if cfg.DBPath == "" {
		path, err := defaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that flags or the environment may have broken.
func (c *Config) Validate() error {
	if c.Before < 0 || c.After < 0 {
		return fmt.Errorf("margins must not be negative (before=%d, after=%d)", c.Before, c.After)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// defaultDBPath returns ~/.local/share/video-clipper/history.db.
func defaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "video-clipper", "history.db"), nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
