package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"screengrab/grab"
	"screengrab/pacer"
)

// Config carries everything needed to open a capture session.
type Config struct {
	Target            string
	Options           grab.Options
	EnableFileLogging bool
}

// Load reads configuration from the environment, optionally seeded from a
// .env file in the current directory or next to the executable.
func Load() (*Config, error) {
	envPaths := []string{".env"}
	if execPath, err := os.Executable(); err == nil {
		envPaths = append(envPaths, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			godotenv.Load(envPath)
			break
		}
	}

	opts := grab.DefaultOptions()
	var err error

	if opts.DrawMouse, err = boolEnv("GRAB_DRAW_MOUSE", opts.DrawMouse); err != nil {
		return nil, err
	}
	if opts.ShowRegion, err = boolEnv("GRAB_SHOW_REGION", opts.ShowRegion); err != nil {
		return nil, err
	}
	if v := os.Getenv("GRAB_FRAMERATE"); v != "" {
		if opts.Framerate, err = pacer.Parse(v); err != nil {
			return nil, err
		}
	}
	if v := os.Getenv("GRAB_VIDEO_SIZE"); v != "" {
		if opts.Width, opts.Height, err = ParseSize(v); err != nil {
			return nil, err
		}
	}
	if opts.OffsetX, err = intEnv("GRAB_OFFSET_X", 0); err != nil {
		return nil, err
	}
	if opts.OffsetY, err = intEnv("GRAB_OFFSET_Y", 0); err != nil {
		return nil, err
	}

	return &Config{
		Target:            getEnvWithDefault("GRAB_TARGET", "desktop"),
		Options:           opts,
		EnableFileLogging: strings.ToLower(os.Getenv("GRAB_FILE_LOGGING")) == "true",
	}, nil
}

// ParseSize parses a WxH video size string into positive pixel extents.
func ParseSize(s string) (int, int, error) {
	wStr, hStr, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("config: video size must be WxH, got %q", s)
	}
	w, err1 := strconv.Atoi(wStr)
	h, err2 := strconv.Atoi(hStr)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("config: invalid video size %q", s)
	}
	return w, h, nil
}

func boolEnv(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s must be 0 or 1, got %q", key, v)
	}
	return b, nil
}

func intEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, v)
	}
	return n, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
