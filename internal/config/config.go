package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Environment variables consumed at startup. There are no CLI flags; the
// sampling interval and the GPU fallback order are fixed.
const (
	envPort = "SYSHUD_PORT"
	envTray = "SYSHUD_TRAY"
	envLog  = "SYSHUD_LOG"
)

// DefaultPort is the loopback port the overlay page is served on.
const DefaultPort = 8642

// Config carries the small set of tunables the utility exposes.
type Config struct {
	// OverlayPort is the 127.0.0.1 port for the overlay page and its
	// websocket feed.
	OverlayPort int `validate:"gte=1024,lte=65535"`
	// TrayEnabled controls the system tray icon (Windows only; ignored
	// elsewhere).
	TrayEnabled bool
	// LogFile is the diagnostics destination. Empty means stdout.
	LogFile string
}

var validate = validator.New()

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		OverlayPort: DefaultPort,
		TrayEnabled: true,
		LogFile:     os.Getenv(envLog),
	}
	if raw := os.Getenv(envPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envPort, err)
		}
		cfg.OverlayPort = port
	}
	if raw := os.Getenv(envTray); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envTray, err)
		}
		cfg.TrayEnabled = enabled
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
