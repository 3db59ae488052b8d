package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"syshud/internal/config"
	"syshud/internal/hotkey"
	"syshud/internal/models"
	"syshud/internal/overlay"
	"syshud/internal/overlay/web"
	"syshud/internal/sampler"
	"syshud/internal/utils"
	"syshud/internal/version"
)

// App bundles the long-lived pieces so the tray handlers can reach them.
type App struct {
	cfg     config.Config
	log     *utils.Logger
	server  *web.Server
	ctrl    *overlay.Controller
	sampler *sampler.Sampler
	watcher *hotkey.Watcher
}

var app *App

// envBackground marks the detached child so it does not re-spawn itself.
const envBackground = "SYSHUD_BACKGROUND"

func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// With the tray active the console host can be released: re-spawn
	// detached once, then hide the child's console window.
	if cfg.TrayEnabled && spawnDetachedIfNeeded(cfg.TrayEnabled) {
		return
	}
	if os.Getenv(envBackground) == "1" {
		hideConsoleWindow()
	}

	logger := utils.NewLogger(cfg.LogFile)
	app = &App{cfg: cfg, log: logger}

	app.server = web.NewServer(cfg.OverlayPort, hotkey.Combination, func() (models.Snapshot, bool) {
		return app.sampler.Latest()
	}, logger)
	app.ctrl = overlay.NewController(app.server.Surface, logger)
	app.sampler = sampler.New(sampler.NewSystemCollector(logger), app.ctrl.Publish, logger)

	app.ctrl.Start()
	app.sampler.Start()
	go func() {
		if err := app.server.Start(); err != nil {
			logger.Writef("Overlay server failed: %v", err)
		}
	}()

	// A failed registration degrades the toggle but never the sampling;
	// the tray and the overlay page's own close control still work.
	app.watcher, err = hotkey.Start(app.ctrl.Toggle)
	if err != nil {
		logger.Writef("Global hotkey unavailable: %v", err)
	}

	fmt.Printf("syshud %s started\n", version.String())
	fmt.Printf("Press %s to show/hide system info\n", hotkey.Combination)
	fmt.Printf("Overlay page: %s\n", app.server.URL())
	fmt.Println("Press Ctrl+C in this window or close it to exit")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if cfg.TrayEnabled && runtime.GOOS == "windows" {
		go func() { // forward OS signals to tray exit
			<-quit
			logger.Write("Shutdown signal received")
			trayQuit()
		}()
		// The tray runs on the main thread and blocks until quit.
		startTray(app)
	} else {
		<-quit
		logger.Write("Shutdown signal received")
	}

	shutdown()
}

// shutdown tears the pipeline down in dependency order: no new samples, no
// more toggles, surface hidden, server drained.
func shutdown() {
	app.sampler.Stop()
	if app.watcher != nil {
		app.watcher.Stop()
	}
	app.ctrl.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.server.Shutdown(ctx); err != nil {
		app.log.Writef("Overlay server shutdown error: %v", err)
	}

	app.log.Write("syshud exited")
}
