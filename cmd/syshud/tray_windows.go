//go:build windows

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os/exec"

	ico "github.com/Kodeworks/golang-image-ico"
	"github.com/getlantern/systray"

	"syshud/internal/version"
)

// startTray runs a Windows system tray icon mirroring the hotkey toggle.
// Blocks on the calling (main) thread until Quit.
func startTray(app *App) {
	onReady := func() {
		if icon := trayIcon(); len(icon) > 0 {
			systray.SetIcon(icon)
		}
		systray.SetTitle("syshud")
		systray.SetTooltip(fmt.Sprintf("syshud %s", version.String()))

		mToggle := systray.AddMenuItem("Show/Hide Overlay", "Toggle the system info overlay")
		mOpen := systray.AddMenuItem("Open Overlay Page", "Open the overlay in a browser")
		systray.AddSeparator()
		mQuit := systray.AddMenuItem("Quit", "Stop syshud")

		go func() {
			for {
				select {
				case <-mToggle.ClickedCh:
					app.log.Write("Tray: toggle overlay")
					app.ctrl.Toggle()
				case <-mOpen.ClickedCh:
					app.log.Write("Tray: open overlay page")
					_ = launchBrowser(app.server.URL())
				case <-mQuit.ClickedCh:
					app.log.Write("Tray: quit")
					systray.Quit()
				}
			}
		}()
	}

	systray.Run(onReady, func() {})
}

// trayQuit ends the tray loop, letting main proceed to shutdown.
func trayQuit() {
	systray.Quit()
}

// trayIcon draws a small bar-chart glyph at runtime so no binary asset needs
// embedding, and encodes it to the ICO format systray expects on Windows.
func trayIcon() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	bg := color.RGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}
	bar := color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	for i, h := range []int{6, 10, 8, 13} {
		for y := 15 - h; y < 15; y++ {
			for x := 2 + i*3; x < 4+i*3; x++ {
				img.SetRGBA(x, y, bar)
			}
		}
	}
	var buf bytes.Buffer
	if err := ico.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func launchBrowser(url string) error {
	cmd := exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	return cmd.Start()
}
