//go:build windows

package main

import (
	"os"
	"os/exec"
	"syscall"
)

var (
	modKernel32          = syscall.NewLazyDLL("kernel32.dll")
	modUser32            = syscall.NewLazyDLL("user32.dll")
	procGetConsoleWindow = modKernel32.NewProc("GetConsoleWindow")
	procShowWindow       = modUser32.NewProc("ShowWindow")
)

const swHide = 0

// hideConsoleWindow hides the current process console window if present,
// backgrounding the utility while the tray stays active.
func hideConsoleWindow() {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return
	}
	procShowWindow.Call(hwnd, uintptr(swHide))
}

// spawnDetachedIfNeeded starts a detached copy of the current process and
// returns true if the parent should exit immediately, releasing the console
// it was started from. Only spawns when a console window exists and the
// background marker is not already set.
func spawnDetachedIfNeeded(trayEnabled bool) bool {
	if !trayEnabled {
		return false
	}
	// Avoid loops
	if os.Getenv(envBackground) == "1" {
		return false
	}
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return false
	}
	exe, err := os.Executable()
	if err != nil || exe == "" {
		return false
	}
	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), envBackground+"=1")
	const (
		detachedProcess       = 0x00000008
		createNewProcessGroup = 0x00000200
	)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true, CreationFlags: detachedProcess | createNewProcessGroup}
	return cmd.Start() == nil
}
