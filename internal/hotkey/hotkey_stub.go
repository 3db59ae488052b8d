//go:build !windows

package hotkey

import "errors"

// Watcher is a placeholder on platforms without global hotkey support; the
// overlay stays toggleable through the tray and the page's own controls.
type Watcher struct{}

// Start reports that registration is unavailable. The caller logs this once
// and continues with the toggle feature degraded.
func Start(onToggle func()) (*Watcher, error) {
	return nil, errors.New("global hotkey registration is not supported on this platform")
}

// Stop is a no-op.
func (w *Watcher) Stop() {}
