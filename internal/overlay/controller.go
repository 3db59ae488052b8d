// Package overlay owns the visibility state of the on-demand overlay and the
// single execution context allowed to touch the rendering surface. Hotkey and
// tray contexts post messages; the controller's run loop drains them, so
// visibility has exactly one writer.
package overlay

import (
	"sync"
	"sync/atomic"

	"syshud/internal/models"
	"syshud/internal/utils"
)

type command int

const (
	cmdToggle command = iota
	cmdHide
)

// Controller marshals toggle signals and snapshot updates onto one goroutine
// and drives the Surface from there. Initial visibility is hidden.
type Controller struct {
	surface Surface
	log     *utils.Logger

	commands  chan command
	snapshots chan models.Snapshot

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup

	// visible mirrors the loop-owned state for readers (tray label, tests).
	// Only the run loop writes it.
	visible atomic.Bool
}

// NewController wires the controller to its surface and registers the
// surface's close affordance as a hide request.
func NewController(surface Surface, log *utils.Logger) *Controller {
	c := &Controller{
		surface:   surface,
		log:       log,
		commands:  make(chan command, 8),
		snapshots: make(chan models.Snapshot, 1),
	}
	surface.OnCloseRequested(c.RequestHide)
	return c
}

// Start launches the UI-owning loop. No-op if already running.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.stop != nil {
		c.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run(stop)
	}()
}

// Stop hides the surface if visible and terminates the loop. Idempotent and
// safe before Start.
func (c *Controller) Stop() {
	c.mu.Lock()
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()
	if stop != nil {
		close(stop)
	}
	c.wg.Wait()
}

// Toggle requests a visibility flip. Safe to call from any goroutine; posts
// are non-blocking and redundant posts beyond the buffer are dropped, which
// also absorbs a hotkey firing faster than the loop drains.
func (c *Controller) Toggle() {
	select {
	case c.commands <- cmdToggle:
	default:
	}
}

// RequestHide requests a transition to hidden; a no-op when already hidden.
func (c *Controller) RequestHide() {
	select {
	case c.commands <- cmdHide:
	default:
	}
}

// Publish hands a fresh Snapshot to the loop. Latest wins: an undelivered
// older snapshot is discarded rather than queued, and Publish never blocks
// the sampling goroutine.
func (c *Controller) Publish(snap models.Snapshot) {
	for {
		select {
		case c.snapshots <- snap:
			return
		default:
			select {
			case <-c.snapshots:
			default:
			}
		}
	}
}

// Visible reports the current visibility state.
func (c *Controller) Visible() bool {
	return c.visible.Load()
}

func (c *Controller) run(stop chan struct{}) {
	var latest models.Snapshot
	for {
		select {
		case cmd := <-c.commands:
			switch cmd {
			case cmdToggle:
				if c.visible.Load() {
					c.setHidden()
				} else {
					c.surface.Show(latest)
					c.visible.Store(true)
					c.logf("Overlay shown")
				}
			case cmdHide:
				if c.visible.Load() {
					c.setHidden()
				}
			}
		case snap := <-c.snapshots:
			latest = snap
			if c.visible.Load() {
				c.surface.Update(snap)
			}
		case <-stop:
			if c.visible.Load() {
				c.setHidden()
			}
			return
		}
	}
}

func (c *Controller) setHidden() {
	c.surface.Hide()
	c.visible.Store(false)
	c.logf("Overlay hidden")
}

func (c *Controller) logf(format string, args ...interface{}) {
	if c.log != nil {
		c.log.Writef(format, args...)
	}
}
