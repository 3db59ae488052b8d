package overlay

import "syshud/internal/models"

// Surface is the rendering collaborator the controller drives. Show and Hide
// bracket a visible session; Update delivers fresh data in between. A surface
// must tolerate Update while hidden (the core cannot always know the UI's
// exact visibility timing) by treating it as a no-op.
type Surface interface {
	Show(initial models.Snapshot)
	Update(s models.Snapshot)
	Hide()
	// OnCloseRequested registers the callback invoked when the user
	// dismisses the surface through its own UI. The core treats it
	// identically to a toggle-off.
	OnCloseRequested(fn func())
}
