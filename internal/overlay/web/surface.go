package web

import (
	"encoding/json"
	"sync"

	"syshud/internal/models"
)

// Surface renders the overlay in a loopback browser page by pushing events
// over the websocket hub. It implements overlay.Surface; the controller is
// the only caller of Show/Update/Hide.
type Surface struct {
	hub *Hub

	mu      sync.Mutex
	visible bool
	onClose func()
}

// event is the wire format pushed to overlay pages.
type event struct {
	Type string   `json:"type"`
	Data *payload `json:"data,omitempty"`
}

// payload carries pre-formatted display strings so the page stays dumb:
// absent metrics already read "N/A" and units are attached.
type payload struct {
	CPU        string `json:"cpu"`
	CPUTemp    string `json:"cpu_temp"`
	Mem        string `json:"mem"`
	GPU        string `json:"gpu"`
	GPUTemp    string `json:"gpu_temp"`
	Source     string `json:"source"`
	CapturedAt string `json:"captured_at"`
}

func payloadFor(s models.Snapshot) *payload {
	return &payload{
		CPU:        s.CPUUsageDisplay(),
		CPUTemp:    s.CPUTempDisplay(),
		Mem:        s.MemoryUsageDisplay(),
		GPU:        s.GPUUsageDisplay(),
		GPUTemp:    s.GPUTempDisplay(),
		Source:     string(s.GPUSource),
		CapturedAt: s.CapturedAt.Format("15:04:05"),
	}
}

// NewSurface creates a Surface broadcasting through the given hub.
func NewSurface(hub *Hub) *Surface {
	return &Surface{hub: hub}
}

func (s *Surface) Show(initial models.Snapshot) {
	s.mu.Lock()
	s.visible = true
	s.mu.Unlock()
	s.push(event{Type: "show", Data: payloadFor(initial)})
}

func (s *Surface) Update(snap models.Snapshot) {
	s.mu.Lock()
	visible := s.visible
	s.mu.Unlock()
	// Tolerate updates delivered while hidden; they must not resurrect
	// the panel.
	if !visible {
		return
	}
	s.push(event{Type: "snapshot", Data: payloadFor(snap)})
}

func (s *Surface) Hide() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
	s.push(event{Type: "hide"})
}

func (s *Surface) OnCloseRequested(fn func()) {
	s.mu.Lock()
	s.onClose = fn
	s.mu.Unlock()
}

// Visible reports whether the panel is currently shown.
func (s *Surface) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// requestClose fires the registered close callback; invoked when the page's
// close affordance posts back.
func (s *Surface) requestClose() {
	s.mu.Lock()
	fn := s.onClose
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *Surface) push(ev event) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return
	}
	s.hub.Broadcast(raw)
}
