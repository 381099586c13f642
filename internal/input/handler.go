package input

import (
	"time"

	"orrery/internal/config"
)

const (
	// DragSensitivity converts cursor pixels to degrees.
	DragSensitivity = 0.5

	// MaxTilt bounds the X rotation so the planet never flips over.
	MaxTilt = 40.0

	// ZoomStep is the zoom change per wheel notch.
	ZoomStep = 0.5
)

// Target is what the handler steers, normally the planet.
type Target interface {
	Rotation() (x, y float64)
	SetRotation(x, y float64)
	Zoom() float64
	SetZoom(z float64)
}

// Session is the state of the current drag interaction.
type Session struct {
	Dragging        bool
	LastX, LastY    float64
	RotationX       float64
	RotationY       float64
	LastInteraction time.Time
}

// Handler turns device events into rotation and zoom changes on a Target.
type Handler struct {
	session Session
	now     func() time.Time
}

// NewHandler creates a handler that stamps interactions using now.
// A nil now uses time.Now.
func NewHandler(now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{now: now}
}

// LastInteraction is the time of the last drag motion, zero if none.
func (h *Handler) LastInteraction() time.Time { return h.session.LastInteraction }

// Drain applies every pending event in q to t and reports whether one of them
// asked to quit. Events after a quit are still applied.
func (h *Handler) Drain(q *Queue, t Target) (quit bool) {
	for _, ev := range q.Drain() {
		if h.Handle(ev, t) {
			quit = true
		}
	}
	return quit
}

// Handle applies one event to t. It returns true for a quit request.
func (h *Handler) Handle(ev Event, t Target) bool {
	switch ev.Kind {
	case EventQuit:
		return true
	case EventMouseButton:
		h.handleButton(ev, t)
	case EventCursorMove:
		h.handleMotion(ev, t)
	case EventScroll:
		h.handleScroll(ev, t)
	}
	return false
}

func (h *Handler) handleButton(ev Event, t Target) {
	if ev.Button != ButtonLeft {
		return
	}
	switch ev.Action {
	case Press:
		// A new drag starts from wherever the target is now, which may have
		// relaxed since the previous drag.
		x, y := t.Rotation()
		h.session = Session{
			Dragging:        true,
			LastX:           ev.X,
			LastY:           ev.Y,
			RotationX:       x,
			RotationY:       y,
			LastInteraction: h.session.LastInteraction,
		}
	case Release:
		h.session.Dragging = false
	}
}

func (h *Handler) handleMotion(ev Event, t Target) {
	if !h.session.Dragging {
		return
	}
	dx := ev.X - h.session.LastX
	dy := ev.Y - h.session.LastY

	h.session.RotationY += dx * DragSensitivity
	h.session.RotationX -= dy * DragSensitivity
	h.session.RotationX = clamp(h.session.RotationX, -MaxTilt, MaxTilt)

	h.session.LastX = ev.X
	h.session.LastY = ev.Y

	t.SetRotation(h.session.RotationX, h.session.RotationY)
	h.session.LastInteraction = h.now()
}

func (h *Handler) handleScroll(ev Event, t Target) {
	z := t.Zoom()
	switch {
	case ev.ScrollY > 0:
		z -= ZoomStep
	case ev.ScrollY < 0:
		z += ZoomStep
	}
	t.SetZoom(clamp(z, config.MinZoom, config.MaxZoom))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
