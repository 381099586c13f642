package input

import (
	"sync"
)

// EventKind identifies a raw device event.
type EventKind int

const (
	EventQuit EventKind = iota
	EventMouseButton
	EventCursorMove
	EventScroll
)

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

// Action is a button transition.
type Action int

const (
	Press Action = iota
	Release
)

// Event is a device event captured by a window callback.
type Event struct {
	Kind   EventKind
	Button Button
	Action Action

	// Cursor position for button and motion events.
	X, Y float64

	// Vertical wheel offset for scroll events.
	ScrollY float64
}

// Queue buffers events from window callbacks until the frame loop drains them.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event.
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain returns the pending events in arrival order and empties the queue.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.events
	q.events = nil
	return out
}
