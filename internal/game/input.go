package game

import (
	"orrery/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// attachInput installs window callbacks that translate GLFW events into queue
// events. They fire during glfw.PollEvents.
func attachInput(window *glfw.Window, q *input.Queue) {
	window.SetCloseCallback(func(w *glfw.Window) {
		q.Push(input.Event{Kind: input.EventQuit})
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			q.Push(input.Event{Kind: input.EventQuit})
		}
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		ev := input.Event{Kind: input.EventMouseButton, Button: mouseButton(button)}
		switch action {
		case glfw.Press:
			ev.Action = input.Press
		case glfw.Release:
			ev.Action = input.Release
		default:
			return
		}
		ev.X, ev.Y = w.GetCursorPos()
		q.Push(ev)
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		q.Push(input.Event{Kind: input.EventCursorMove, X: xpos, Y: ypos})
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		q.Push(input.Event{Kind: input.EventScroll, ScrollY: yoff})
	})
}

func mouseButton(b glfw.MouseButton) input.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft
	case glfw.MouseButtonRight:
		return input.ButtonRight
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle
	}
	return input.ButtonOther
}
