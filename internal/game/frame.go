package game

import (
	"time"

	"orrery/internal/input"
	"orrery/internal/profiling"
	"orrery/internal/scene"
)

// frame is the window-independent part of a loop iteration: drain the pending
// input, update the scene and hand it to render.
type frame struct {
	events  *input.Queue
	handler *input.Handler
	scene   *scene.Scene
	render  func(*scene.Scene)
}

// step runs one frame at now. closing reports a close request from the window.
// On quit the scene moves to Quitting and nothing is updated or drawn; step
// then returns false.
func (f *frame) step(now time.Time, closing bool) bool {
	quit := func() bool {
		defer profiling.Track("input.Drain")()
		return f.handler.Drain(f.events, f.scene.Planet)
	}()
	if quit || closing {
		f.scene.Quit()
		return false
	}

	func() {
		defer profiling.Track("scene.Update")()
		f.scene.Update(scene.UpdateContext{
			Now:             now,
			LastInteraction: f.handler.LastInteraction(),
		})
	}()

	f.render(f.scene)
	return true
}
