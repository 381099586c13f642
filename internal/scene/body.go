package scene

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// UpdateContext carries the clock readings a body may need for one tick.
// Each Update advances exactly one tick; there is no frame delta.
type UpdateContext struct {
	Now             time.Time
	LastInteraction time.Time
}

// Idle reports how long it has been since the user last dragged a body.
func (c UpdateContext) Idle() time.Duration {
	return c.Now.Sub(c.LastInteraction)
}

// DrawCall is one textured sphere draw. Model already includes the radius scale.
type DrawCall struct {
	Model    mgl32.Mat4
	Texture  uint32
	Alpha    float32
	Emissive bool
}

// Drawer executes draw calls, typically the GL renderer.
type Drawer interface {
	Draw(call DrawCall)
}

// RenderContext provides the parent transform and the draw sink for a body.
type RenderContext struct {
	Parent mgl32.Mat4
	Drawer Drawer
}

// WithParent returns a copy of ctx nested under model.
func (ctx RenderContext) WithParent(model mgl32.Mat4) RenderContext {
	ctx.Parent = model
	return ctx
}

// CelestialBody is implemented by the sun, planet and moon.
// Render must not change any animation state.
type CelestialBody interface {
	Update(ctx UpdateContext)
	Render(ctx RenderContext)
}

// atmosphereAlpha is the opacity of every atmosphere shell.
const atmosphereAlpha = 0.5

// wrapDegrees folds an angle into [0, 360).
func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360.0)
	if a < 0 {
		a += 360.0
	}
	// -1e-15 + 360 rounds to 360.
	if a >= 360.0 {
		a = 0
	}
	return a
}

func rotY(deg float64) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(float32(deg)))
}

func rotX(deg float64) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(float32(deg)))
}

func translate(x, y, z float32) mgl32.Mat4 {
	return mgl32.Translate3D(x, y, z)
}

func scale(r float32) mgl32.Mat4 {
	return mgl32.Scale3D(r, r, r)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
