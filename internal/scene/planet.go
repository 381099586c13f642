package scene

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ReturnDelay is how long the planet waits after the last drag before its
	// X rotation springs back.
	ReturnDelay = 2000 * time.Millisecond

	// returnStep is the X rotation recovered per tick once idle, in degrees.
	returnStep = 0.5

	// shellLead keeps the atmosphere slightly ahead of the surface.
	shellLead = 5.0
)

// PlanetParams configures a planet.
type PlanetParams struct {
	Radius            float32
	AtmosphereRadius  float32
	Texture           uint32
	AtmosphereTexture uint32
	OrbitRadius       float64
	OrbitSpeed        float64
	SpinSpeed         float64
	Zoom              float64
}

// Planet orbits the sun on a circle in the XZ plane, spins about its own Y axis
// and can be turned by the user. It owns its moon.
type Planet struct {
	radius            float32
	atmosphereRadius  float32
	texture           uint32
	atmosphereTexture uint32

	spin      float64
	spinSpeed float64

	userX, userY float64
	zoom         float64

	orbitRadius float64
	orbitAngle  float64
	orbitSpeed  float64
	position    mgl32.Vec3

	moon *Moon
}

// NewPlanet creates a planet at orbit angle 0 with moon (which may be nil).
func NewPlanet(p PlanetParams, moon *Moon) *Planet {
	return &Planet{
		radius:            p.Radius,
		atmosphereRadius:  p.AtmosphereRadius,
		texture:           p.Texture,
		atmosphereTexture: p.AtmosphereTexture,
		spinSpeed:         p.SpinSpeed,
		zoom:              p.Zoom,
		orbitRadius:       p.OrbitRadius,
		orbitSpeed:        p.OrbitSpeed,
		position:          mgl32.Vec3{float32(p.OrbitRadius), 0, 0},
		moon:              moon,
	}
}

func (p *Planet) Moon() *Moon { return p.moon }
func (p *Planet) Position() mgl32.Vec3 { return p.position }
func (p *Planet) OrbitAngle() float64 { return p.orbitAngle }
func (p *Planet) SpinAngle() float64 { return p.spin }
func (p *Planet) Zoom() float64 { return p.zoom }
func (p *Planet) Rotation() (x, y float64) { return p.userX, p.userY }

// SetRotation overwrites the user rotation.
func (p *Planet) SetRotation(x, y float64) {
	p.userX = x
	p.userY = y
}

// SetZoom overwrites the camera distance. Callers clamp.
func (p *Planet) SetZoom(z float64) {
	p.zoom = z
}

// SetOrbitAngle places the planet at deg on its orbit.
func (p *Planet) SetOrbitAngle(deg float64) {
	p.orbitAngle = wrapDegrees(deg)
	p.updatePosition()
}

// Update advances spin and orbit by one tick, relaxes the X rotation once the
// user has been idle for ReturnDelay and then updates the moon.
func (p *Planet) Update(ctx UpdateContext) {
	p.spin = wrapDegrees(p.spin + p.spinSpeed)
	p.orbitAngle = wrapDegrees(p.orbitAngle + p.orbitSpeed)
	p.updatePosition()

	if ctx.Idle() >= ReturnDelay && p.userX != 0 {
		if p.userX > 0 {
			p.userX -= returnStep
		} else {
			p.userX += returnStep
		}
		if math.Abs(p.userX) < returnStep {
			p.userX = 0
		}
	}

	if p.moon != nil {
		p.moon.Update(ctx)
	}
}

func (p *Planet) updatePosition() {
	a := radians(p.orbitAngle)
	p.position = mgl32.Vec3{
		float32(p.orbitRadius * math.Cos(a)),
		0,
		float32(p.orbitRadius * math.Sin(a)),
	}
}

// Transform returns the planet's frame: orbit position, then user X and Y
// rotation, then spin. The spin is applied inside the user-rotated frame.
func (p *Planet) Transform(parent mgl32.Mat4) mgl32.Mat4 {
	return parent.
		Mul4(mgl32.Translate3D(p.position.X(), p.position.Y(), p.position.Z())).
		Mul4(rotX(p.userX)).
		Mul4(rotY(p.userY)).
		Mul4(rotY(p.spin))
}

// Render draws the surface, the atmosphere shell and the moon.
func (p *Planet) Render(ctx RenderContext) {
	model := p.Transform(ctx.Parent)

	ctx.Drawer.Draw(DrawCall{
		Model:   model.Mul4(scale(p.radius)),
		Texture: p.texture,
		Alpha:   1.0,
	})

	shell := model.Mul4(rotY(p.spin + shellLead))
	ctx.Drawer.Draw(DrawCall{
		Model:   shell.Mul4(scale(p.atmosphereRadius)),
		Texture: p.atmosphereTexture,
		Alpha:   atmosphereAlpha,
	})

	if p.moon != nil {
		p.moon.Render(ctx.WithParent(model))
	}
}
