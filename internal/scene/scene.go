package scene

import (
	"orrery/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// State is the lifecycle state of the scene loop.
type State int

const (
	StateRunning State = iota
	StateQuitting
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateQuitting:
		return "quitting"
	}
	return "unknown"
}

// Textures names the GPU textures each body draws with.
type Textures struct {
	Planet           uint32
	PlanetAtmosphere uint32
	Moon             uint32
	MoonAtmosphere   uint32
	Sun              uint32
}

// Scene owns the sun and the planet (and through it the moon) and places the
// camera behind the planet.
type Scene struct {
	Sun    *Sun
	Planet *Planet

	state State
}

// New builds the sun/planet/moon hierarchy from settings.
func New(s config.SceneSettings, tex Textures) *Scene {
	moon := NewMoon(s.MoonDistance, s.MoonSize, tex.Moon, tex.MoonAtmosphere)
	planet := NewPlanet(PlanetParams{
		Radius:            s.PlanetRadius,
		AtmosphereRadius:  s.AtmosphereRadius,
		Texture:           tex.Planet,
		AtmosphereTexture: tex.PlanetAtmosphere,
		OrbitRadius:       s.OrbitRadius,
		OrbitSpeed:        s.OrbitSpeed,
		SpinSpeed:         s.SpinSpeed,
		Zoom:              s.Zoom,
	}, moon)

	return &Scene{
		Sun:    NewSun(s.SunRadius, tex.Sun),
		Planet: planet,
		state:  StateRunning,
	}
}

func (s *Scene) State() State { return s.state }

// Running reports whether the loop should produce another frame.
func (s *Scene) Running() bool { return s.state == StateRunning }

// Quit moves the scene to StateQuitting. It is the only transition.
func (s *Scene) Quit() { s.state = StateQuitting }

// Update advances the planet (and its moon), then the sun.
func (s *Scene) Update(ctx UpdateContext) {
	s.Planet.Update(ctx)
	s.Sun.Update(ctx)
}

// Eye returns the camera position and the point it looks at: zoom units behind
// the planet along +Z, level with the orbital plane.
func (s *Scene) Eye() (eye, target mgl32.Vec3) {
	pos := s.Planet.Position()
	target = mgl32.Vec3{pos.X(), 0, pos.Z()}
	eye = mgl32.Vec3{pos.X(), 0, pos.Z() + float32(s.Planet.Zoom())}
	return eye, target
}

// ViewMatrix returns the camera view for the current planet position and zoom.
func (s *Scene) ViewMatrix() mgl32.Mat4 {
	eye, target := s.Eye()
	return mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
}

// LightPosition is the world position of the light, the sun's center.
func (s *Scene) LightPosition() mgl32.Vec3 {
	return mgl32.Vec3{0, 0, 0}
}

// Render emits the sun and then the planet hierarchy to d.
func (s *Scene) Render(d Drawer) {
	ctx := RenderContext{Parent: mgl32.Ident4(), Drawer: d}
	s.Sun.Render(ctx)
	s.Planet.Render(ctx)
}
