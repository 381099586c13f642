package scene

import (
	"math"
	"testing"
	"time"

	"orrery/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

type recorder struct {
	calls []DrawCall
}

func (r *recorder) Draw(call DrawCall) {
	r.calls = append(r.calls, call)
}

func origin(m mgl32.Mat4) mgl32.Vec3 {
	return m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// near compares by absolute distance. ApproxEqualThreshold is relative, so it
// fails on float noise around an exact zero.
func near(got, want mgl32.Vec3, tol float32) bool {
	return got.Sub(want).Len() < tol
}

func matNear(got, want mgl32.Mat4, tol float32) bool {
	for i := range got {
		if d := got[i] - want[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}

// busy is a context where the user just interacted.
func busy() UpdateContext {
	now := time.Unix(1000, 0)
	return UpdateContext{Now: now, LastInteraction: now}
}

func idleFor(d time.Duration) UpdateContext {
	now := time.Unix(1000, 0)
	return UpdateContext{Now: now, LastInteraction: now.Add(-d)}
}

func testScene() *Scene {
	return New(config.Default().Scene, Textures{Planet: 1, PlanetAtmosphere: 2, Moon: 3, MoonAtmosphere: 2, Sun: 4})
}

func TestAnglesStayWrapped(t *testing.T) {
	s := testScene()
	for i := 0; i < 20000; i++ {
		s.Update(busy())

		for name, a := range map[string]float64{
			"orbit": s.Planet.OrbitAngle(),
			"spin":  s.Planet.SpinAngle(),
			"moon":  s.Planet.Moon().OrbitAngle(),
		} {
			if a < 0 || a >= 360 {
				t.Fatalf("tick %d: %s angle %v outside [0,360)", i, name, a)
			}
		}
	}
}

func TestPlanetPositionOnOrbit(t *testing.T) {
	p := NewPlanet(PlanetParams{Radius: 1, AtmosphereRadius: 1.05, OrbitRadius: 20, OrbitSpeed: 0.1, Zoom: 5}, nil)

	tests := []struct {
		angle float64
		want  mgl32.Vec3
	}{
		{0, mgl32.Vec3{20, 0, 0}},
		{90, mgl32.Vec3{0, 0, 20}},
		{180, mgl32.Vec3{-20, 0, 0}},
		{270, mgl32.Vec3{0, 0, -20}},
	}
	for _, tt := range tests {
		p.SetOrbitAngle(tt.angle)
		if got := p.Position(); !near(got, tt.want, 1e-4) {
			t.Errorf("angle %v: position = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestInitialPositionMatchesAngleZero(t *testing.T) {
	p := NewPlanet(PlanetParams{OrbitRadius: 20}, nil)
	if got := p.Position(); got != (mgl32.Vec3{20, 0, 0}) {
		t.Errorf("initial position = %v, want {20 0 0}", got)
	}
}

func TestOrbitCompletesAfter3600Ticks(t *testing.T) {
	p := NewPlanet(PlanetParams{Radius: 1, AtmosphereRadius: 1.05, OrbitRadius: 20, OrbitSpeed: 0.1, Zoom: 5}, nil)
	start := p.OrbitAngle()

	for i := 0; i < 3600; i++ {
		p.Update(busy())
	}

	d := math.Abs(p.OrbitAngle() - start)
	if d > 180 {
		d = 360 - d
	}
	if d > 1e-6 {
		t.Errorf("orbit angle after 3600 ticks = %v, want %v", p.OrbitAngle(), start)
	}
	if got := p.Position(); !near(got, mgl32.Vec3{20, 0, 0}, 1e-3) {
		t.Errorf("position after full orbit = %v, want {20 0 0}", got)
	}
}

func TestUserRotationSpringsBack(t *testing.T) {
	for _, start := range []float64{7.3, -7.3, 40, -40, 0.25, -0.5} {
		p := NewPlanet(PlanetParams{OrbitRadius: 20, Zoom: 5}, nil)
		p.SetRotation(start, 12)

		maxTicks := int(math.Ceil(math.Abs(start)/returnStep)) + 1
		prev := start
		ticks := 0
		for x, _ := p.Rotation(); x != 0; x, _ = p.Rotation() {
			if ticks > maxTicks {
				t.Fatalf("start %v: x rotation still %v after %d ticks", start, x, ticks)
			}
			p.Update(idleFor(ReturnDelay))
			ticks++

			x, _ = p.Rotation()
			if math.Abs(x) > math.Abs(prev) {
				t.Fatalf("start %v: |x| grew from %v to %v", start, prev, x)
			}
			if x != 0 && math.Signbit(x) != math.Signbit(start) {
				t.Fatalf("start %v: x overshot to %v", start, x)
			}
			prev = x
		}

		if _, y := p.Rotation(); y != 12 {
			t.Errorf("start %v: y rotation changed to %v", start, y)
		}
	}
}

func TestUserRotationHeldWhileActive(t *testing.T) {
	p := NewPlanet(PlanetParams{OrbitRadius: 20, Zoom: 5}, nil)
	p.SetRotation(15, 0)

	for i := 0; i < 100; i++ {
		p.Update(idleFor(ReturnDelay - time.Millisecond))
	}
	if x, _ := p.Rotation(); x != 15 {
		t.Errorf("x rotation = %v before idle threshold, want 15", x)
	}
}

func TestRenderLeavesStateUntouched(t *testing.T) {
	s := testScene()
	s.Planet.SetRotation(10, 20)
	for i := 0; i < 37; i++ {
		s.Update(busy())
	}

	before := *s.Planet
	moonBefore := *s.Planet.Moon()

	var r recorder
	s.Render(&r)
	s.Render(&r)

	if *s.Planet != before {
		t.Errorf("planet changed during render")
	}
	if *s.Planet.Moon() != moonBefore {
		t.Errorf("moon changed during render")
	}
}

func TestRenderOrderAndAlpha(t *testing.T) {
	s := testScene()
	var r recorder
	s.Render(&r)

	want := []struct {
		texture  uint32
		alpha    float32
		emissive bool
	}{
		{4, 1, true},    // sun
		{1, 1, false},   // planet
		{2, 0.5, false}, // planet atmosphere
		{3, 1, false},   // moon
		{2, 0.5, false}, // moon atmosphere
	}
	if len(r.calls) != len(want) {
		t.Fatalf("got %d draw calls, want %d", len(r.calls), len(want))
	}
	for i, w := range want {
		c := r.calls[i]
		if c.Texture != w.texture || c.Alpha != w.alpha || c.Emissive != w.emissive {
			t.Errorf("call %d = {tex %d alpha %v emissive %v}, want %+v", i, c.Texture, c.Alpha, c.Emissive, w)
		}
	}
}

func TestPlanetTransformComposition(t *testing.T) {
	p := NewPlanet(PlanetParams{Radius: 2, AtmosphereRadius: 2.5, OrbitRadius: 20, OrbitSpeed: 30, SpinSpeed: 10}, nil)
	p.Update(busy())
	p.SetRotation(25, -15)

	var r recorder
	p.Render(RenderContext{Parent: mgl32.Ident4(), Drawer: &r})
	if len(r.calls) != 2 {
		t.Fatalf("got %d draw calls, want 2", len(r.calls))
	}

	pos := p.Position()
	frame := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(25))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(-15))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(10)))

	body := frame.Mul4(mgl32.Scale3D(2, 2, 2))
	if !matNear(r.calls[0].Model, body, 1e-5) {
		t.Errorf("body model =\n%v\nwant\n%v", r.calls[0].Model, body)
	}

	shell := frame.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(15))).Mul4(mgl32.Scale3D(2.5, 2.5, 2.5))
	if !matNear(r.calls[1].Model, shell, 1e-5) {
		t.Errorf("shell model =\n%v\nwant\n%v", r.calls[1].Model, shell)
	}

	// Swapping the order of the user rotations gives a different frame.
	swapped := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(-15))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(25))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(10))).
		Mul4(mgl32.Scale3D(2, 2, 2))
	if matNear(r.calls[0].Model, swapped, 1e-5) {
		t.Errorf("body model does not depend on rotation order")
	}
}

func TestMoonIsNestedInPlanetFrame(t *testing.T) {
	moon := NewMoon(5, 0.27, 3, 2)
	p := NewPlanet(PlanetParams{Radius: 1, AtmosphereRadius: 1.05, OrbitRadius: 20}, moon)

	var r recorder
	p.Render(RenderContext{Parent: mgl32.Ident4(), Drawer: &r})
	if got := origin(r.calls[2].Model); !near(got, mgl32.Vec3{25, 0, 0}, 1e-4) {
		t.Errorf("moon at %v, want {25 0 0}", got)
	}

	// A quarter orbit of the moon, planet held still.
	for i := 0; i < 180; i++ {
		p.Update(busy())
	}
	if got := moon.OrbitAngle(); math.Abs(got-90) > 1e-9 {
		t.Fatalf("moon orbit angle = %v, want 90", got)
	}

	r.calls = nil
	p.Render(RenderContext{Parent: mgl32.Ident4(), Drawer: &r})
	if got := origin(r.calls[2].Model); !near(got, mgl32.Vec3{20, 0, -5}, 1e-4) {
		t.Errorf("moon at %v, want {20 0 -5}", got)
	}

	// Tilting the planet carries the moon with it.
	p.SetRotation(90, 0)
	r.calls = nil
	p.Render(RenderContext{Parent: mgl32.Ident4(), Drawer: &r})
	if got := origin(r.calls[2].Model); !near(got, mgl32.Vec3{20, 5, 0}, 1e-4) {
		t.Errorf("tilted moon at %v, want {20 5 0}", got)
	}
}

func TestMoonShell(t *testing.T) {
	moon := NewMoon(5, 0.27, 3, 2)
	var r recorder
	moon.Render(RenderContext{Parent: mgl32.Ident4(), Drawer: &r})

	if len(r.calls) != 2 {
		t.Fatalf("got %d draw calls, want 2", len(r.calls))
	}
	body := r.calls[0].Model.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3().Len()
	shell := r.calls[1].Model.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3().Len()
	if math.Abs(float64(body-0.27)) > 1e-5 || math.Abs(float64(shell-0.32)) > 1e-5 {
		t.Errorf("radii = %v, %v; want 0.27, 0.32", body, shell)
	}
	if r.calls[1].Alpha != 0.5 {
		t.Errorf("shell alpha = %v, want 0.5", r.calls[1].Alpha)
	}
}

func TestSunIsStationary(t *testing.T) {
	s := testScene()
	for i := 0; i < 500; i++ {
		s.Update(idleFor(time.Hour))
	}

	var r recorder
	s.Sun.Render(RenderContext{Parent: mgl32.Ident4(), Drawer: &r})
	want := mgl32.Scale3D(10, 10, 10)
	if len(r.calls) != 1 || r.calls[0].Model != want {
		t.Errorf("sun draw calls = %+v, want one at the origin with radius 10", r.calls)
	}
}

func TestCameraFollowsPlanet(t *testing.T) {
	s := testScene()
	s.Planet.SetOrbitAngle(90)
	s.Planet.SetZoom(7.5)

	eye, target := s.Eye()
	if !near(target, mgl32.Vec3{0, 0, 20}, 1e-4) {
		t.Errorf("target = %v, want {0 0 20}", target)
	}
	if !near(eye, mgl32.Vec3{0, 0, 27.5}, 1e-4) {
		t.Errorf("eye = %v, want {0 0 27.5}", eye)
	}

	// The planet's center ends up straight ahead of the camera.
	view := s.ViewMatrix()
	got := view.Mul4x1(mgl32.Vec4{0, 0, 20, 1}).Vec3()
	if !near(got, mgl32.Vec3{0, 0, -7.5}, 1e-4) {
		t.Errorf("planet in view space = %v, want {0 0 -7.5}", got)
	}
}

func TestSceneStateMachine(t *testing.T) {
	s := testScene()
	if !s.Running() || s.State() != StateRunning {
		t.Fatalf("new scene state = %v, want running", s.State())
	}
	s.Quit()
	if s.Running() || s.State() != StateQuitting {
		t.Errorf("state after quit = %v, want quitting", s.State())
	}
	s.Quit()
	if s.State().String() != "quitting" {
		t.Errorf("state after second quit = %v", s.State())
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{360.25, 0.25},
		{720, 0},
		{-90, 270},
		{-1e-15, 0},
		{-360.5, 359.5},
	}
	for _, tt := range tests {
		if got := wrapDegrees(tt.in); got != tt.want {
			t.Errorf("wrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNegativeSpeedsStayWrapped(t *testing.T) {
	p := NewPlanet(PlanetParams{Radius: 1, AtmosphereRadius: 1.05, OrbitRadius: 20, OrbitSpeed: -0.1, SpinSpeed: -0.1}, nil)
	for i := 0; i < 10000; i++ {
		p.Update(busy())
		if a := p.OrbitAngle(); a < 0 || a >= 360 {
			t.Fatalf("tick %d: orbit angle %v outside [0,360)", i, a)
		}
		if a := p.SpinAngle(); a < 0 || a >= 360 {
			t.Fatalf("tick %d: spin angle %v outside [0,360)", i, a)
		}
	}
}
