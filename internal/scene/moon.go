package scene

// moonOrbitStep is how far the moon travels around its planet per tick, in degrees.
const moonOrbitStep = 0.5

// atmosphereGap is how much larger the moon's shell is than the moon itself.
const atmosphereGap = 0.05

// Moon orbits its planet. It is positioned in the planet's frame, so it inherits
// the planet's orbit, drag rotation and spin.
type Moon struct {
	distance          float32
	size              float32
	orbitAngle        float64
	texture           uint32
	atmosphereTexture uint32
}

// NewMoon creates a moon at distance from its planet's center.
func NewMoon(distance, size float32, texture, atmosphereTexture uint32) *Moon {
	return &Moon{
		distance:          distance,
		size:              size,
		texture:           texture,
		atmosphereTexture: atmosphereTexture,
	}
}

// OrbitAngle returns the moon's angle around the planet in degrees.
func (m *Moon) OrbitAngle() float64 { return m.orbitAngle }

// Update advances the orbit by one tick.
func (m *Moon) Update(UpdateContext) {
	m.orbitAngle = wrapDegrees(m.orbitAngle + moonOrbitStep)
}

// Render draws the moon and its shell relative to ctx.Parent.
func (m *Moon) Render(ctx RenderContext) {
	model := ctx.Parent.
		Mul4(rotY(m.orbitAngle)).
		Mul4(translate(m.distance, 0, 0))

	ctx.Drawer.Draw(DrawCall{
		Model:   model.Mul4(scale(m.size)),
		Texture: m.texture,
		Alpha:   1.0,
	})

	// The shell turns at half the orbit rate.
	shell := model.Mul4(rotY(m.orbitAngle * 0.5))
	ctx.Drawer.Draw(DrawCall{
		Model:   shell.Mul4(scale(m.size + atmosphereGap)),
		Texture: m.atmosphereTexture,
		Alpha:   atmosphereAlpha,
	})
}
