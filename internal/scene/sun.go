package scene

// Sun sits at the world origin and is the light source.
type Sun struct {
	radius  float32
	texture uint32
}

func NewSun(radius float32, texture uint32) *Sun {
	return &Sun{radius: radius, texture: texture}
}

// Update is a no-op; the sun never moves.
func (s *Sun) Update(UpdateContext) {}

// Render draws the sun unlit since the light is at its center.
func (s *Sun) Render(ctx RenderContext) {
	ctx.Drawer.Draw(DrawCall{
		Model:    ctx.Parent.Mul4(scale(s.radius)),
		Texture:  s.texture,
		Alpha:    1.0,
		Emissive: true,
	})
}
