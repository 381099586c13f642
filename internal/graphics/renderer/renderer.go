package renderer

import (
	"orrery/internal/graphics"
	"orrery/internal/profiling"
	"orrery/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	sphereSlices = 40
	sphereStacks = 40

	// ambient keeps the night side of a body faintly visible.
	ambient = 0.15
)

// Renderer draws scene draw calls as textured spheres. It implements
// scene.Drawer.
type Renderer struct {
	shader *graphics.Shader
	sphere *graphics.Mesh
	camera *graphics.Camera
}

// NewRenderer compiles the sphere shader, uploads the sphere mesh and sets the
// fixed pipeline state.
func NewRenderer(camera *graphics.Camera) (*Renderer, error) {
	shader, err := graphics.NewShader(vertexShader, fragmentShader)
	if err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	shader.Use()
	shader.SetInt("tex", 0)
	shader.SetFloat("ambient", ambient)

	return &Renderer{
		shader: shader,
		sphere: graphics.NewSphereMesh(sphereSlices, sphereStacks),
		camera: camera,
	}, nil
}

// Begin clears the frame and loads the camera and light for the draws that
// follow.
func (r *Renderer) Begin(view mgl32.Mat4, light mgl32.Vec3) {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.shader.Use()
	r.shader.SetMat4("view", view)
	r.shader.SetMat4("proj", r.camera.ProjectionMatrix())
	r.shader.SetVec3("lightPos", light)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Draw renders one sphere.
func (r *Renderer) Draw(call scene.DrawCall) {
	r.shader.SetMat4("model", call.Model)
	r.shader.SetFloat("alpha", call.Alpha)
	r.shader.SetBool("emissive", call.Emissive)
	gl.BindTexture(gl.TEXTURE_2D, call.Texture)
	r.sphere.Draw()
}

// Render draws the whole scene for the current frame.
func (r *Renderer) Render(s *scene.Scene) {
	defer profiling.Track("renderer.Render")()
	r.Begin(s.ViewMatrix(), s.LightPosition())
	s.Render(r)
}

// Dispose releases GPU resources in reverse order of creation.
func (r *Renderer) Dispose() {
	r.sphere.Dispose()
	r.shader.Dispose()
}

// UpdateViewport updates the GL viewport and the camera's aspect ratio
func (r *Renderer) UpdateViewport(fbWidth, fbHeight int) {
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	r.camera.SetViewport(fbWidth, fbHeight)
}
