package game

import (
	"fmt"
	"log"
	"time"

	"orrery/internal/config"
	"orrery/internal/graphics"
	"orrery/internal/graphics/renderer"
	"orrery/internal/input"
	"orrery/internal/profiling"
	"orrery/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// slowFrame is the processing budget per frame, swap excluded.
const slowFrame = 16 * time.Millisecond

type App struct {
	window *glfw.Window
	frame

	textures *graphics.TextureCache
	renderer *renderer.Renderer

	fpsLimiter       *FPSLimiter
	frames           int
	lastFPSCheckTime time.Time
}

// NewApp loads the textures, builds the renderer and the scene and hooks the
// window's input callbacks. On error everything acquired so far is released.
func NewApp(window *glfw.Window) (*App, error) {
	settings := config.Get()

	textures := graphics.NewTextureCache()
	tex, err := loadTextures(textures, settings.Assets)
	if err != nil {
		textures.Dispose()
		return nil, err
	}
	log.Printf("Loaded %d textures", textures.Len())

	fbWidth, fbHeight := window.GetFramebufferSize()
	camera := graphics.NewCamera(fbWidth, fbHeight, settings.Window.FOV, settings.Window.Near, settings.Window.Far)
	r, err := renderer.NewRenderer(camera)
	if err != nil {
		textures.Dispose()
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	r.UpdateViewport(fbWidth, fbHeight)

	a := &App{
		window: window,
		frame: frame{
			events:  input.NewQueue(),
			handler: input.NewHandler(time.Now),
			scene:   scene.New(settings.Scene, tex),
			render:  r.Render,
		},
		textures:         textures,
		renderer:         r,
		lastFPSCheckTime: time.Now(),
	}
	if !settings.Window.VSync {
		a.fpsLimiter = NewFPSLimiter(settings.Window.FPSLimit)
	}

	attachInput(window, a.events)
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
	})

	return a, nil
}

func loadTextures(cache *graphics.TextureCache, assets config.AssetSettings) (scene.Textures, error) {
	var tex scene.Textures
	for _, t := range []struct {
		path string
		dst  *uint32
	}{
		{assets.PlanetTexture, &tex.Planet},
		{assets.PlanetAtmosphereTexture, &tex.PlanetAtmosphere},
		{assets.MoonTexture, &tex.Moon},
		{assets.MoonAtmosphereTexture, &tex.MoonAtmosphere},
		{assets.SunTexture, &tex.Sun},
	} {
		id, err := cache.Get(t.path)
		if err != nil {
			return scene.Textures{}, fmt.Errorf("load texture %s: %w", t.path, err)
		}
		*t.dst = id
	}
	return tex, nil
}

// Run produces frames until the scene is quitting.
func (a *App) Run() {
	for a.scene.Running() {
		a.tick()
	}
	log.Printf("scene %v, shutting down", a.scene.State())
}

func (a *App) tick() {
	profiling.ResetFrame()
	start := time.Now()

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	if !a.step(time.Now(), a.window.ShouldClose()) {
		return
	}

	if d := time.Since(start); d > slowFrame {
		log.Printf("Slow frame: %v (%s). Top tasks: %s", d,
			profiling.Breakdown("glfw.", "input.", "scene.", "renderer."), profiling.TopN(5))
	}

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	a.frames++
	if time.Since(a.lastFPSCheckTime) >= time.Second {
		log.Printf("FPS: %d", a.frames)
		a.frames = 0
		a.lastFPSCheckTime = time.Now()
	}

	if a.fpsLimiter != nil {
		a.fpsLimiter.Wait()
	}
}

// Dispose releases GPU resources, newest first. The window and GLFW itself
// belong to the caller.
func (a *App) Dispose() {
	a.renderer.Dispose()
	a.textures.Dispose()
}
