package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the optional settings file is looked up, relative to the
// working directory.
const DefaultPath = "orrery.yaml"

// Settings holds everything that can be tuned without recompiling.
type Settings struct {
	Window WindowSettings `yaml:"window"`
	Scene  SceneSettings  `yaml:"scene"`
	Assets AssetSettings  `yaml:"assets"`
}

// WindowSettings describes the presentation surface and projection.
type WindowSettings struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Title  string  `yaml:"title"`
	FOV    float32 `yaml:"fov"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
	VSync  bool    `yaml:"vsync"`

	// FPSLimit paces the loop when VSync is off. Zero means unlimited.
	FPSLimit int `yaml:"fps_limit"`
}

// SceneSettings holds body sizes and motion rates. Angles are degrees, speeds are
// degrees per frame.
type SceneSettings struct {
	SunRadius        float32 `yaml:"sun_radius"`
	PlanetRadius     float32 `yaml:"planet_radius"`
	AtmosphereRadius float32 `yaml:"atmosphere_radius"`
	OrbitRadius      float64 `yaml:"orbit_radius"`
	OrbitSpeed       float64 `yaml:"orbit_speed"`
	SpinSpeed        float64 `yaml:"spin_speed"`
	Zoom             float64 `yaml:"zoom"`
	MoonDistance     float32 `yaml:"moon_distance"`
	MoonSize         float32 `yaml:"moon_size"`
}

// AssetSettings lists the texture files.
type AssetSettings struct {
	PlanetTexture           string `yaml:"planet_texture"`
	PlanetAtmosphereTexture string `yaml:"planet_atmosphere_texture"`
	MoonTexture             string `yaml:"moon_texture"`
	MoonAtmosphereTexture   string `yaml:"moon_atmosphere_texture"`
	SunTexture              string `yaml:"sun_texture"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:    1915,
			Height:   1030,
			Title:    "3D Planet and Moon with Atmospheres",
			FOV:      45.0,
			Near:     1.0,
			Far:      1000.0,
			VSync:    true,
			FPSLimit: 60,
		},
		Scene: SceneSettings{
			SunRadius:        10.0,
			PlanetRadius:     1.0,
			AtmosphereRadius: 1.05,
			OrbitRadius:      20.0,
			OrbitSpeed:       0.1,
			SpinSpeed:        0.1,
			Zoom:             5.0,
			MoonDistance:     5.0,
			MoonSize:         0.27,
		},
		Assets: AssetSettings{
			PlanetTexture:           "assets/textures/map2.png",
			PlanetAtmosphereTexture: "assets/textures/clouds.png",
			MoonTexture:             "assets/textures/moon.jpg",
			MoonAtmosphereTexture:   "assets/textures/clouds.png",
			SunTexture:              "assets/textures/map2.png",
		},
	}
}

// Load reads settings from path on top of Default. A missing file yields the
// defaults; an unreadable or malformed one is an error.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects values the renderer or the scene cannot work with.
func (s Settings) Validate() error {
	w := s.Window
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", w.Width, w.Height)
	}
	if w.FOV <= 0 || w.FOV >= 180 {
		return fmt.Errorf("fov %v out of range (0, 180)", w.FOV)
	}
	if w.Near <= 0 || w.Far <= w.Near {
		return fmt.Errorf("clip planes near=%v far=%v invalid", w.Near, w.Far)
	}
	if w.FPSLimit < 0 {
		return fmt.Errorf("fps_limit %d must not be negative", w.FPSLimit)
	}

	sc := s.Scene
	if sc.SunRadius <= 0 || sc.PlanetRadius <= 0 || sc.MoonSize <= 0 {
		return errors.New("body radii must be positive")
	}
	if sc.AtmosphereRadius < sc.PlanetRadius {
		return fmt.Errorf("atmosphere radius %v smaller than planet radius %v", sc.AtmosphereRadius, sc.PlanetRadius)
	}
	if sc.Zoom < MinZoom || sc.Zoom > MaxZoom {
		return fmt.Errorf("zoom %v outside [%v, %v]", sc.Zoom, MinZoom, MaxZoom)
	}

	a := s.Assets
	for name, p := range map[string]string{
		"planet_texture":            a.PlanetTexture,
		"planet_atmosphere_texture": a.PlanetAtmosphereTexture,
		"moon_texture":              a.MoonTexture,
		"moon_atmosphere_texture":   a.MoonAtmosphereTexture,
		"sun_texture":               a.SunTexture,
	} {
		if p == "" {
			return fmt.Errorf("%s is empty", name)
		}
	}
	return nil
}

// Zoom limits shared by the input handler and settings validation.
const (
	MinZoom = 2.1
	MaxZoom = 20.0
)

// current holds the settings the running program was started with.
type current struct {
	mu       sync.RWMutex
	settings Settings
}

var global = &current{settings: Default()}

// Get returns the active settings.
func Get() Settings {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.settings
}

// Set replaces the active settings.
func Set(s Settings) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.settings = s
}
