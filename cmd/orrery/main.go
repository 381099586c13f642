package main

import (
	"fmt"
	"log"
	"runtime"

	"orrery/internal/config"
	"orrery/internal/game"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("orrery: %v", err)
	}
}

// run owns the platform resources. Deferred releases run in reverse order of
// acquisition: GPU objects, then the window and its context, then GLFW.
func run() error {
	settings, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}
	config.Set(settings)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow()
	if err != nil {
		return err
	}
	defer window.Destroy()

	app, err := game.NewApp(window)
	if err != nil {
		return err
	}
	defer app.Dispose()

	app.Run()
	return nil
}
