package main

import (
	"embed"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/vkngwrapper/hal-tutorial/internal/bringup"
	"github.com/vkngwrapper/hal-tutorial/internal/config"
)

//go:embed shaders
var shaders embed.FS

const windowName = "Hello Triangle"

func init() {
	runtime.LockOSThread()
}

func loadSources() (bringup.ShaderSources, error) {
	var sources bringup.ShaderSources

	vert, err := shaders.ReadFile("shaders/hello_triangle.vert")
	if err != nil {
		return sources, err
	}

	frag, err := shaders.ReadFile("shaders/hello_triangle.frag")
	if err != nil {
		return sources, err
	}

	sources.Vertex = bringup.ShaderSource{Name: "hello_triangle.vert", Text: string(vert)}
	sources.Fragment = bringup.ShaderSource{Name: "hello_triangle.frag", Text: string(frag)}
	return sources, nil
}

func main() {
	cfg, err := config.Load(config.Defaults(windowName, 800, 600))
	if err != nil {
		log.Fatalf("%+v", err)
	}
	cfg.ConfigureLogging()

	sources, err := loadSources()
	if err != nil {
		log.Fatalf("%+v", err)
	}

	app := bringup.NewTriangle(cfg, bringup.GLSLC{Path: cfg.ShaderCompiler}, sources)
	if err := app.Init(); err != nil {
		log.Fatalf("%+v", err)
	}
	defer app.Close()

	app.Run()
}
