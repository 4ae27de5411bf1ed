package main

import (
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/vkngwrapper/hal-tutorial/internal/config"
	"github.com/vkngwrapper/hal-tutorial/internal/window"
)

func init() {
	runtime.LockOSThread()
}

const windowName = "Learn gfx-hal: Opening A Window"

// HalState will hold the graphics objects once device initialization exists.
type HalState struct{}

func (s *HalState) cleanup() {}

type WindowApp struct {
	cfg      config.Config
	window   *window.Window
	halState *HalState
}

func (app *WindowApp) Run() error {
	err := app.initWindow()
	if err != nil {
		return err
	}
	defer app.window.Destroy()

	app.initHal()
	app.mainLoop()
	app.cleanup()

	return nil
}

func (app *WindowApp) initWindow() error {
	w, err := window.New(app.cfg.WindowTitle, app.cfg.Width, app.cfg.Height, 0)
	if err != nil {
		return err
	}
	app.window = w
	return nil
}

func (app *WindowApp) initHal() {
	app.halState = &HalState{}
}

func (app *WindowApp) mainLoop() {
	window.Run(window.Waiting{})
}

func (app *WindowApp) cleanup() {
	app.halState.cleanup()
}

func main() {
	cfg, err := config.Load(config.Defaults(windowName, 1024, 768))
	if err != nil {
		log.Fatalf("%+v", err)
	}
	cfg.ConfigureLogging()

	app := &WindowApp{cfg: cfg}
	if err := app.Run(); err != nil {
		log.Fatalf("%+v", err)
	}
}
