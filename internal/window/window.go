// Package window opens an SDL window and pumps its events until the user asks
// to close it.
package window

import (
	"runtime"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

type Window struct {
	*sdl.Window
}

// New initializes SDL video and opens a window. The window is created with
// sdl.WINDOW_SHOWN plus any extra flags, e.g. sdl.WINDOW_VULKAN.
func New(title string, width, height int, flags uint32) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "could not initialize sdl video")
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(width), int32(height), sdl.WINDOW_SHOWN|flags)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "could not create a window")
	}

	log.WithFields(log.Fields{"title": title, "width": width, "height": height}).Debug("window created")
	return &Window{Window: window}, nil
}

// Destroy closes the window and shuts SDL down.
func (w *Window) Destroy() {
	if w.Window != nil {
		w.Window.Destroy()
		w.Window = nil
	}
	sdl.Quit()
}

// EventSource yields window-system events. Next may return nil when nothing
// is pending.
type EventSource interface {
	Next() sdl.Event
}

// Waiting blocks until the window system delivers an event.
type Waiting struct{}

func (Waiting) Next() sdl.Event {
	return sdl.WaitEvent()
}

// Polling drains pending events without blocking. Once the queue is empty it
// yields the processor before reporting nil.
type Polling struct{}

func (Polling) Next() sdl.Event {
	event := sdl.PollEvent()
	if event == nil {
		runtime.Gosched()
	}
	return event
}

// IsCloseRequest reports whether the event asks the application to exit.
func IsCloseRequest(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return true
	case *sdl.WindowEvent:
		return e.Event == sdl.WINDOWEVENT_CLOSE
	}
	return false
}

// Run consumes events from src until a close request arrives. All other
// events are discarded.
func Run(src EventSource) {
	for {
		event := src.Next()
		if event == nil {
			continue
		}

		if IsCloseRequest(event) {
			log.Debug("close requested")
			return
		}
	}
}
