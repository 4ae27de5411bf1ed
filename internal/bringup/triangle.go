package bringup

import (
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
	"github.com/vkngwrapper/extensions/khr_surface"

	"github.com/vkngwrapper/hal-tutorial/internal/config"
	"github.com/vkngwrapper/hal-tutorial/internal/window"
)

// Triangle owns every object created while bringing up the triangle
// pipeline. Each one is pushed onto the teardown stack as soon as it exists.
type Triangle struct {
	cfg      config.Config
	compiler ShaderCompiler
	sources  ShaderSources
	teardown Teardown

	window *window.Window
	loader core.Loader

	instance       core1_0.Instance
	debugMessenger ext_debug_utils.DebugUtilsMessenger
	surface        khr_surface.Surface

	adapter Adapter
	device  core1_0.Device
	queue   core1_0.Queue

	swapchain  *Swapchain
	imageViews []core1_0.ImageView

	renderPass core1_0.RenderPass
	pipeline   *Pipeline
}

func NewTriangle(cfg config.Config, compiler ShaderCompiler, sources ShaderSources) *Triangle {
	return &Triangle{
		cfg:      cfg,
		compiler: compiler,
		sources:  sources,
	}
}

// Names under which bring-up resources are pushed onto the teardown stack.
const (
	resourceWindow         = "window"
	resourceInstance       = "instance"
	resourceDebugMessenger = "debug messenger"
	resourceSurface        = "surface"
	resourceDevice         = "device"
	resourceSwapchain      = "swapchain"
	resourceImageViews     = "image views"
	resourceRenderPass     = "render pass"
	resourcePipeline       = "graphics pipeline"
)

// bringupStep is one stage of Init. resource names what the stage pushes onto
// the teardown stack, empty when it creates nothing that needs releasing.
type bringupStep struct {
	name     string
	resource string
	fn       func() error
}

func (t *Triangle) steps() []bringupStep {
	return []bringupStep{
		{"create window", resourceWindow, t.createWindow},
		{"create instance", resourceInstance, t.createInstance},
		{"create debug messenger", resourceDebugMessenger, t.createDebugMessenger},
		{"create surface", resourceSurface, t.createSurface},
		{"select adapter", "", t.selectAdapter},
		{"open device", resourceDevice, t.openDevice},
		{"create swapchain", resourceSwapchain, t.createSwapchain},
		{"create image views", resourceImageViews, t.createImageViews},
		{"create render pass", resourceRenderPass, t.createRenderPass},
		{"create graphics pipeline", resourcePipeline, t.createGraphicsPipeline},
	}
}

// runSteps runs steps in order. On the first failure it releases everything
// already pushed onto teardown and returns the error.
func runSteps(steps []bringupStep, teardown *Teardown) error {
	for _, step := range steps {
		if err := Step(step.name, step.fn); err != nil {
			teardown.Release()
			return err
		}
	}
	return nil
}

// Init runs the bring-up sequence in order. The first failure stops it, and
// everything created up to that point is released before the error returns.
func (t *Triangle) Init() error {
	if err := runSteps(t.steps(), &t.teardown); err != nil {
		return err
	}

	log.Info("triangle pipeline ready")
	return nil
}

// Run pumps window events until the user closes the window.
func (t *Triangle) Run() {
	window.Run(window.Polling{})
}

// Close destroys everything Init created, newest first.
func (t *Triangle) Close() {
	t.teardown.Release()
}

func (t *Triangle) createWindow() error {
	w, err := window.New(t.cfg.WindowTitle, t.cfg.Width, t.cfg.Height, sdl.WINDOW_VULKAN)
	if err != nil {
		return err
	}
	t.window = w
	t.teardown.Push(resourceWindow, w.Destroy)

	t.loader, err = CreateLoader()
	return err
}

func (t *Triangle) createInstance() error {
	instance, err := CreateInstance(t.loader, t.window.Window, t.cfg.WindowTitle, t.cfg.Validation)
	if err != nil {
		return err
	}
	t.instance = instance
	t.teardown.Push(resourceInstance, func() { instance.Destroy(nil) })
	return nil
}

func (t *Triangle) createDebugMessenger() error {
	if !t.cfg.Validation {
		return nil
	}

	messenger, err := CreateDebugMessenger(t.instance)
	if err != nil {
		return err
	}
	t.debugMessenger = messenger
	t.teardown.Push(resourceDebugMessenger, func() { messenger.Destroy(nil) })
	return nil
}

func (t *Triangle) createSurface() error {
	surface, err := CreateSurface(t.instance, t.window.Window)
	if err != nil {
		return err
	}
	t.surface = surface
	t.teardown.Push(resourceSurface, func() { surface.Destroy(nil) })
	return nil
}

func (t *Triangle) selectAdapter() error {
	physicalDevices, _, err := t.instance.EnumeratePhysicalDevices()
	if err != nil {
		return err
	}

	t.adapter, err = SelectAdapter(physicalDevices, t.surface)
	return err
}

func (t *Triangle) openDevice() error {
	device, queue, err := OpenDevice(t.adapter)
	if err != nil {
		return err
	}
	t.device = device
	t.queue = queue
	t.teardown.Push(resourceDevice, func() { device.Destroy(nil) })
	return nil
}

func (t *Triangle) createSwapchain() error {
	swapchain, err := NegotiateSwapchain(t.device, t.adapter, t.surface)
	if err != nil {
		return err
	}
	t.swapchain = swapchain
	t.teardown.Push(resourceSwapchain, func() { swapchain.Swapchain.Destroy(nil) })
	return nil
}

func (t *Triangle) createImageViews() error {
	imageViews, err := CreateImageViews(t.device, t.swapchain.Images, t.swapchain.Format)
	if err != nil {
		return err
	}
	t.imageViews = imageViews
	t.teardown.Push(resourceImageViews, func() {
		for _, imageView := range imageViews {
			imageView.Destroy(nil)
		}
	})
	return nil
}

func (t *Triangle) createRenderPass() error {
	renderPass, err := CreateRenderPass(t.device, t.swapchain.Format)
	if err != nil {
		return err
	}
	t.renderPass = renderPass
	t.teardown.Push(resourceRenderPass, func() { renderPass.Destroy(nil) })
	return nil
}

func (t *Triangle) createGraphicsPipeline() error {
	pipeline, err := CreateGraphicsPipeline(t.device, t.compiler, t.sources, t.swapchain.Extent, t.renderPass)
	if err != nil {
		return err
	}
	t.pipeline = pipeline
	t.teardown.Push(resourcePipeline, pipeline.Destroy)
	return nil
}
