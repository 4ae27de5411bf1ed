package bringup

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
	"github.com/vkngwrapper/extensions/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2"
)

var validationLayers = []string{"VK_LAYER_KHRONOS_validation"}

// CreateLoader binds a Vulkan loader to the procedure address SDL resolved.
func CreateLoader() (core.Loader, error) {
	return core.CreateLoaderFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
}

// CreateInstance creates the instance with every extension the window needs.
// With validation on, the Khronos layer is enabled and its messages are
// logged while the instance is being created.
func CreateInstance(loader core.Loader, window *sdl.Window, appName string, validation bool) (core1_0.Instance, error) {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    appName,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         "No Engine",
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_2,
	}

	extensions, _, err := loader.AvailableExtensions()
	if err != nil {
		return nil, err
	}

	for _, ext := range window.VulkanGetInstanceExtensions() {
		if _, hasExt := extensions[ext]; !hasExt {
			return nil, errors.Newf("missing instance extension %s required by sdl", ext)
		}
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext)
	}

	if _, enumerationSupported := extensions[khr_portability_enumeration.ExtensionName]; enumerationSupported {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if validation {
		layers, _, err := loader.AvailableLayers()
		if err != nil {
			return nil, err
		}

		for _, layer := range validationLayers {
			if _, hasValidation := layers[layer]; !hasValidation {
				return nil, errors.Newf("validation layer %s not available- install LunarG Vulkan SDK", layer)
			}
			instanceOptions.EnabledLayerNames = append(instanceOptions.EnabledLayerNames, layer)
		}

		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext_debug_utils.ExtensionName)
		instanceOptions.Next = debugMessengerOptions()
	}

	instance, _, err := loader.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, err
	}

	return instance, nil
}

func debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    logDebug,
	}
}

// CreateDebugMessenger attaches the validation logger to a live instance.
func CreateDebugMessenger(instance core1_0.Instance) (ext_debug_utils.DebugUtilsMessenger, error) {
	debugExtension := ext_debug_utils.CreateExtensionFromInstance(instance)
	messenger, _, err := debugExtension.CreateDebugUtilsMessenger(instance, nil, debugMessengerOptions())
	if err != nil {
		return nil, err
	}
	return messenger, nil
}

func logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	entry := log.WithFields(log.Fields{
		"severity": severity.String(),
		"type":     msgType.String(),
	})

	if severity&ext_debug_utils.SeverityError != 0 {
		entry.Error(data.Message)
	} else {
		entry.Warn(data.Message)
	}
	return false
}

// CreateSurface creates the presentation surface bound to the window.
func CreateSurface(instance core1_0.Instance, window *sdl.Window) (khr_surface.Surface, error) {
	surfaceExtension := vkng_sdl2.CreateExtensionFromInstance(instance)
	surface, _, err := surfaceExtension.CreateSurface(instance, window)
	if err != nil {
		return nil, err
	}
	return surface, nil
}
