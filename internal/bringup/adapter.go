package bringup

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_portability_subset"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

var deviceExtensions = []string{khr_swapchain.ExtensionName}

// ErrNoSuitableAdapter is returned when no physical device has a queue family
// that can both render and present to the surface.
var ErrNoSuitableAdapter = errors.New("couldn't find a graphical adapter")

// QueueFamily is the part of a queue family's properties that adapter
// selection looks at.
type QueueFamily struct {
	Graphics   bool
	QueueCount int
}

// Adapter is a physical device paired with the queue family chosen on it.
type Adapter struct {
	PhysicalDevice core1_0.PhysicalDevice
	QueueFamily    int
}

// firstQueueFamily returns the index of the first family that supports
// graphics, exposes at least one queue and can present.
func firstQueueFamily(families []QueueFamily, supportsPresent func(index int) (bool, error)) (int, bool, error) {
	for index, family := range families {
		if !family.Graphics || family.QueueCount <= 0 {
			continue
		}

		present, err := supportsPresent(index)
		if err != nil {
			return 0, false, err
		}

		if present {
			return index, true, nil
		}
	}

	return 0, false, nil
}

func queueFamilies(device core1_0.PhysicalDevice) []QueueFamily {
	var families []QueueFamily
	for _, properties := range device.QueueFamilyProperties() {
		families = append(families, QueueFamily{
			Graphics:   (properties.QueueFlags & core1_0.QueueGraphics) != 0,
			QueueCount: properties.QueueCount,
		})
	}
	return families
}

func hasDeviceExtensions(device core1_0.PhysicalDevice) (bool, error) {
	extensions, _, err := device.EnumerateDeviceExtensionProperties()
	if err != nil {
		return false, err
	}

	for _, extension := range deviceExtensions {
		if _, hasExtension := extensions[extension]; !hasExtension {
			return false, nil
		}
	}

	return true, nil
}

// SelectAdapter picks the first physical device that has a queue family able
// to render and present to surface.
func SelectAdapter(devices []core1_0.PhysicalDevice, surface khr_surface.Surface) (Adapter, error) {
	for deviceIndex, device := range devices {
		supported, err := hasDeviceExtensions(device)
		if err != nil {
			return Adapter{}, err
		}
		if !supported {
			continue
		}

		index, found, err := firstQueueFamily(queueFamilies(device), func(index int) (bool, error) {
			present, _, err := surface.PhysicalDeviceSurfaceSupport(device, index)
			return present, err
		})
		if err != nil {
			return Adapter{}, err
		}

		if found {
			log.WithFields(log.Fields{
				"device":      deviceIndex,
				"queueFamily": index,
			}).Info("selected adapter")
			return Adapter{PhysicalDevice: device, QueueFamily: index}, nil
		}
	}

	return Adapter{}, ErrNoSuitableAdapter
}

// OpenDevice opens a logical device with a single queue on the adapter's
// chosen family.
func OpenDevice(adapter Adapter) (core1_0.Device, core1_0.Queue, error) {
	extensionNames := append([]string{}, deviceExtensions...)

	// Makes this example compatible with vulkan portability, necessary to run on mobile & mac
	extensions, _, err := adapter.PhysicalDevice.EnumerateDeviceExtensionProperties()
	if err != nil {
		return nil, nil, err
	}

	if _, supported := extensions[khr_portability_subset.ExtensionName]; supported {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	device, _, err := adapter.PhysicalDevice.CreateDevice(nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: []core1_0.DeviceQueueCreateInfo{
			{
				QueueFamilyIndex: adapter.QueueFamily,
				QueuePriorities:  []float32{1.0},
			},
		},
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return nil, nil, err
	}

	return device, device.GetQueue(adapter.QueueFamily, 0), nil
}
