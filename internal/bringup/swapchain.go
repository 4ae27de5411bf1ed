package bringup

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

// FallbackSurfaceFormat is used when the surface reports no preference.
var FallbackSurfaceFormat = khr_surface.SurfaceFormat{
	Format:     core1_0.FormatR8G8B8A8SRGB,
	ColorSpace: khr_surface.ColorSpaceSRGBNonlinear,
}

// Every uncompressed format with sRGB-encoded color channels.
var srgbFormats = map[core1_0.Format]bool{
	core1_0.FormatR8SRGB:             true,
	core1_0.FormatR8G8SRGB:           true,
	core1_0.FormatR8G8B8SRGB:         true,
	core1_0.FormatB8G8R8SRGB:         true,
	core1_0.FormatR8G8B8A8SRGB:       true,
	core1_0.FormatB8G8R8A8SRGB:       true,
	core1_0.FormatA8B8G8R8SRGBPacked: true,
}

// IsSRGB reports whether the format stores sRGB-encoded color.
func IsSRGB(format core1_0.Format) bool {
	return srgbFormats[format]
}

type SwapChainSupportDetails struct {
	Capabilities *khr_surface.SurfaceCapabilities
	Formats      []khr_surface.SurfaceFormat
	PresentModes []khr_surface.PresentMode
}

// Swapchain is the negotiated swapchain with its images. The images belong to
// the swapchain and must not be destroyed individually.
type Swapchain struct {
	Swapchain khr_swapchain.Swapchain
	Images    []core1_0.Image
	Format    core1_0.Format
	Extent    core1_0.Extent2D
}

// ChooseSurfaceFormat prefers the first sRGB format on offer and otherwise
// takes whatever the surface lists first.
func ChooseSurfaceFormat(availableFormats []khr_surface.SurfaceFormat) khr_surface.SurfaceFormat {
	if len(availableFormats) == 0 {
		return FallbackSurfaceFormat
	}

	for _, format := range availableFormats {
		if IsSRGB(format.Format) {
			return format
		}
	}

	return availableFormats[0]
}

// ChooseExtent always takes the largest extent the surface allows.
func ChooseExtent(capabilities *khr_surface.SurfaceCapabilities) core1_0.Extent2D {
	return capabilities.MaxImageExtent
}

// ChooseImageCount asks for one image more than the minimum, bounded by the
// maximum when the surface has one.
func ChooseImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

func QuerySwapChainSupport(device core1_0.PhysicalDevice, surface khr_surface.Surface) (SwapChainSupportDetails, error) {
	var details SwapChainSupportDetails
	var err error

	details.Capabilities, _, err = surface.PhysicalDeviceSurfaceCapabilities(device)
	if err != nil {
		return details, err
	}

	details.Formats, _, err = surface.PhysicalDeviceSurfaceFormats(device)
	if err != nil {
		return details, err
	}

	details.PresentModes, _, err = surface.PhysicalDeviceSurfacePresentModes(device)
	return details, err
}

// NegotiateSwapchain creates a swapchain compatible with the surface and
// fetches its images.
func NegotiateSwapchain(device core1_0.Device, adapter Adapter, surface khr_surface.Surface) (*Swapchain, error) {
	support, err := QuerySwapChainSupport(adapter.PhysicalDevice, surface)
	if err != nil {
		return nil, err
	}

	surfaceFormat := ChooseSurfaceFormat(support.Formats)
	extent := ChooseExtent(support.Capabilities)

	swapchainExtension := khr_swapchain.CreateExtensionFromDevice(device)
	swapchain, _, err := swapchainExtension.CreateSwapchain(device, nil, khr_swapchain.SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    ChooseImageCount(support.Capabilities),
		ImageFormat:      surfaceFormat.Format,
		ImageColorSpace:  surfaceFormat.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode: core1_0.SharingModeExclusive,

		PreTransform:   support.Capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    khr_surface.PresentModeFIFO,
		Clipped:        true,
	})
	if err != nil {
		return nil, err
	}

	images, _, err := swapchain.SwapchainImages()
	if err != nil {
		swapchain.Destroy(nil)
		return nil, errors.Wrap(err, "couldn't fetch swapchain images")
	}

	log.WithFields(log.Fields{
		"format": surfaceFormat.Format,
		"width":  extent.Width,
		"height": extent.Height,
		"images": len(images),
	}).Info("swapchain negotiated")

	return &Swapchain{
		Swapchain: swapchain,
		Images:    images,
		Format:    surfaceFormat.Format,
		Extent:    extent,
	}, nil
}

// CreateImageViews wraps each swapchain image in a 2D color view with the
// identity swizzle. On failure the views created so far are destroyed before
// returning.
func CreateImageViews(device core1_0.Device, images []core1_0.Image, format core1_0.Format) ([]core1_0.ImageView, error) {
	var imageViews []core1_0.ImageView
	for i, image := range images {
		view, _, err := device.CreateImageView(nil, core1_0.ImageViewCreateInfo{
			ViewType: core1_0.ImageViewType2D,
			Image:    image,
			Format:   format,
			SubresourceRange: core1_0.ImageSubresourceRange{
				AspectMask:     core1_0.ImageAspectColor,
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		})
		if err != nil {
			for _, created := range imageViews {
				created.Destroy(nil)
			}
			return nil, errors.Wrapf(err, "couldn't create the image view for image %d", i)
		}

		imageViews = append(imageViews, view)
	}

	return imageViews, nil
}
