package bringup

import (
	"reflect"
	"testing"
)

func TestTeardownReleasesNewestFirst(t *testing.T) {
	var destroyed []string
	record := func(name string) func() {
		return func() { destroyed = append(destroyed, name) }
	}

	var teardown Teardown
	for _, name := range []string{"window", "instance", "surface", "device", "swapchain", "image views", "render pass", "graphics pipeline"} {
		teardown.Push(name, record(name))
	}

	teardown.Release()

	want := []string{"graphics pipeline", "render pass", "image views", "swapchain", "device", "surface", "instance", "window"}
	if !reflect.DeepEqual(destroyed, want) {
		t.Errorf("destroyed %v, want %v", destroyed, want)
	}
}

func TestTeardownViewsBeforeSwapchainBeforeDevice(t *testing.T) {
	var destroyed []string
	var teardown Teardown
	teardown.Push("device", func() { destroyed = append(destroyed, "device") })
	teardown.Push("swapchain", func() { destroyed = append(destroyed, "swapchain") })
	teardown.Push("image views", func() {
		for _, view := range []string{"view 0", "view 1", "view 2"} {
			destroyed = append(destroyed, view)
		}
	})

	teardown.Release()

	position := map[string]int{}
	for i, name := range destroyed {
		position[name] = i
	}
	for _, view := range []string{"view 0", "view 1", "view 2"} {
		if position[view] > position["swapchain"] {
			t.Errorf("%s destroyed after swapchain: %v", view, destroyed)
		}
	}
	if position["swapchain"] > position["device"] {
		t.Errorf("swapchain destroyed after device: %v", destroyed)
	}
}

func TestTeardownReleaseIsIdempotent(t *testing.T) {
	calls := 0
	var teardown Teardown
	teardown.Push("instance", func() { calls++ })

	teardown.Release()
	teardown.Release()

	if calls != 1 {
		t.Errorf("release ran %d times, want 1", calls)
	}
	if teardown.Len() != 0 {
		t.Errorf("expected no pending releases, got %d", teardown.Len())
	}
}
