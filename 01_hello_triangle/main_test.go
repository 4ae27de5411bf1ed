package main

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/vkngwrapper/hal-tutorial/internal/bringup"
)

func TestEmbeddedShadersLoad(t *testing.T) {
	sources, err := loadSources()
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	for _, source := range []bringup.ShaderSource{sources.Vertex, sources.Fragment} {
		if !strings.HasPrefix(source.Text, "#version 450") {
			t.Errorf("%s does not look like GLSL", source.Name)
		}
	}
}

func TestEmbeddedShadersCompile(t *testing.T) {
	path, err := exec.LookPath("glslc")
	if err != nil {
		t.Skip("glslc not found on PATH")
	}

	sources, err := loadSources()
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	compiler := bringup.GLSLC{Path: path}
	if _, err := compiler.Compile(bringup.VertexStage, sources.Vertex.Name, sources.Vertex.Text); err != nil {
		t.Errorf("vertex shader: %+v", err)
	}
	if _, err := compiler.Compile(bringup.FragmentStage, sources.Fragment.Name, sources.Fragment.Text); err != nil {
		t.Errorf("fragment shader: %+v", err)
	}
}
