package bringup

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
)

const spirvMagic = 0x07230203

type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

func (s ShaderStage) glslcName() string {
	switch s {
	case VertexStage:
		return "vert"
	case FragmentStage:
		return "frag"
	}
	return ""
}

func (s ShaderStage) flags() core1_0.ShaderStageFlags {
	if s == FragmentStage {
		return core1_0.StageFragment
	}
	return core1_0.StageVertex
}

// ShaderCompiler turns GLSL source text into SPIR-V words.
type ShaderCompiler interface {
	Compile(stage ShaderStage, name, source string) ([]uint32, error)
}

// GLSLC compiles shaders by running glslc, feeding it source on stdin and
// reading the module back from stdout.
type GLSLC struct {
	Path string
}

func (c GLSLC) Compile(stage ShaderStage, name, source string) ([]uint32, error) {
	path := c.Path
	if path == "" {
		path = "glslc"
	}

	cmd := exec.Command(path, "-fshader-stage="+stage.glslcName(), "--target-env=vulkan1.0", "-o", "-", "-")
	cmd.Stdin = strings.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "error compiling the %s shader %s: %s", stage, name, strings.TrimSpace(stderr.String()))
	}

	code, err := SPIRVWords(stdout.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "error compiling the %s shader %s", stage, name)
	}

	log.WithFields(log.Fields{"shader": name, "stage": stage, "words": len(code)}).Debug("shader compiled")
	return code, nil
}

// SPIRVWords reassembles little-endian SPIR-V bytes into words.
func SPIRVWords(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, errors.Newf("spir-v length %d is not a positive multiple of 4", len(b))
	}

	byteCode := make([]uint32, len(b)/4)
	for i := 0; i < len(byteCode); i++ {
		byteIndex := i * 4
		byteCode[i] = 0
		byteCode[i] |= uint32(b[byteIndex])
		byteCode[i] |= uint32(b[byteIndex+1]) << 8
		byteCode[i] |= uint32(b[byteIndex+2]) << 16
		byteCode[i] |= uint32(b[byteIndex+3]) << 24
	}

	if byteCode[0] != spirvMagic {
		return nil, errors.Newf("bad spir-v magic number %#08x", byteCode[0])
	}

	return byteCode, nil
}
