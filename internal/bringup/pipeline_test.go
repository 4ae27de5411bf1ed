package bringup

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
)

// untouchedDevice panics on any call, which proves that nothing was created.
type untouchedDevice struct {
	core1_0.Device
}

type stubCompiler struct {
	failStage ShaderStage
	err       error
	compiled  []ShaderStage
}

func (c *stubCompiler) Compile(stage ShaderStage, name, source string) ([]uint32, error) {
	c.compiled = append(c.compiled, stage)
	if c.err != nil && stage == c.failStage {
		return nil, c.err
	}
	return []uint32{spirvMagic}, nil
}

var testSources = ShaderSources{
	Vertex:   ShaderSource{Name: "test.vert", Text: testVertexShader},
	Fragment: ShaderSource{Name: "test.frag", Text: "#version 450\nvoid main() {}\n"},
}

func TestCreateGraphicsPipelineCompileFailureCreatesNothing(t *testing.T) {
	for _, stage := range []ShaderStage{VertexStage, FragmentStage} {
		t.Run(stage.String(), func(t *testing.T) {
			compileErr := errors.Newf("%s shader failed", stage)
			compiler := &stubCompiler{failStage: stage, err: compileErr}

			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("device was used after a compile failure: %v", r)
				}
			}()

			pipeline, err := CreateGraphicsPipeline(untouchedDevice{}, compiler, testSources, core1_0.Extent2D{Width: 800, Height: 600}, nil)
			if !errors.Is(err, compileErr) {
				t.Errorf("expected %v, got %v", compileErr, err)
			}
			if pipeline != nil {
				t.Error("expected no pipeline")
			}
		})
	}
}

func TestCompileStagesStopsAtVertexFailure(t *testing.T) {
	compiler := &stubCompiler{failStage: VertexStage, err: errors.New("syntax error")}

	if _, _, err := compileStages(compiler, testSources); err == nil {
		t.Fatal("expected error")
	}
	if len(compiler.compiled) != 1 || compiler.compiled[0] != VertexStage {
		t.Errorf("expected only the vertex stage to be compiled, got %v", compiler.compiled)
	}
}

func TestEmptyPipelineDestroy(t *testing.T) {
	pipeline := &Pipeline{}
	pipeline.Destroy()
	pipeline.Destroy()
}
