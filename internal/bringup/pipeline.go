package bringup

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
)

// ShaderSource is GLSL text plus the name used in diagnostics.
type ShaderSource struct {
	Name string
	Text string
}

type ShaderSources struct {
	Vertex   ShaderSource
	Fragment ShaderSource
}

// Pipeline holds the objects a graphics pipeline owns. Destroy releases them
// pipeline first.
type Pipeline struct {
	DescriptorSetLayouts []core1_0.DescriptorSetLayout
	Layout               core1_0.PipelineLayout
	Pipeline             core1_0.Pipeline
}

func (p *Pipeline) Destroy() {
	if p.Pipeline != nil {
		p.Pipeline.Destroy(nil)
		p.Pipeline = nil
	}

	if p.Layout != nil {
		p.Layout.Destroy(nil)
		p.Layout = nil
	}

	for _, layout := range p.DescriptorSetLayouts {
		layout.Destroy(nil)
	}
	p.DescriptorSetLayouts = nil
}

func compileStages(compiler ShaderCompiler, sources ShaderSources) (vert, frag []uint32, err error) {
	vert, err = compiler.Compile(VertexStage, sources.Vertex.Name, sources.Vertex.Text)
	if err != nil {
		return nil, nil, err
	}

	frag, err = compiler.Compile(FragmentStage, sources.Fragment.Name, sources.Fragment.Text)
	if err != nil {
		return nil, nil, err
	}

	return vert, frag, nil
}

// CreateGraphicsPipeline compiles both shader stages and assembles a pipeline
// for subpass 0 of renderPass. Both stages are compiled before any device
// object is created. The shader modules live only until the pipeline exists.
func CreateGraphicsPipeline(device core1_0.Device, compiler ShaderCompiler, sources ShaderSources, extent core1_0.Extent2D, renderPass core1_0.RenderPass) (*Pipeline, error) {
	vertCode, fragCode, err := compileStages(compiler, sources)
	if err != nil {
		return nil, err
	}

	vertShader, _, err := device.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: vertCode,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating vertex shader module")
	}
	defer vertShader.Destroy(nil)

	fragShader, _, err := device.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: fragCode,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating fragment shader module")
	}
	defer fragShader.Destroy(nil)

	vertexInput := &core1_0.PipelineVertexInputStateCreateInfo{}

	inputAssembly := &core1_0.PipelineInputAssemblyStateCreateInfo{
		Topology:               core1_0.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: false,
	}

	vertStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  VertexStage.flags(),
		Module: vertShader,
		Name:   "main",
	}

	fragStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  FragmentStage.flags(),
		Module: fragShader,
		Name:   "main",
	}

	viewport := &core1_0.PipelineViewportStateCreateInfo{
		Viewports: []core1_0.Viewport{
			{
				X:        0,
				Y:        0,
				Width:    float32(extent.Width),
				Height:   float32(extent.Height),
				MinDepth: 0,
				MaxDepth: 1,
			},
		},
		Scissors: []core1_0.Rect2D{
			{
				Offset: core1_0.Offset2D{X: 0, Y: 0},
				Extent: extent,
			},
		},
	}

	rasterization := &core1_0.PipelineRasterizationStateCreateInfo{
		DepthClampEnable:        false,
		RasterizerDiscardEnable: false,

		PolygonMode: core1_0.PolygonModeFill,
		CullMode:    core1_0.CullModeBack,
		FrontFace:   core1_0.FrontFaceClockwise,

		DepthBiasEnable: false,

		LineWidth: 1.0,
	}

	multisample := &core1_0.PipelineMultisampleStateCreateInfo{
		SampleShadingEnable:  false,
		RasterizationSamples: core1_0.Samples1,
		MinSampleShading:     1.0,
	}

	colorBlend := &core1_0.PipelineColorBlendStateCreateInfo{
		LogicOpEnabled: false,
		LogicOp:        core1_0.LogicOpCopy,

		BlendConstants: [4]float32{0, 0, 0, 0},
		Attachments: []core1_0.PipelineColorBlendAttachmentState{
			{
				BlendEnabled: true,

				SrcColorBlendFactor: core1_0.BlendFactorOne,
				DstColorBlendFactor: core1_0.BlendFactorZero,
				ColorBlendOp:        core1_0.BlendOpAdd,

				SrcAlphaBlendFactor: core1_0.BlendFactorOne,
				DstAlphaBlendFactor: core1_0.BlendFactorZero,
				AlphaBlendOp:        core1_0.BlendOpAdd,

				ColorWriteMask: core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha,
			},
		},
	}

	pipeline := &Pipeline{}

	setLayout, _, err := device.CreateDescriptorSetLayout(nil, core1_0.DescriptorSetLayoutCreateInfo{})
	if err != nil {
		return nil, errors.Wrap(err, "error creating descriptor set layout")
	}
	pipeline.DescriptorSetLayouts = []core1_0.DescriptorSetLayout{setLayout}

	pipeline.Layout, _, err = device.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{
		SetLayouts: pipeline.DescriptorSetLayouts,
	})
	if err != nil {
		pipeline.Destroy()
		return nil, errors.Wrap(err, "error creating pipeline layout")
	}

	pipelines, _, err := device.CreateGraphicsPipelines(nil, nil, []core1_0.GraphicsPipelineCreateInfo{
		{
			Stages: []core1_0.PipelineShaderStageCreateInfo{
				vertStage,
				fragStage,
			},
			VertexInputState:   vertexInput,
			InputAssemblyState: inputAssembly,
			ViewportState:      viewport,
			RasterizationState: rasterization,
			MultisampleState:   multisample,
			ColorBlendState:    colorBlend,
			Layout:             pipeline.Layout,
			RenderPass:         renderPass,
			Subpass:            0,
			BasePipelineIndex:  -1,
		},
	})
	if err != nil {
		pipeline.Destroy()
		return nil, errors.Wrap(err, "failed to create a graphics pipeline")
	}
	pipeline.Pipeline = pipelines[0]

	return pipeline, nil
}
