package gpuengine

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineFactory compiles WGSL compute shaders into pipelines, caching by
// (source, entry point) so repeated kernel launches across a long-running
// search reuse the same compiled pipeline.
type PipelineFactory struct {
	device *wgpu.Device
	cache  map[pipelineKey]*wgpu.ComputePipeline
}

type pipelineKey struct {
	source string
	entry  string
}

// NewPipelineFactory returns a factory bound to device.
func NewPipelineFactory(device *wgpu.Device) *PipelineFactory {
	return &PipelineFactory{device: device, cache: make(map[pipelineKey]*wgpu.ComputePipeline)}
}

// CreateCompute returns the compiled compute pipeline for the given WGSL
// source and entry point, compiling and caching it on first use.
func (f *PipelineFactory) CreateCompute(source, entry, label string) (*wgpu.ComputePipeline, error) {
	key := pipelineKey{source: source, entry: entry}
	if p, ok := f.cache[key]; ok {
		return p, nil
	}

	module, err := f.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + "_module",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return nil, fmt.Errorf("gpuengine: compile shader %q: %w", label, err)
	}

	pipeline, err := f.device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: label,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     module,
			EntryPoint: entry,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpuengine: create pipeline %q: %w", label, err)
	}

	f.cache[key] = pipeline
	return pipeline, nil
}
