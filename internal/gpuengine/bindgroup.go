package gpuengine

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupBuilder accumulates buffer bindings with a fluent API before
// building the bind group in one call, saving each kernel from hand
// writing a wgpu.BindGroupDescriptor literal.
type BindGroupBuilder struct {
	entries []wgpu.BindGroupEntry
}

// NewBindGroupBuilder returns an empty builder.
func NewBindGroupBuilder() *BindGroupBuilder {
	return &BindGroupBuilder{}
}

// Buffer binds buf as a whole-buffer resource at the given binding index
// and returns the builder for chaining.
func (b *BindGroupBuilder) Buffer(binding uint32, buf *wgpu.Buffer) *BindGroupBuilder {
	b.entries = append(b.entries, wgpu.BindGroupEntry{
		Binding: binding,
		Buffer:  buf,
		Offset:  0,
		Size:    wgpu.WholeSize,
	})
	return b
}

// Build creates the bind group against layout.
func (b *BindGroupBuilder) Build(device *wgpu.Device, layout *wgpu.BindGroupLayout, label string) (*wgpu.BindGroup, error) {
	return device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   label,
		Layout:  layout,
		Entries: b.entries,
	})
}
