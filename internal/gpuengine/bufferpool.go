package gpuengine

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// BufferKind names the role a pooled buffer plays, matching the three
// buffer classes the compute kernels move data through: host-to-device
// input, device-resident output, and the single staging buffer used to
// read results back.
type BufferKind int

const (
	BufferInput BufferKind = iota
	BufferOutput
	BufferStaging
)

func (k BufferKind) usage() wgpu.BufferUsage {
	switch k {
	case BufferInput:
		return wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
	case BufferOutput:
		return wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc
	case BufferStaging:
		return wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst
	default:
		return wgpu.BufferUsageStorage
	}
}

// BufferPool hands out device buffers sized for a batch, reusing
// allocations across batches of the same size and kind instead of
// allocating fresh storage on every dispatch. It keeps one extra slot
// reserved for the staging readback buffer, since only one readback is
// ever in flight per kernel instance.
type BufferPool struct {
	device *wgpu.Device

	mu      sync.Mutex
	buffers map[bufferPoolKey][]*wgpu.Buffer
	staging *wgpu.Buffer
	stageSz uint64
}

type bufferPoolKey struct {
	kind BufferKind
	size uint64
}

// NewBufferPool returns a pool that allocates from device.
func NewBufferPool(device *wgpu.Device) *BufferPool {
	return &BufferPool{
		device:  device,
		buffers: make(map[bufferPoolKey][]*wgpu.Buffer),
	}
}

// Acquire returns a buffer of the given kind sized to hold size bytes,
// reusing a released one of the same (kind, size) if available.
func (p *BufferPool) Acquire(kind BufferKind, size uint64, label string) (*wgpu.Buffer, error) {
	if kind == BufferStaging {
		return p.acquireStaging(size, label)
	}

	key := bufferPoolKey{kind: kind, size: size}

	p.mu.Lock()
	if list := p.buffers[key]; len(list) > 0 {
		buf := list[len(list)-1]
		p.buffers[key] = list[:len(list)-1]
		p.mu.Unlock()
		return buf, nil
	}
	p.mu.Unlock()

	buf, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: kind.usage(),
	})
	if err != nil {
		return nil, fmt.Errorf("gpuengine: allocate %v buffer (%d bytes): %w", kind, size, err)
	}
	return buf, nil
}

func (p *BufferPool) acquireStaging(size uint64, label string) (*wgpu.Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.staging != nil && p.stageSz >= size {
		return p.staging, nil
	}
	if p.staging != nil {
		p.staging.Release()
	}

	buf, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: BufferStaging.usage(),
	})
	if err != nil {
		return nil, fmt.Errorf("gpuengine: allocate staging buffer (%d bytes): %w", size, err)
	}
	p.staging = buf
	p.stageSz = size
	return buf, nil
}

// Release returns buf to the pool for reuse by a later Acquire of the same
// kind and size. Staging buffers are never released back through this
// path; the pool owns the single staging slot for its own lifetime.
func (p *BufferPool) Release(kind BufferKind, size uint64, buf *wgpu.Buffer) {
	if kind == BufferStaging {
		return
	}
	key := bufferPoolKey{kind: kind, size: size}
	p.mu.Lock()
	p.buffers[key] = append(p.buffers[key], buf)
	p.mu.Unlock()
}

// Close releases every buffer the pool holds.
func (p *BufferPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, list := range p.buffers {
		for _, buf := range list {
			buf.Release()
		}
	}
	p.buffers = make(map[bufferPoolKey][]*wgpu.Buffer)
	if p.staging != nil {
		p.staging.Release()
		p.staging = nil
	}
}
