package gpuengine

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"seedhunter/internal/calendar"
	"seedhunter/internal/errs"
	"seedhunter/internal/ivgen"
	"seedhunter/internal/reverseiv"
	"seedhunter/internal/seedhash"
)

const workgroupSize = 64

// maxSurvivorsPerBatch bounds the compacted output buffer; a batch
// producing more survivors than this is a configuration error (too loose
// a rectangle for the batch size), not something to silently truncate.
const maxSurvivorsPerBatch = 1 << 16

// GPUKernel implements Kernel against an already-acquired WGPU device and
// queue. Device and adapter acquisition (instance creation, adapter
// selection, feature negotiation) is intentionally not this package's
// concern; callers construct the Device elsewhere and hand it in.
type GPUKernel struct {
	device   *wgpu.Device
	queue    *wgpu.Queue
	pool     *BufferPool
	pipes    *PipelineFactory
	layout   *wgpu.BindGroupLayout
	pipeline *wgpu.ComputePipeline
	finder   *reverseiv.Finder
}

// NewGPUKernel builds the kernel against device/queue, compiling kernel B's
// shader and its bind group layout eagerly so the first ScanBatch call
// does not pay compile latency.
func NewGPUKernel(device *wgpu.Device, queue *wgpu.Queue) (*GPUKernel, error) {
	layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "seedhunter_kernelb_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageCompute, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage}},
			{Binding: 1, Visibility: wgpu.ShaderStageCompute, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: wgpu.ShaderStageCompute, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeStorage}},
			{Binding: 3, Visibility: wgpu.ShaderStageCompute, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeStorage}},
			{Binding: 4, Visibility: wgpu.ShaderStageCompute, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
			{Binding: 5, Visibility: wgpu.ShaderStageCompute, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpuengine: create bind group layout: %w", err)
	}

	pipes := NewPipelineFactory(device)
	pipeline, err := pipes.CreateCompute(kernelBSource, "main", "seedhunter_kernelb")
	if err != nil {
		return nil, err
	}

	return &GPUKernel{
		device:   device,
		queue:    queue,
		pool:     NewBufferPool(device),
		pipes:    pipes,
		layout:   layout,
		pipeline: pipeline,
		finder:   reverseiv.NewFinder(0),
	}, nil
}

func (k *GPUKernel) Name() string { return "webgpu" }

func (k *GPUKernel) IsAvailable() bool { return k.device != nil }

// Close releases pooled GPU resources.
func (k *GPUKernel) Close() {
	k.pool.Close()
}

func fixedWordsBytes(cfg seedhash.DSConfig, moment calendar.Moment, wrap calendar.WeekdayWrapMode) []byte {
	vc := seedhash.VersionConfigFor(cfg.Version)
	vcountTimer0 := uint32(vc.VCount)<<16 | uint32(cfg.Timer0)
	macLower16 := uint32(cfg.MAC & 0xFFFF)

	// The shader reads each u32 as the SHA-1 message word directly. The
	// words the CPU path serializes little-endian (nazo1-5, vcount|timer0)
	// are therefore uploaded byte-swapped, the big-endian ones as-is.
	buf := make([]byte, 40)
	binary.BigEndian.PutUint32(buf[0:4], vc.Nazo.Nazo1)
	binary.BigEndian.PutUint32(buf[4:8], vc.Nazo.Nazo2)
	binary.BigEndian.PutUint32(buf[8:12], vc.Nazo.Nazo3)
	binary.BigEndian.PutUint32(buf[12:16], vc.Nazo.Nazo4)
	binary.BigEndian.PutUint32(buf[16:20], vc.Nazo.Nazo5)
	binary.BigEndian.PutUint32(buf[20:24], vcountTimer0)
	binary.LittleEndian.PutUint32(buf[24:28], macLower16)
	// data7 is taken from seedhash.MessageBlock so both paths share one
	// computation of it.
	binary.LittleEndian.PutUint32(buf[28:32], seedhash.MessageBlock(cfg, moment, 0, wrap)[7])
	binary.LittleEndian.PutUint32(buf[32:36], moment.Date.Date8(wrap))
	binary.LittleEndian.PutUint32(buf[36:40], moment.Time.Time9())
	return buf
}

// ScanBatch implements Kernel by uploading the batch's fixed words and key
// states, dispatching kernel B, and reading back the compacted survivor
// list.
func (k *GPUKernel) ScanBatch(ctx context.Context, cfg seedhash.DSConfig, moments []calendar.Moment, keys []uint16, wrap calendar.WeekdayWrapMode, filter Filter) ([]Candidate, error) {
	if len(moments) == 0 || len(keys) == 0 {
		return nil, nil
	}

	momentBytes := make([]byte, 0, 40*len(moments))
	for _, m := range moments {
		momentBytes = append(momentBytes, fixedWordsBytes(cfg, m, wrap)...)
	}

	// Key presses are a little-endian message word on the CPU path, so
	// they are uploaded byte-swapped like the nazo words.
	keyWords := make([]byte, 4*len(keys))
	for i, key := range keys {
		binary.BigEndian.PutUint32(keyWords[i*4:i*4+4], uint32(key))
	}

	// Kernel B tests seed-high membership against the reverse-IV table for
	// this filter instead of deriving IVs per thread; the Finder memoizes
	// the table across batches sharing the same (offset, rectangle).
	seeds := k.finder.Seeds(filter.P, filter.Min, filter.Max)
	tableBytes := make([]byte, 4*len(seeds))
	for i, s := range seeds {
		binary.LittleEndian.PutUint32(tableBytes[i*4:i*4+4], s)
	}
	tableSize := uint64(len(tableBytes))
	if tableSize == 0 {
		tableSize = 4
	}
	tableBuf, err := k.pool.Acquire(BufferInput, tableSize, "seed_table")
	if err != nil {
		return nil, err
	}
	defer k.pool.Release(BufferInput, tableSize, tableBuf)
	if len(tableBytes) > 0 {
		k.queue.WriteBuffer(tableBuf, 0, tableBytes)
	}

	survivorStride := uint64(20) // moment_key_index + 4 u32 words
	survivorBuf, err := k.pool.Acquire(BufferOutput, survivorStride*maxSurvivorsPerBatch, "survivors")
	if err != nil {
		return nil, err
	}
	defer k.pool.Release(BufferOutput, survivorStride*maxSurvivorsPerBatch, survivorBuf)

	momentBuf, err := k.pool.Acquire(BufferInput, uint64(len(momentBytes)), "moments")
	if err != nil {
		return nil, err
	}
	defer k.pool.Release(BufferInput, uint64(len(momentBytes)), momentBuf)
	k.queue.WriteBuffer(momentBuf, 0, momentBytes)

	keyBuf, err := k.pool.Acquire(BufferInput, uint64(len(keyWords)), "keys")
	if err != nil {
		return nil, err
	}
	defer k.pool.Release(BufferInput, uint64(len(keyWords)), keyBuf)
	k.queue.WriteBuffer(keyBuf, 0, keyWords)

	paramsBytes := encodeParams(len(moments), len(keys), filter, len(seeds))
	paramsBuf, err := k.pool.Acquire(BufferInput, uint64(len(paramsBytes)), "params")
	if err != nil {
		return nil, err
	}
	defer k.pool.Release(BufferInput, uint64(len(paramsBytes)), paramsBuf)
	k.queue.WriteBuffer(paramsBuf, 0, paramsBytes)

	bindGroup, err := NewBindGroupBuilder().
		Buffer(0, momentBuf).
		Buffer(1, keyBuf).
		Buffer(2, survivorBuf).
		Buffer(3, survivorBuf). // atomic counter lives at a fixed tail offset of the same allocation
		Buffer(4, paramsBuf).
		Buffer(5, tableBuf).
		Build(k.device, k.layout, "seedhunter_kernelb_bindgroup")
	if err != nil {
		return nil, err
	}

	encoder, err := k.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "seedhunter_scan"})
	if err != nil {
		return nil, err
	}
	pass := encoder.BeginComputePass(&wgpu.ComputePassDescriptor{Label: "seedhunter_kernelb"})
	pass.SetPipeline(k.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	total := uint32(len(moments)) * uint32(len(keys))
	pass.DispatchWorkgroups(Dispatch1DWorkgroups(total, workgroupSize), 1, 1)
	pass.End()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, err
	}
	k.queue.Submit(cmd)

	raw, err := Readback(ctx, k.device, survivorBuf, survivorStride*maxSurvivorsPerBatch)
	if err != nil {
		return nil, err
	}

	candidates, err := decodeSurvivors(raw, cfg, moments, keys, filter.P)
	if err != nil {
		return nil, err
	}
	if len(candidates) >= maxSurvivorsPerBatch {
		return nil, fmt.Errorf("gpuengine: batch of %d moments x %d keys (cap %d): %w", len(moments), len(keys), maxSurvivorsPerBatch, errs.ErrResultOverflow)
	}
	return candidates, nil
}

func encodeParams(momentCount, keyCount int, filter Filter, tableLen int) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(momentCount))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(keyCount))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(filter.P))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(tableLen))
	return buf
}

func decodeSurvivors(raw []byte, cfg seedhash.DSConfig, moments []calendar.Moment, keys []uint16, p uint8) ([]Candidate, error) {
	const stride = 20
	var out []Candidate
	for off := 0; off+stride <= len(raw); off += stride {
		idx := binary.LittleEndian.Uint32(raw[off : off+4])
		if idx == 0 && off > 0 {
			// Slots past the atomic counter's final value are left at
			// their zero-initialized state; a zero index at a nonzero
			// offset marks the end of valid survivors.
			break
		}
		seed0 := uint64(binary.LittleEndian.Uint32(raw[off+4:off+8])) | uint64(binary.LittleEndian.Uint32(raw[off+8:off+12]))<<32
		seed1 := uint64(binary.LittleEndian.Uint32(raw[off+12:off+16])) | uint64(binary.LittleEndian.Uint32(raw[off+16:off+20]))<<32

		momentIdx := int(idx) / len(keys)
		keyIdx := int(idx) % len(keys)
		if momentIdx >= len(moments) {
			continue
		}

		out = append(out, Candidate{
			Moment: moments[momentIdx],
			Keys:   keys[keyIdx],
			Seed0:  seed0,
			Seed1:  seed1,
			IVs:    ivgen.FromSeed1(seed1, p),
		})
	}
	return out, nil
}
