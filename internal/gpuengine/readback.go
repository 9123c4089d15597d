package gpuengine

import (
	"context"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Readback copies buf's contents to the host, driving the device's poll
// loop until the asynchronous map completes or ctx is canceled. It mirrors
// the callback-then-channel pattern the reference implementation uses to
// turn wgpu's async buffer mapping into a blocking call.
func Readback(ctx context.Context, device *wgpu.Device, buf *wgpu.Buffer, size uint64) ([]byte, error) {
	done := make(chan error, 1)

	buf.MapAsync(wgpu.MapModeRead, 0, size, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			done <- fmt.Errorf("gpuengine: buffer map failed: %v", status)
			return
		}
		done <- nil
	})

	for {
		select {
		case err := <-done:
			if err != nil {
				return nil, err
			}
			defer buf.Unmap()
			view := buf.GetMappedRange(0, size)
			out := make([]byte, size)
			copy(out, view)
			return out, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			device.Poll(false, nil)
		}
	}
}
