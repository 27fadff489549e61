//go:build windows

package webgpu

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/fold/internal/backend/threaded"
	"github.com/born-ml/fold/internal/kernel"
)

// Target runs kernels on the first high-performance WebGPU adapter.
type Target struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu        sync.RWMutex
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline

	// dispatch serializes submissions and read-backs on the device queue.
	dispatch sync.Mutex

	host *threaded.Target
	dev  kernel.Device
}

// New opens the WebGPU device. It returns ErrUnavailable when the native
// library or an adapter is missing.
func New() (t *Target, err error) {
	defer func() {
		if r := recover(); r != nil {
			t = nil
			err = fmt.Errorf("%w: native library: %v", ErrUnavailable, r)
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", ErrUnavailable, err)
	}
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: request adapter: %w", ErrUnavailable, err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: request device: %w", ErrUnavailable, err)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: no queue", ErrUnavailable)
	}

	return &Target{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
		host:      threaded.New(threaded.DefaultConfig()),
		dev:       kernel.Device{Kind: kernel.WebGPU, Index: 0, Name: "adapter 0"},
	}, nil
}

// Kind returns kernel.WebGPU.
func (t *Target) Kind() kernel.Kind {
	return kernel.WebGPU
}

// Name returns the target name.
func (t *Target) Name() string {
	return "webgpu"
}

// Devices returns the opened adapter.
func (t *Target) Devices() []kernel.Device {
	return []kernel.Device{t.dev}
}

// Fit pins the block width to the workgroup size and caps the grid.
func (t *Target) Fit(wd kernel.WorkDiv) kernel.WorkDiv {
	return fit(wd)
}

// Launch dispatches tagged sums natively and emulates everything else.
func (t *Target) Launch(ctx context.Context, dev kernel.Device, k kernel.Kernel, wd kernel.WorkDiv) error {
	if dev != t.dev {
		return fmt.Errorf("%w: %s", kernel.ErrUnknownDevice, dev)
	}
	if err := wd.Validate(); err != nil {
		return err
	}

	s, ok := nativeScalar(k, wd)
	if !ok {
		return t.host.Launch(ctx, t.host.Devices()[0], k, wd)
	}

	switch rk := k.(type) {
	case *kernel.ReduceKernel[float32, float32]:
		return runNative(t, s, rk, wd)
	case *kernel.ReduceKernel[int32, int32]:
		return runNative(t, s, rk, wd)
	}
	return t.host.Launch(ctx, t.host.Devices()[0], k, wd)
}

// Close releases the device.
func (t *Target) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, p := range t.pipelines {
		p.Release()
	}
	for _, s := range t.shaders {
		s.Release()
	}
	t.pipelines = nil
	t.shaders = nil

	t.device.Release()
	t.adapter.Release()
	t.instance.Release()
}

func (t *Target) pipeline(s scalar) *wgpu.ComputePipeline {
	name := "reduce_sum_" + s.wgsl

	t.mu.RLock()
	if p, ok := t.pipelines[name]; ok {
		t.mu.RUnlock()
		return p
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.pipelines[name]; ok {
		return p
	}
	shader := t.device.CreateShaderModuleWGSL(reduceShader(s))
	p := t.device.CreateComputePipelineSimple(nil, shader, "main")
	t.shaders[name] = shader
	t.pipelines[name] = p
	return p
}

// element is the set of types with a native reduction. Both are four bytes.
type element interface {
	float32 | int32
}

func runNative[T element](t *Target, s scalar, k *kernel.ReduceKernel[T, T], wd kernel.WorkDiv) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", kernel.ErrLaunchFailed, k.Name(), r)
		}
	}()

	t.dispatch.Lock()
	defer t.dispatch.Unlock()

	src := k.Source[:k.N]
	inSize := uint64(len(src)) * 4
	outSize := uint64(wd.Blocks) * 4

	input := t.upload(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(src))), inSize), //nolint:gosec // zero-copy view of a 4-byte element slice
		wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer input.Release()

	output := t.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  outSize,
	})
	defer output.Release()

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(k.N))                     //nolint:gosec // n is bounded by the buffer size
	binary.LittleEndian.PutUint32(params[4:8], uint32(wd.Blocks*workgroupSize)) //nolint:gosec // blocks are capped at maxWorkgroups
	uniform := t.upload(params, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	defer uniform.Release()

	pipeline := t.pipeline(s)
	bindGroup := t.device.CreateBindGroupSimple(pipeline.GetBindGroupLayout(0), []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, input, 0, inSize),
		wgpu.BufferBindingEntry(1, output, 0, outSize),
		wgpu.BufferBindingEntry(2, uniform, 0, 16),
	})
	defer bindGroup.Release()

	encoder := t.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(uint32(wd.Blocks), 1, 1) //nolint:gosec // blocks are capped at maxWorkgroups
	pass.End()
	t.queue.Submit(encoder.Finish(nil))

	data, err := t.readBack(output, outSize)
	if err != nil {
		return err
	}
	partials := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(data))), wd.Blocks) //nolint:gosec // data holds wd.Blocks 4-byte elements
	for b, v := range partials {
		if blockValid(wd, b, k.N) {
			k.Dest[b] = kernel.Partial[T]{Value: v, Valid: true}
		}
	}
	return nil
}

func (t *Target) upload(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := (uint64(len(data)) + 15) &^ 15
	buf := t.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	mapped := unsafe.Slice((*byte)(buf.GetMappedRange(0, size)), size) //nolint:gosec // mapped range is size bytes
	copy(mapped, data)
	buf.Unmap()
	return buf
}

func (t *Target) readBack(src *wgpu.Buffer, size uint64) ([]byte, error) {
	staging := t.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := t.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	t.queue.Submit(encoder.Finish(nil))

	if err := staging.MapAsync(t.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("%w: map staging buffer: %w", ErrDispatch, err)
	}
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(staging.GetMappedRange(0, size)), size)) //nolint:gosec // mapped range is size bytes
	staging.Unmap()
	return out, nil
}
