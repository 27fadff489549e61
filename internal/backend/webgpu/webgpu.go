// Package webgpu implements the GPU execution target on top of go-webgpu.
//
// Tagged sum reductions over float32 and int32 run as a native WGSL kernel
// with one workgroup per block. Every other kernel is emulated on goroutine
// lanes, so any kernel launched on this target produces the same result as on
// the host targets.
package webgpu

import (
	"errors"
	"fmt"

	"github.com/born-ml/fold/internal/kernel"
)

// workgroupSize is the lane count of every native block. It matches the
// shared array length in the reduction shader.
const workgroupSize = 256

// maxWorkgroups is the per-dimension dispatch limit guaranteed by WebGPU.
const maxWorkgroups = 65535

var (
	// ErrUnavailable is returned when no WebGPU adapter can be opened.
	ErrUnavailable = errors.New("webgpu: not available")

	// ErrDispatch is returned when a native dispatch cannot read back its result.
	ErrDispatch = errors.New("webgpu: dispatch failed")
)

// fit pins the block width to the workgroup size and caps the grid.
func fit(wd kernel.WorkDiv) kernel.WorkDiv {
	blocks := max(wd.Blocks, 1)
	if blocks > maxWorkgroups {
		blocks = maxWorkgroups
	}
	return kernel.WorkDiv{Blocks: blocks, LanesPerBlock: workgroupSize}
}

// scalar names a WGSL element type with a native reduction.
type scalar struct {
	wgsl string
	zero string
}

var (
	scalarF32 = scalar{wgsl: "f32", zero: "0.0"}
	scalarI32 = scalar{wgsl: "i32", zero: "0"}
)

// nativeScalar reports whether k can run as the native sum shader.
func nativeScalar(k kernel.Kernel, wd kernel.WorkDiv) (scalar, bool) {
	if wd.LanesPerBlock != workgroupSize {
		return scalar{}, false
	}
	switch rk := k.(type) {
	case *kernel.ReduceKernel[float32, float32]:
		return scalarF32, rk.Reducer.Op == kernel.OpSum
	case *kernel.ReduceKernel[int32, int32]:
		return scalarI32, rk.Reducer.Op == kernel.OpSum
	default:
		return scalar{}, false
	}
}

// reduceShader returns the block reduction for s. Each invocation folds a
// grid-strided range of the input, the workgroup halves its shared array and
// invocation 0 writes the block partial.
func reduceShader(s scalar) string {
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> input: array<%[1]s>;
@group(0) @binding(1) var<storage, read_write> result: array<%[1]s>;

struct Params {
    size: u32,
    stride: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> shared_data: array<%[1]s, %[3]d>;

@compute @workgroup_size(%[3]d)
fn main(
    @builtin(global_invocation_id) global_id: vec3<u32>,
    @builtin(local_invocation_id) local_id: vec3<u32>,
    @builtin(workgroup_id) workgroup_id: vec3<u32>
) {
    let tid = local_id.x;

    var acc: %[1]s = %[2]s;
    for (var i: u32 = global_id.x; i < params.size; i = i + params.stride) {
        acc = acc + input[i];
    }
    shared_data[tid] = acc;
    workgroupBarrier();

    for (var s: u32 = %[4]du; s > 0u; s = s >> 1u) {
        if (tid < s) {
            shared_data[tid] = shared_data[tid] + shared_data[tid + s];
        }
        workgroupBarrier();
    }

    if (tid == 0u) {
        result[workgroup_id.x] = shared_data[0];
    }
}
`, s.wgsl, s.zero, workgroupSize, workgroupSize/2)
}

// blockValid reports whether block b of wd covers at least one element.
// Blocks past the input keep the empty partial, as on the host targets.
func blockValid(wd kernel.WorkDiv, b, n int) bool {
	return b*wd.LanesPerBlock < n
}
