package webgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fold/internal/kernel"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name string
		in   kernel.WorkDiv
		want kernel.WorkDiv
	}{
		{"pins lanes", kernel.WorkDiv{Blocks: 4, LanesPerBlock: 16}, kernel.WorkDiv{Blocks: 4, LanesPerBlock: workgroupSize}},
		{"at least one block", kernel.WorkDiv{Blocks: 0, LanesPerBlock: 256}, kernel.WorkDiv{Blocks: 1, LanesPerBlock: workgroupSize}},
		{"caps grid", kernel.WorkDiv{Blocks: 1 << 20, LanesPerBlock: 1024}, kernel.WorkDiv{Blocks: maxWorkgroups, LanesPerBlock: workgroupSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fit(tt.in))
		})
	}
}

func TestNativeScalar(t *testing.T) {
	wd := kernel.WorkDiv{Blocks: 2, LanesPerBlock: workgroupSize}
	f32 := make([]float32, 10)
	i32 := make([]int32, 10)
	dst32 := make([]kernel.Partial[float32], 2)
	dstI := make([]kernel.Partial[int32], 2)

	s, ok := nativeScalar(kernel.NewReduceKernel(f32, dst32, 10, kernel.SumOf[float32]()), wd)
	require.True(t, ok)
	assert.Equal(t, scalarF32, s)

	s, ok = nativeScalar(kernel.NewReduceKernel(i32, dstI, 10, kernel.SumOf[int32]()), wd)
	require.True(t, ok)
	assert.Equal(t, scalarI32, s)

	_, ok = nativeScalar(kernel.NewReduceKernel(f32, dst32, 10, kernel.MaxOf[float32]()), wd)
	assert.False(t, ok, "only sums run natively")

	_, ok = nativeScalar(kernel.NewReduceKernel(f32, dst32, 10, kernel.Fold(kernel.Sum[float32])), wd)
	assert.False(t, ok, "untagged reducers are emulated")

	f64 := make([]float64, 10)
	_, ok = nativeScalar(kernel.NewReduceKernel(f64, make([]kernel.Partial[float64], 2), 10, kernel.SumOf[float64]()), wd)
	assert.False(t, ok, "no f64 in WGSL")

	_, ok = nativeScalar(kernel.NewReduceKernel(f32, dst32, 10, kernel.SumOf[float32]()), kernel.WorkDiv{Blocks: 2, LanesPerBlock: 64})
	assert.False(t, ok, "native blocks are one workgroup wide")
}

func TestReduceShader(t *testing.T) {
	src := reduceShader(scalarF32)
	assert.Contains(t, src, "array<f32, 256>")
	assert.Contains(t, src, "@workgroup_size(256)")
	assert.Contains(t, src, "var acc: f32 = 0.0;")
	assert.Contains(t, src, "var s: u32 = 128u")

	src = reduceShader(scalarI32)
	assert.Contains(t, src, "array<i32>")
	assert.Contains(t, src, "var acc: i32 = 0;")
}

func TestBlockValid(t *testing.T) {
	wd := kernel.WorkDiv{Blocks: 4, LanesPerBlock: workgroupSize}
	assert.True(t, blockValid(wd, 0, 1))
	assert.True(t, blockValid(wd, 1, 257))
	assert.False(t, blockValid(wd, 1, 256))
	assert.False(t, blockValid(wd, 3, 600))
}
