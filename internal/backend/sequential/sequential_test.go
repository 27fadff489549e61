package sequential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fold/internal/kernel"
)

func TestFit(t *testing.T) {
	target := New()

	for _, wd := range []kernel.WorkDiv{{Blocks: 1, LanesPerBlock: 1}, {Blocks: 40, LanesPerBlock: 256}} {
		assert.Equal(t, kernel.WorkDiv{Blocks: 1, LanesPerBlock: 1}, target.Fit(wd))
	}
}

func TestLaunch_Reduce(t *testing.T) {
	target := New()
	dev := target.Devices()[0]

	src := make([]int, 100)
	for i := range src {
		src[i] = i + 1
	}
	dst := make([]kernel.Partial[int], 1)
	k := kernel.NewReduceKernel(src, dst, len(src), kernel.SumOf[int]())

	err := target.Launch(context.Background(), dev, k, target.Fit(kernel.WorkDiv{Blocks: 7, LanesPerBlock: 16}))
	require.NoError(t, err)
	assert.Equal(t, kernel.Partial[int]{Value: 5050, Valid: true}, dst[0])
}

func TestLaunch_MultipleSingleLaneBlocks(t *testing.T) {
	target := New()
	dev := target.Devices()[0]

	src := []int{1, 2, 3, 4, 5}
	dst := make([]kernel.Partial[int], 3)
	k := kernel.NewReduceKernel(src, dst, len(src), kernel.SumOf[int]())

	// 3 lanes in total: lane 0 -> {1,4}, lane 1 -> {2,5}, lane 2 -> {3}.
	err := target.Launch(context.Background(), dev, k, kernel.WorkDiv{Blocks: 3, LanesPerBlock: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, dst[0].Value)
	assert.Equal(t, 7, dst[1].Value)
	assert.Equal(t, 3, dst[2].Value)
}

func TestLaunch_RejectsWideBlocks(t *testing.T) {
	target := New()

	err := target.Launch(context.Background(), target.Devices()[0], kernel.NewMapKernel[int, int]("noop", nil, nil, nil),
		kernel.WorkDiv{Blocks: 1, LanesPerBlock: 4})
	assert.ErrorIs(t, err, kernel.ErrInvalidWorkDiv)
}

func TestLaunch_UnknownDevice(t *testing.T) {
	target := New()

	err := target.Launch(context.Background(), kernel.Device{Kind: kernel.Threaded}, kernel.NewMapKernel[int, int]("noop", nil, nil, nil),
		kernel.WorkDiv{Blocks: 1, LanesPerBlock: 1})
	assert.ErrorIs(t, err, kernel.ErrUnknownDevice)
}

func TestLaunch_PanicBecomesLaunchError(t *testing.T) {
	target := New()

	k := kernel.NewMapKernel("boom", []int{1}, []int{1}, func(*kernel.Acc, int, []int, []int) {
		panic("device fault")
	})
	err := target.Launch(context.Background(), target.Devices()[0], k, kernel.WorkDiv{Blocks: 1, LanesPerBlock: 1})
	require.ErrorIs(t, err, kernel.ErrLaunchFailed)
	assert.Contains(t, err.Error(), "device fault")
}
