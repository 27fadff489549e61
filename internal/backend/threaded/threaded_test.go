package threaded

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/born-ml/fold/internal/kernel"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func iota1(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func launchSum(t *testing.T, target *Target, src []int, lanes int) int {
	t.Helper()

	wd := target.Fit(kernel.WorkDiv{Blocks: max((len(src)+lanes-1)/lanes, 1), LanesPerBlock: lanes})
	dst := make([]kernel.Partial[int], wd.Blocks)
	k := kernel.NewReduceKernel(src, dst, len(src), kernel.SumOf[int]())

	require.NoError(t, target.Launch(context.Background(), target.Devices()[0], k, wd))
	return kernel.FoldPartials(dst, kernel.Sum[int]).Value
}

func TestLaunch_SumAcrossBlockSizes(t *testing.T) {
	target := New(Config{Workers: 4})
	src := iota1(100)

	for _, lanes := range []int{1, 2, 3, 5, 7, 16, 33, 100, 256} {
		assert.Equal(t, 5050, launchSum(t, target, src, lanes), "lanes=%d", lanes)
	}
}

// Counting ones checks that every index is folded exactly once, including
// blocks that are only partially filled.
func TestLaunch_EveryElementOnce(t *testing.T) {
	target := New(Config{Workers: 3})

	for _, n := range []int{1, 2, 15, 16, 17, 255, 257, 1000} {
		ones := make([]int, n)
		for i := range ones {
			ones[i] = 1
		}
		for _, lanes := range []int{1, 4, 6, 16, 64} {
			assert.Equal(t, n, launchSum(t, target, ones, lanes), "n=%d lanes=%d", n, lanes)
		}
	}
}

func TestLaunch_GridStride(t *testing.T) {
	target := New(Config{Workers: 2, MaxBlocks: 3})
	src := iota1(1000)

	wd := target.Fit(kernel.WorkDiv{Blocks: 63, LanesPerBlock: 16})
	require.Equal(t, kernel.WorkDiv{Blocks: 3, LanesPerBlock: 16}, wd)

	assert.Equal(t, 500500, launchSum(t, target, src, 16))
}

func TestLaunch_EmptyBlocksLeaveSlotInvalid(t *testing.T) {
	target := New(Config{Workers: 2})
	src := iota1(10)

	// 4 blocks of 4 lanes over 10 elements: block 3 starts at 12.
	dst := make([]kernel.Partial[int], 4)
	k := kernel.NewReduceKernel(src, dst, len(src), kernel.SumOf[int]())
	require.NoError(t, target.Launch(context.Background(), target.Devices()[0], k, kernel.WorkDiv{Blocks: 4, LanesPerBlock: 4}))

	assert.Equal(t, kernel.Partial[int]{Value: 10, Valid: true}, dst[0])
	assert.Equal(t, kernel.Partial[int]{Value: 26, Valid: true}, dst[1])
	assert.Equal(t, kernel.Partial[int]{Value: 19, Valid: true}, dst[2])
	assert.False(t, dst[3].Valid)
	assert.Equal(t, 55, kernel.FoldPartials(dst, kernel.Sum[int]).Value)
}

func TestLaunch_MapRunsOnce(t *testing.T) {
	target := New(Config{Workers: 4})

	var calls atomic.Int32
	k := kernel.NewMapKernel("count", []int{1, 2}, []int{1, 2}, func(*kernel.Acc, int, []int, []int) {
		calls.Add(1)
	})
	require.NoError(t, target.Launch(context.Background(), target.Devices()[0], k, kernel.WorkDiv{Blocks: 8, LanesPerBlock: 32}))

	assert.Equal(t, int32(1), calls.Load())
}

type panicKernel struct {
	lane int
}

func (k panicKernel) Name() string { return "panic" }

func (k panicKernel) Run(acc *kernel.Acc) {
	if acc.ThreadIdx == k.lane {
		panic("lane fault")
	}
	acc.Sync()
	acc.Sync()
}

func TestLaunch_LanePanicDoesNotDeadlock(t *testing.T) {
	target := New(Config{Workers: 2})

	err := target.Launch(context.Background(), target.Devices()[0], panicKernel{lane: 3}, kernel.WorkDiv{Blocks: 4, LanesPerBlock: 8})
	require.ErrorIs(t, err, kernel.ErrLaunchFailed)
	assert.Contains(t, err.Error(), "lane fault")
}

func TestLaunch_InvalidWorkDiv(t *testing.T) {
	target := New(Config{})

	err := target.Launch(context.Background(), target.Devices()[0], panicKernel{}, kernel.WorkDiv{Blocks: 0, LanesPerBlock: 8})
	assert.ErrorIs(t, err, kernel.ErrInvalidWorkDiv)

	err = target.Launch(context.Background(), target.Devices()[0], panicKernel{}, kernel.WorkDiv{Blocks: 1, LanesPerBlock: kernel.MaxLanesPerBlock + 1})
	assert.ErrorIs(t, err, kernel.ErrInvalidWorkDiv)
}

func TestFit(t *testing.T) {
	target := New(Config{Workers: 1})

	assert.Equal(t, kernel.WorkDiv{Blocks: 1, LanesPerBlock: 1}, target.Fit(kernel.WorkDiv{}))
	assert.Equal(t, kernel.WorkDiv{Blocks: 5, LanesPerBlock: kernel.MaxLanesPerBlock},
		target.Fit(kernel.WorkDiv{Blocks: 5, LanesPerBlock: 4096}))
}

func TestBarrier_Phases(t *testing.T) {
	const lanes = 6
	b := newBarrier(lanes)

	var phase [3]atomic.Int32
	done := make(chan struct{})
	for i := 0; i < lanes; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for p := range phase {
				phase[p].Add(1)
				b.Wait()
				// Every lane must have arrived at phase p before anyone leaves it.
				if got := phase[p].Load(); got != lanes {
					t.Errorf("phase %d: %d lanes arrived", p, got)
				}
			}
		}()
	}
	for i := 0; i < lanes; i++ {
		<-done
	}
}

func TestBarrier_BreakReleasesWaiters(t *testing.T) {
	b := newBarrier(3)

	released := make(chan any, 2)
	for i := 0; i < 2; i++ {
		go func() {
			defer func() { released <- recover() }()
			b.Wait()
		}()
	}

	b.Break("gone")
	for i := 0; i < 2; i++ {
		assert.Equal(t, errBarrierBroken, <-released)
	}
	assert.Equal(t, "gone", b.Cause())
}
