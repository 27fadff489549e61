//go:build !windows

package webgpu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fold/internal/kernel"
)

func TestNew_Unavailable(t *testing.T) {
	target, err := New()
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, target)
}

func TestStubTarget(t *testing.T) {
	var target Target
	assert.Equal(t, kernel.WebGPU, target.Kind())
	assert.Equal(t, "webgpu", target.Name())
	assert.Empty(t, target.Devices())
	assert.Equal(t, kernel.WorkDiv{Blocks: 3, LanesPerBlock: workgroupSize}, target.Fit(kernel.WorkDiv{Blocks: 3, LanesPerBlock: 1}))

	err := target.Launch(context.Background(), kernel.Device{Kind: kernel.WebGPU}, nil, kernel.WorkDiv{Blocks: 1, LanesPerBlock: 1})
	require.ErrorIs(t, err, ErrUnavailable)
}
