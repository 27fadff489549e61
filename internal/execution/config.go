package execution

import (
	"fmt"

	"github.com/born-ml/fold/internal/kernel"
)

// DefaultLanesPerBlock is the block size used when none is configured.
const DefaultLanesPerBlock = 256

// Config holds the launch-geometry constants of an Executor.
type Config struct {
	// LanesPerBlock is the number of lanes in one block (1..1024).
	LanesPerBlock int `mapstructure:"lanes_per_block"`
	// MaxBlocks caps the grid; lanes then stride over the rest. 0 = no cap.
	MaxBlocks int `mapstructure:"max_blocks"`
	// RelaxedOrdering allows block partials to be combined in any association.
	RelaxedOrdering bool `mapstructure:"relaxed_ordering"`
}

// DefaultConfig returns 256-lane blocks, an uncapped grid and ordered combination.
func DefaultConfig() Config {
	return Config{LanesPerBlock: DefaultLanesPerBlock}
}

// Validate reports whether the configuration can be launched.
func (c Config) Validate() error {
	if c.LanesPerBlock < 1 || c.LanesPerBlock > kernel.MaxLanesPerBlock {
		return fmt.Errorf("%w: lanes per block %d not in [1, %d]", ErrInvalidConfig, c.LanesPerBlock, kernel.MaxLanesPerBlock)
	}
	if c.MaxBlocks < 0 {
		return fmt.Errorf("%w: negative max blocks %d", ErrInvalidConfig, c.MaxBlocks)
	}
	return nil
}
