// internal/gesture/interface.go
package gesture

import (
	"context"

	"github.com/xkilldash9x/humanswipe/api/schemas"
)

// Executor performs a timed multi-point swipe on a touch device.
// The synthesizer has no knowledge of how the swipe is physically delivered.
type Executor interface {
	// Perform drags one finger through points, in order, over durationMs.
	Perform(ctx context.Context, durationMs int, points []schemas.Point) error
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, durationMs int, points []schemas.Point) error

// Perform calls f.
func (f ExecutorFunc) Perform(ctx context.Context, durationMs int, points []schemas.Point) error {
	return f(ctx, durationMs, points)
}
