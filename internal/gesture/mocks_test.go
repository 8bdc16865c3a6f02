// FILE: ./internal/gesture/mocks_test.go
package gesture

import (
	"context"
	"sync"
	"testing"

	"github.com/xkilldash9x/humanswipe/api/schemas"
)

// sequenceSource replays a fixed list of uniform values, cycling when exhausted.
// Intn is derived from Float64 the same way rand.Rand scales a draw.
type sequenceSource struct {
	values []float64
	pos    int
}

func newSequenceSource(values ...float64) *sequenceSource {
	return &sequenceSource{values: values}
}

// constSource always yields 0, which makes every Gaussian draw return its mean
// and every UniformInt return its minimum.
func constSource() *sequenceSource {
	return newSequenceSource(0)
}

func (s *sequenceSource) Float64() float64 {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

func (s *sequenceSource) Intn(n int) int {
	return int(s.Float64() * float64(n))
}

// performCall captures a single Perform invocation.
type performCall struct {
	durationMs int
	points     []schemas.Point
}

// mockExecutor implements Executor for testing.
type mockExecutor struct {
	t         *testing.T
	mu        sync.Mutex
	calls     []performCall
	returnErr error

	// MockPerform replaces the default behavior when set.
	MockPerform func(ctx context.Context, durationMs int, points []schemas.Point) error
}

func newMockExecutor(t *testing.T) *mockExecutor {
	return &mockExecutor{t: t}
}

func (m *mockExecutor) Perform(ctx context.Context, durationMs int, points []schemas.Point) error {
	if m.MockPerform != nil {
		return m.MockPerform(ctx, durationMs, points)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]schemas.Point, len(points))
	copy(cp, points)
	m.calls = append(m.calls, performCall{durationMs: durationMs, points: cp})

	if m.returnErr != nil {
		return m.returnErr
	}
	return ctx.Err()
}

func (m *mockExecutor) getCalls() []performCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]performCall, len(m.calls))
	copy(out, m.calls)
	return out
}
