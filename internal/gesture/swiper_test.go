package gesture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/humanswipe/api/schemas"
	"github.com/xkilldash9x/humanswipe/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedSwiper(t *testing.T, synth *Synthesizer) (*Swiper, *mockExecutor, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	exec := newMockExecutor(t)
	return NewSwiper(synth, exec, zap.New(core)), exec, logs
}

func TestSwiper_Swipe(t *testing.T) {
	swiper, exec, logs := newObservedSwiper(t, NewTestSynthesizer(1))
	start, end := Vector2D{X: 500, Y: 1400}, Vector2D{X: 525, Y: 600}

	spec, err := swiper.Swipe(context.Background(), start, end, 230, 420)
	require.NoError(t, err)

	calls := exec.getCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, spec.DurationMs, calls[0].durationMs)
	assert.Equal(t, []schemas.Point(spec.Path), calls[0].points)

	summary := logs.FilterMessageSnippet("Humanized swipe from (500,1400) to (525,600)")
	require.Equal(t, 1, summary.Len())
	assert.Equal(t, zap.InfoLevel, summary.All()[0].Level)
	assert.Equal(t, "swiper", summary.All()[0].LoggerName)

	assert.Equal(t, 1, logs.FilterMessage("Gesture path").Len(), "path is logged at debug level")
}

func TestSwiper_SwipeExecutorError(t *testing.T) {
	swiper, exec, logs := newObservedSwiper(t, NewTestSynthesizer(2))
	deviceErr := errors.New("device offline")
	exec.returnErr = deviceErr

	spec, err := swiper.Swipe(context.Background(), Vector2D{X: 100, Y: 900}, Vector2D{X: 100, Y: 300}, 230, 420)
	require.Error(t, err)
	assert.ErrorIs(t, err, deviceErr)
	assert.NotNil(t, spec, "the synthesized gesture is still returned")
	assert.Equal(t, 1, logs.FilterMessageSnippet("executor failed").Len())
	assert.Zero(t, logs.FilterMessageSnippet("Humanized swipe").Len())
}

func TestSwiper_SwipeCancelledContext(t *testing.T) {
	swiper, exec, _ := newObservedSwiper(t, NewTestSynthesizer(3))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := swiper.Swipe(ctx, Vector2D{X: 100, Y: 900}, Vector2D{X: 100, Y: 300}, 230, 420)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, exec.getCalls())
}

func TestSwiper_SwipeInvalidInput(t *testing.T) {
	swiper, exec, _ := newObservedSwiper(t, NewTestSynthesizer(4))

	spec, err := swiper.Swipe(context.Background(), Vector2D{X: 5, Y: 5}, Vector2D{X: 5, Y: 5}, 230, 420)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, spec)
	assert.Empty(t, exec.getCalls())
}

func TestSwiper_Advance(t *testing.T) {
	screen := Screen{Width: 1080, Height: 2400}

	newSwiper := func(bias float64) (*Swiper, *mockExecutor) {
		cfg := config.DefaultGestureConfig()
		cfg.ForwardBias = bias
		swiper, exec, _ := newObservedSwiper(t, New(cfg, nil, NewLockedSource(8)))
		return swiper, exec
	}

	t.Run("keeps intent", func(t *testing.T) {
		swiper, exec := newSwiper(1)
		for _, intent := range []Direction{Forward, Reverse} {
			dir, spec, err := swiper.Advance(context.Background(), screen, intent)
			require.NoError(t, err)
			assert.Equal(t, intent, dir)
			assertValidGesture(t, spec, FromPoint(spec.Path.First()), FromPoint(spec.Path.Last()), 230, 420)
			if intent == Forward {
				assert.Greater(t, spec.Path.First().Y, spec.Path.Last().Y, "forward swipes move up")
			} else {
				assert.Less(t, spec.Path.First().Y, spec.Path.Last().Y, "reverse swipes move down")
			}
		}
		assert.Len(t, exec.getCalls(), 2)
	})

	t.Run("flips against intent", func(t *testing.T) {
		swiper, _ := newSwiper(0)
		dir, spec, err := swiper.Advance(context.Background(), screen, Forward)
		require.NoError(t, err)
		assert.Equal(t, Reverse, dir)
		assert.Less(t, spec.Path.First().Y, spec.Path.Last().Y)
	})

	t.Run("reports executor failure with the chosen direction", func(t *testing.T) {
		swiper, exec := newSwiper(1)
		exec.MockPerform = func(context.Context, int, []schemas.Point) error {
			return errors.New("adb: exit status 1")
		}
		dir, spec, err := swiper.Advance(context.Background(), screen, Reverse)
		require.Error(t, err)
		assert.Equal(t, Reverse, dir)
		assert.NotNil(t, spec)
	})
}

func TestExecutorFunc(t *testing.T) {
	var got int
	var exec Executor = ExecutorFunc(func(_ context.Context, durationMs int, points []schemas.Point) error {
		got = durationMs + len(points)
		return nil
	})
	require.NoError(t, exec.Perform(context.Background(), 300, []schemas.Point{{X: 1}, {X: 2}}))
	assert.Equal(t, 302, got)
}
