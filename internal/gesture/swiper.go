// internal/gesture/swiper.go
package gesture

import (
	"context"
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/xkilldash9x/humanswipe/api/schemas"
	"go.uber.org/zap"
)

// Swiper synthesizes gestures and hands them to an Executor.
type Swiper struct {
	synth    *Synthesizer
	executor Executor
	logger   *zap.Logger
}

// NewSwiper wires a synthesizer to an executor.
func NewSwiper(synth *Synthesizer, executor Executor, logger *zap.Logger) *Swiper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Swiper{
		synth:    synth,
		executor: executor,
		logger:   logger.Named("swiper"),
	}
}

// Synthesizer exposes the underlying synthesizer, e.g. for delay sampling.
func (s *Swiper) Synthesizer() *Synthesizer {
	return s.synth
}

// Swipe synthesizes a gesture from start to end and performs it.
// The gesture is returned even when the executor fails so callers can log it.
func (s *Swiper) Swipe(ctx context.Context, start, end Vector2D, minMs, maxMs int) (*schemas.GestureSpec, error) {
	spec, err := s.synth.Synthesize(start, end, minMs, maxMs)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return spec, ctx.Err()
	}

	if ce := s.logger.Check(zap.DebugLevel, "Gesture path"); ce != nil {
		raw, err := json.Marshal(spec.Path)
		if err == nil {
			ce.Write(zap.ByteString("path", raw))
		}
	}

	if err := s.executor.Perform(ctx, spec.DurationMs, spec.Path); err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("Swiper: executor failed to perform gesture", zap.Error(err))
		}
		return spec, fmt.Errorf("gesture: perform swipe: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Humanized swipe from (%.0f,%.0f) to (%.0f,%.0f) in %dms, points=%d",
		start.X, start.Y, end.X, end.Y, spec.DurationMs, len(spec.Path)))
	return spec, nil
}

// Advance performs one feed navigation swipe. The intended direction is kept
// with the configured forward bias and flipped otherwise; the direction that
// was actually performed is returned.
func (s *Swiper) Advance(ctx context.Context, screen Screen, intent Direction) (Direction, *schemas.GestureSpec, error) {
	dir := s.synth.ChooseDirection(intent)
	start, end := s.synth.PlanFeedSwipe(screen, dir)

	cfg := s.synth.Config()
	spec, err := s.Swipe(ctx, start, end, cfg.MinDurationMs, cfg.MaxDurationMs)
	if err != nil {
		return dir, spec, err
	}
	if dir != intent {
		s.logger.Debug("Swiper: direction flipped against intent",
			zap.String("intent", string(intent)),
			zap.String("performed", string(dir)))
	}
	return dir, spec, nil
}
