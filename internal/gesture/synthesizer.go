// internal/gesture/synthesizer.go
package gesture

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/xkilldash9x/humanswipe/api/schemas"
	"github.com/xkilldash9x/humanswipe/internal/config"
	"go.uber.org/zap"
)

// Screen is the size of the touch surface in pixels.
type Screen struct {
	Width  int
	Height int
}

// Synthesizer turns start/end coordinates into humanized gesture specs.
type Synthesizer struct {
	// mu guards rng. Every public method that draws random numbers holds it
	// for the whole draw sequence so one gesture's draws are never interleaved
	// with another's.
	mu     sync.Mutex
	cfg    config.GestureConfig
	rng    Source
	logger *zap.Logger
}

// New creates a Synthesizer. A nil src is replaced by a time-seeded source.
func New(cfg config.GestureConfig, logger *zap.Logger, src Source) *Synthesizer {
	if src == nil {
		src = NewTimeSeededSource()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{
		cfg:    cfg,
		rng:    src,
		logger: logger.Named("synthesizer"),
	}
}

// NewTestSynthesizer creates a Synthesizer with default tuning and a fixed seed.
func NewTestSynthesizer(seed int64) *Synthesizer {
	return New(config.DefaultGestureConfig(), zap.NewNop(), NewLockedSource(seed))
}

// Config returns the tuning the synthesizer was built with.
func (s *Synthesizer) Config() config.GestureConfig {
	return s.cfg
}

// Synthesize builds a gesture from start to end lasting between minMs and maxMs.
// The pipeline is duration, control points, sample count, path sampling,
// hesitation and compaction. All preconditions are checked before the first
// random draw; past validation the call cannot fail.
func (s *Synthesizer) Synthesize(start, end Vector2D, minMs, maxMs int) (*schemas.GestureSpec, error) {
	if err := s.validate(start, end, minMs, maxMs); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.cfg
	duration := SynthesizeDuration(s.rng, cfg, minMs, maxMs)
	ctrl := ControlPoints(s.rng, cfg, start, end)
	sampleCount := UniformInt(s.rng, cfg.MinSamples, cfg.MaxSamples)
	path := SamplePath(s.rng, start, ctrl, end, sampleCount, cfg.SampleJitterStdDev)
	path, outcome := MaybeInsertHesitation(s.rng, cfg, path)
	path = ensureSpan(Compact(path), start.Round(), end.Round())

	s.logger.Debug("Gesture synthesized",
		zap.Int("duration_ms", duration),
		zap.Int("samples", sampleCount),
		zap.Stringer("hesitation", outcome.Kind),
		zap.Int("points", len(path)))

	return &schemas.GestureSpec{DurationMs: duration, Path: path}, nil
}

func (s *Synthesizer) validate(start, end Vector2D, minMs, maxMs int) error {
	if !start.IsFinite() || !end.IsFinite() {
		return fmt.Errorf("gesture: non-finite coordinates %v -> %v: %w", start, end, ErrInvalidInput)
	}
	if start.Round() == end.Round() {
		return fmt.Errorf("gesture: start and end resolve to the same pixel %s: %w", start.Round(), ErrInvalidInput)
	}
	if minMs <= 0 || minMs > maxMs {
		return fmt.Errorf("gesture: duration bounds [%d, %d]: %w", minMs, maxMs, ErrInvalidRange)
	}
	if s.cfg.MinSamples < 1 || s.cfg.MinSamples > s.cfg.MaxSamples {
		return fmt.Errorf("gesture: sample count range [%d, %d]: %w", s.cfg.MinSamples, s.cfg.MaxSamples, ErrInvalidRange)
	}
	return nil
}

// ensureSpan restores a two-point path if compaction collapsed it to one point.
// start and end are distinct pixels, so at least one differs from the survivor.
func ensureSpan(path schemas.Path, start, end schemas.Point) schemas.Path {
	switch {
	case len(path) >= 2:
		return path
	case len(path) == 0:
		return schemas.Path{start, end}
	case path[0] != end:
		return append(path, end)
	default:
		return schemas.Path{start, end}
	}
}

// PlanFeedSwipe picks the endpoints of a feed navigation swipe on screen.
// Forward swipes travel from the lower edge band up to the upper one, Reverse
// swipes the other way. The lane is placed at width/U[LaneDivisorMin, LaneDivisorMax],
// the finger drifts sideways by N(0, LaneDriftStdDev), and both endpoints are
// then randomized.
func (s *Synthesizer) PlanFeedSwipe(screen Screen, dir Direction) (Vector2D, Vector2D) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.cfg
	w, h := float64(screen.Width), float64(screen.Height)

	laneX := w / UniformFloat(s.rng, cfg.LaneDivisorMin, cfg.LaneDivisorMax)
	startY, endY := h*cfg.LowerEdgeFraction, h*cfg.UpperEdgeFraction
	if dir == Reverse {
		startY, endY = endY, startY
	}
	endX := laneX + Gaussian(s.rng, 0, cfg.LaneDriftStdDev)

	start, end := RandomizeEndpoints(s.rng, cfg, Vector2D{X: laneX, Y: startY}, Vector2D{X: endX, Y: endY})
	return clampToScreen(start, screen), clampToScreen(end, screen)
}

func clampToScreen(v Vector2D, screen Screen) Vector2D {
	return Vector2D{
		X: math.Max(0, math.Min(float64(screen.Width-1), v.X)),
		Y: math.Max(0, math.Min(float64(screen.Height-1), v.Y)),
	}
}

// ChooseDirection applies the configured forward bias to intent.
func (s *Synthesizer) ChooseDirection(intent Direction) Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ChooseDirection(s.rng, intent, s.cfg.ForwardBias)
}

// ViewingDelay samples the dwell time before the next swipe, clamped to [minMs, maxMs].
func (s *Synthesizer) ViewingDelay(minMs, maxMs int) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Duration(ViewingDelay(s.rng, s.cfg, minMs, maxMs)) * time.Millisecond
}

// PrePressDelay samples the pause between touching down and starting a swipe.
func (s *Synthesizer) PrePressDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Duration(PrePressDelay(s.rng, s.cfg)) * time.Millisecond
}
