// internal/session/runner.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xkilldash9x/humanswipe/internal/config"
	"github.com/xkilldash9x/humanswipe/internal/gesture"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Summary describes a finished (or interrupted) session.
type Summary struct {
	ID            string        `json:"id"`
	Device        string        `json:"device,omitempty"`
	Gestures      int           `json:"gestures"`
	Forward       int           `json:"forward"`
	Reverse       int           `json:"reverse"`
	TotalDuration time.Duration `json:"total_duration"`
	Started       time.Time     `json:"started"`
	Finished      time.Time     `json:"finished"`
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Runner browses a feed on one device: it waits a sampled viewing delay,
// respects the rate cap, pauses briefly before pressing, then swipes.
type Runner struct {
	id      string
	device  string
	cfg     config.SessionConfig
	swiper  *gesture.Swiper
	screen  gesture.Screen
	limiter *rate.Limiter
	sleep   SleepFunc
	logger  *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithID sets the session ID instead of generating one.
func WithID(id string) Option {
	return func(r *Runner) { r.id = id }
}

// WithDevice labels the session with a device serial.
func WithDevice(serial string) Option {
	return func(r *Runner) { r.device = serial }
}

// WithSleep replaces the context-aware timer used between gestures.
func WithSleep(fn SleepFunc) Option {
	return func(r *Runner) { r.sleep = fn }
}

// New creates a Runner. A MaxPerMinute of zero leaves the rate uncapped.
func New(cfg config.SessionConfig, swiper *gesture.Swiper, screen gesture.Screen, logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := rate.Inf
	if cfg.MaxPerMinute > 0 {
		limit = rate.Limit(cfg.MaxPerMinute / 60.0)
	}

	r := &Runner{
		id:      uuid.New().String(),
		cfg:     cfg,
		swiper:  swiper,
		screen:  screen,
		limiter: rate.NewLimiter(limit, 1),
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logger.Named("session").With(zap.String("session_id", r.id))
	if r.device != "" {
		r.logger = r.logger.With(zap.String("device", r.device))
	}
	return r
}

// ID returns the session ID.
func (r *Runner) ID() string {
	return r.id
}

// Run performs cfg.Count gestures, or runs until ctx is cancelled when Count is
// zero. The summary reflects every gesture completed before an error.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	summary := Summary{ID: r.id, Device: r.device, Started: time.Now()}

	intent, ok := gesture.ParseDirection(r.cfg.Intent)
	if !ok {
		return summary, fmt.Errorf("session: unknown intent %q", r.cfg.Intent)
	}

	synth := r.swiper.Synthesizer()
	r.logger.Info("Session started.", zap.Int("count", r.cfg.Count), zap.String("intent", string(intent)))

	for i := 0; r.cfg.Count == 0 || i < r.cfg.Count; i++ {
		if i > 0 {
			delay := synth.ViewingDelay(r.cfg.ViewingDelayMinMs, r.cfg.ViewingDelayMaxMs)
			r.logger.Debug("Viewing before next swipe.", zap.Duration("delay", delay))
			if err := r.sleep(ctx, delay); err != nil {
				return r.finish(summary, err)
			}
		}
		if err := r.limiter.Wait(ctx); err != nil {
			return r.finish(summary, err)
		}
		if err := r.sleep(ctx, synth.PrePressDelay()); err != nil {
			return r.finish(summary, err)
		}

		dir, spec, err := r.swiper.Advance(ctx, r.screen, intent)
		if err != nil {
			return r.finish(summary, fmt.Errorf("session %s: gesture %d: %w", r.id, i+1, err))
		}

		summary.Gestures++
		summary.TotalDuration += spec.Duration()
		if dir == gesture.Forward {
			summary.Forward++
		} else {
			summary.Reverse++
		}
	}
	return r.finish(summary, nil)
}

func (r *Runner) finish(summary Summary, err error) (Summary, error) {
	summary.Finished = time.Now()
	fields := []zap.Field{
		zap.Int("gestures", summary.Gestures),
		zap.Int("forward", summary.Forward),
		zap.Int("reverse", summary.Reverse),
		zap.Duration("gesture_time", summary.TotalDuration),
	}
	switch {
	case err == nil:
		r.logger.Info("Session completed.", fields...)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		r.logger.Info("Session interrupted.", fields...)
	default:
		r.logger.Error("Session failed.", append(fields, zap.Error(err))...)
	}
	return summary, err
}

// RunAll runs every runner concurrently. The first failure cancels the others;
// the summaries of all runners are returned in order regardless.
func RunAll(ctx context.Context, runners []*Runner) ([]Summary, error) {
	summaries := make([]Summary, len(runners))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range runners {
		i, r := i, r
		g.Go(func() error {
			s, err := r.Run(gctx)
			summaries[i] = s
			return err
		})
	}
	return summaries, g.Wait()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
