// internal/device/adb.go
package device

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xkilldash9x/humanswipe/api/schemas"
	"github.com/xkilldash9x/humanswipe/internal/config"
	"github.com/xkilldash9x/humanswipe/internal/gesture"
	"go.uber.org/zap"
)

// Allows mocking exec.CommandContext in tests.
var execCommandContext = exec.CommandContext

var sizePattern = regexp.MustCompile(`(\d+)x(\d+)`)

// ADB performs gestures on an Android device by streaming `input motionevent`
// commands through a single `adb shell` invocation.
type ADB struct {
	path    string
	serial  string
	timeout time.Duration
	logger  *zap.Logger
}

var _ gesture.Executor = (*ADB)(nil)

// NewADB creates an executor for the device selected by cfg.Serial.
func NewADB(cfg config.DeviceConfig, logger *zap.Logger) *ADB {
	return NewADBForSerial(cfg, cfg.Serial, logger)
}

// NewADBForSerial creates an executor for a specific device, ignoring cfg.Serial.
func NewADBForSerial(cfg config.DeviceConfig, serial string, logger *zap.Logger) *ADB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ADB{
		path:    cfg.ADBPath,
		serial:  serial,
		timeout: cfg.Timeout,
		logger:  logger.Named("adb").With(zap.String("serial", serial)),
	}
}

// Serial returns the device serial, empty when adb picks the only attached device.
func (a *ADB) Serial() string {
	return a.serial
}

// Perform drags through points over durationMs. The move events are spaced
// evenly in time, so the eased spacing of the points sets the finger's speed.
func (a *ADB) Perform(ctx context.Context, durationMs int, points []schemas.Point) error {
	if len(points) < 2 {
		return fmt.Errorf("adb: a swipe needs at least two points, got %d", len(points))
	}
	script := MotionScript(durationMs, points)
	_, err := a.shell(ctx, time.Duration(durationMs)*time.Millisecond, script)
	return err
}

// ScreenSize queries the display size with `wm size`. An override size, when
// present, wins over the physical size.
func (a *ADB) ScreenSize(ctx context.Context) (gesture.Screen, error) {
	out, err := a.shell(ctx, 0, "wm size")
	if err != nil {
		return gesture.Screen{}, err
	}
	return parseScreenSize(string(out))
}

func parseScreenSize(out string) (gesture.Screen, error) {
	matches := sizePattern.FindAllStringSubmatch(out, -1)
	if len(matches) == 0 {
		return gesture.Screen{}, fmt.Errorf("adb: unrecognized wm size output %q", strings.TrimSpace(out))
	}
	// wm prints the physical size first and the override, if any, after it.
	m := matches[len(matches)-1]
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	if w <= 0 || h <= 0 {
		return gesture.Screen{}, fmt.Errorf("adb: invalid screen size %dx%d", w, h)
	}
	return gesture.Screen{Width: w, Height: h}, nil
}

// shell runs script on the device. The configured timeout is extended by extra,
// the time the script itself is expected to take.
func (a *ADB) shell(ctx context.Context, extra time.Duration, script string) ([]byte, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout+extra)
		defer cancel()
	}

	var args []string
	if a.serial != "" {
		args = append(args, "-s", a.serial)
	}
	args = append(args, "shell", script)

	cmd := execCommandContext(ctx, a.path, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Error("adb shell failed.", zap.String("output", string(output)), zap.Error(err))
		}
		return output, fmt.Errorf("adb shell failed: %w. Output: %s", err, strings.TrimSpace(string(output)))
	}
	return output, nil
}

// MotionScript renders points as a shell script of DOWN, MOVE and UP motion
// events with equal sleeps in between, so the whole script takes about durationMs.
func MotionScript(durationMs int, points []schemas.Point) string {
	step := float64(durationMs) / float64(len(points)-1) / 1000

	var b strings.Builder
	fmt.Fprintf(&b, "input motionevent DOWN %d %d", points[0].X, points[0].Y)
	for _, p := range points[1:] {
		fmt.Fprintf(&b, ";sleep %.3f;input motionevent MOVE %d %d", step, p.X, p.Y)
	}
	last := points[len(points)-1]
	fmt.Fprintf(&b, ";input motionevent UP %d %d", last.X, last.Y)
	return b.String()
}
