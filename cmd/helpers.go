// File: cmd/helpers.go
package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xkilldash9x/humanswipe/internal/device"
	"github.com/xkilldash9x/humanswipe/internal/gesture"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// recordFileMaxSizeMB is the rotation threshold of the gesture record file.
const recordFileMaxSizeMB = 50

// parsePoint parses "x,y" into a screen position.
func parsePoint(s string) (gesture.Vector2D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return gesture.Vector2D{}, fmt.Errorf("invalid point %q: expected \"x,y\"", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return gesture.Vector2D{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return gesture.Vector2D{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return gesture.Vector2D{X: x, Y: y}, nil
}

// newSynthesizer builds a synthesizer from configuration. A zero seed draws
// from a time-seeded source.
func (a *app) newSynthesizer(seed int64, logger *zap.Logger) *gesture.Synthesizer {
	var src gesture.Source
	if seed != 0 {
		src = gesture.NewLockedSource(seed)
	}
	return gesture.New(a.cfg.Gesture(), logger, src)
}

// recordSink is the destination of gesture records, shared by every device
// driven in one invocation.
type recordSink struct {
	w      io.Writer
	closer io.Closer
}

// openRecordSink returns the configured record file, or a locked out for dry
// runs without one. Real runs without a record file are not recorded (nil).
func (a *app) openRecordSink(out io.Writer) *recordSink {
	dev := a.cfg.Device()
	switch {
	case dev.RecordFile != "":
		f := device.NewRecordFile(dev.RecordFile, recordFileMaxSizeMB)
		return &recordSink{w: f, closer: f}
	case dev.DryRun:
		return &recordSink{w: zapcore.Lock(zapcore.AddSync(out))}
	}
	return nil
}

func (s *recordSink) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// deviceTarget is the executor for one device. adb is nil for dry runs.
type deviceTarget struct {
	executor gesture.Executor
	adb      *device.ADB
}

// newDeviceTarget selects where gestures go. Dry runs only record. Real runs
// go through adb and are additionally recorded when a sink is open.
func (a *app) newDeviceTarget(serial, sessionID string, sink *recordSink, logger *zap.Logger) *deviceTarget {
	var recorder *device.Recorder
	if sink != nil {
		recorder = device.NewRecorder(sink.w, sessionID, serial)
	}

	dev := a.cfg.Device()
	if dev.DryRun {
		return &deviceTarget{executor: recorder}
	}

	adb := device.NewADBForSerial(dev, serial, logger)
	if recorder == nil {
		return &deviceTarget{executor: adb, adb: adb}
	}
	return &deviceTarget{executor: device.NewTee(adb, recorder), adb: adb}
}

// screen returns the configured screen size, or the size reported by the
// device when detect is set and a device is attached.
func (a *app) screen(ctx context.Context, target *deviceTarget, detect bool) (gesture.Screen, error) {
	if detect && target.adb != nil {
		return target.adb.ScreenSize(ctx)
	}
	dev := a.cfg.Device()
	return gesture.Screen{Width: dev.ScreenWidth, Height: dev.ScreenHeight}, nil
}

// durationBounds resolves --min/--max, falling back to the configured gesture range.
func (a *app) durationBounds(minMs, maxMs int) (int, int) {
	g := a.cfg.Gesture()
	if minMs <= 0 {
		minMs = g.MinDurationMs
	}
	if maxMs <= 0 {
		maxMs = g.MaxDurationMs
	}
	return minMs, maxMs
}
