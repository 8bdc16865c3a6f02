// internal/device/recorder.go
package device

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	json "github.com/json-iterator/go"
	"github.com/xkilldash9x/humanswipe/api/schemas"
	"github.com/xkilldash9x/humanswipe/internal/gesture"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Recorder is an Executor that writes every gesture as one JSON line instead
// of touching a device. It backs dry runs and the gesture log.
type Recorder struct {
	mu        sync.Mutex
	w         io.Writer
	sessionID string
	device    string
	seq       int
	now       func() time.Time
}

var _ gesture.Executor = (*Recorder)(nil)

// NewRecorder writes records to w. sessionID and device are copied into every record.
func NewRecorder(w io.Writer, sessionID, device string) *Recorder {
	return &Recorder{
		w:         w,
		sessionID: sessionID,
		device:    device,
		now:       time.Now,
	}
}

// NewRecordFile opens a gesture log at path that rotates once it reaches
// maxSizeMB. Writes are serialized, so several recorders may share it.
func NewRecordFile(path string, maxSizeMB int) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 3,
	}
}

// Perform records the gesture. The direction is inferred from the path.
func (r *Recorder) Perform(ctx context.Context, durationMs int, points []schemas.Point) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.Record(schemas.SwipeRecord{
		Direction:  inferDirection(points),
		DurationMs: durationMs,
		Path:       schemas.Path(points),
	})
}

// Record stamps rec with the session, device, next sequence number and the
// current time, then writes it.
func (r *Recorder) Record(rec schemas.SwipeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	rec.SessionID = r.sessionID
	rec.Device = r.device
	rec.Sequence = r.seq
	rec.Timestamp = r.now().UTC()

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("recorder: failed to encode gesture %d: %w", rec.Sequence, err)
	}
	line = append(line, '\n')
	if _, err := r.w.Write(line); err != nil {
		return fmt.Errorf("recorder: failed to write gesture %d: %w", rec.Sequence, err)
	}
	return nil
}

// Count returns the number of records written so far.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// inferDirection classifies a mostly vertical path: upward travel advances the
// feed, downward travel goes back. Other paths have no direction.
func inferDirection(points []schemas.Point) schemas.SwipeDirection {
	if len(points) < 2 {
		return ""
	}
	first, last := points[0], points[len(points)-1]
	dx, dy := float64(last.X-first.X), float64(last.Y-first.Y)
	if math.Abs(dy) <= math.Abs(dx) {
		return ""
	}
	if dy < 0 {
		return schemas.SwipeForward
	}
	return schemas.SwipeReverse
}

// Tee performs every gesture on a primary executor and, when that succeeds,
// on each secondary one. It is used to log gestures sent to a real device.
type Tee struct {
	primary     gesture.Executor
	secondaries []gesture.Executor
}

// NewTee creates a Tee.
func NewTee(primary gesture.Executor, secondaries ...gesture.Executor) *Tee {
	return &Tee{primary: primary, secondaries: secondaries}
}

// Perform implements gesture.Executor.
func (t *Tee) Perform(ctx context.Context, durationMs int, points []schemas.Point) error {
	if err := t.primary.Perform(ctx, durationMs, points); err != nil {
		return err
	}
	for _, s := range t.secondaries {
		if err := s.Perform(ctx, durationMs, points); err != nil {
			return err
		}
	}
	return nil
}
