package schemas

import (
	"fmt"
	"time"
)

// -- Touch Geometry Schemas --

// Point is a single touch position in integer screen pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Path is the chronological sequence of touch positions of one continuous gesture.
type Path []Point

// First returns the first point of the path. The path must not be empty.
func (p Path) First() Point { return p[0] }

// Last returns the final point of the path. The path must not be empty.
func (p Path) Last() Point { return p[len(p)-1] }

// HasConsecutiveDuplicates reports whether any point equals its immediate predecessor.
func (p Path) HasConsecutiveDuplicates() bool {
	for i := 1; i < len(p); i++ {
		if p[i] == p[i-1] {
			return true
		}
	}
	return false
}

// -- Gesture Schemas --

// GestureSpec is a fully synthesized swipe, ready to hand to an executor.
type GestureSpec struct {
	DurationMs int  `json:"duration_ms"`
	Path       Path `json:"path"`
}

// Duration returns the total gesture duration as a time.Duration.
func (g GestureSpec) Duration() time.Duration {
	return time.Duration(g.DurationMs) * time.Millisecond
}

// SwipeDirection names the intent of a feed navigation gesture.
type SwipeDirection string

const (
	// SwipeForward advances the feed (finger moves bottom to top).
	SwipeForward SwipeDirection = "forward"
	// SwipeReverse returns to the previous item (finger moves top to bottom).
	SwipeReverse SwipeDirection = "reverse"
)

// SwipeRecord is the serialized form of a dispatched gesture, used by the
// recorder sink and the `generate` command.
type SwipeRecord struct {
	SessionID  string         `json:"session_id,omitempty"`
	Device     string         `json:"device,omitempty"`
	Sequence   int            `json:"seq"`
	Direction  SwipeDirection `json:"direction,omitempty"`
	DurationMs int            `json:"duration_ms"`
	Path       Path           `json:"path"`
	Timestamp  time.Time      `json:"timestamp"`
}
