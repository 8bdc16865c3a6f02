// internal/gesture/vector.go
package gesture

import (
	"math"

	"github.com/xkilldash9x/humanswipe/api/schemas"
)

// Vector2D is a real-valued screen position. Curve math runs on Vector2D and
// is only rounded to integer pixels when a touch point is emitted.
type Vector2D struct {
	X float64
	Y float64
}

// Add performs vector addition, returning `v + other`.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub performs vector subtraction, returning `v - other`.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul scales the vector by scalar.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{X: v.X * scalar, Y: v.Y * scalar}
}

// Dist calculates the Euclidean distance between v and other.
func (v Vector2D) Dist(other Vector2D) float64 {
	return math.Hypot(v.X-other.X, v.Y-other.Y)
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vector2D) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Round snaps the vector to the nearest integer pixel (halves round away from zero).
func (v Vector2D) Round() schemas.Point {
	return schemas.Point{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

// FromPoint lifts an integer pixel into real-valued space.
func FromPoint(p schemas.Point) Vector2D {
	return Vector2D{X: float64(p.X), Y: float64(p.Y)}
}

// isVerticalDominant reports whether travel from start to end is mostly along Y.
// Ties count as horizontal.
func isVerticalDominant(start, end Vector2D) bool {
	d := end.Sub(start)
	return math.Abs(d.Y) > math.Abs(d.X)
}
