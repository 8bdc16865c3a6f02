package gesture

import (
	"math"

	"github.com/xkilldash9x/humanswipe/api/schemas"
	"github.com/xkilldash9x/humanswipe/internal/config"
)

// EaseInOutCubic maps linear progress in [0,1] onto a slow-fast-slow profile.
// Uniform input steps therefore bunch up near both ends of the curve.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// CubicBezier evaluates one axis of the cubic Bezier curve (p0, p1, p2, p3) at t.
func CubicBezier(p0, p1, p2, p3, t float64) float64 {
	omt := 1.0 - t
	return omt*omt*omt*p0 +
		3*omt*omt*t*p1 +
		3*omt*t*t*p2 +
		t*t*t*p3
}

// ControlPair holds the two interior control points of a cubic Bezier.
type ControlPair struct {
	First  Vector2D
	Second Vector2D
}

// ControlPoints places the interior control points at the near and far ratios
// of the start-to-end displacement, then scatters them. The axis perpendicular
// to the dominant travel direction gets the wider spread, which bends the curve
// without pulling it off course.
func ControlPoints(src Source, cfg config.GestureConfig, start, end Vector2D) ControlPair {
	d := end.Sub(start)

	sdX, sdY := cfg.ControlAlongStdDev, cfg.ControlCrossStdDev
	if isVerticalDominant(start, end) {
		sdX, sdY = cfg.ControlCrossStdDev, cfg.ControlAlongStdDev
	}

	off1 := Vector2D{X: Gaussian(src, 0, sdX), Y: Gaussian(src, 0, sdY)}
	off2 := Vector2D{X: Gaussian(src, 0, sdX), Y: Gaussian(src, 0, sdY)}

	return ControlPair{
		First:  start.Add(d.Mul(cfg.ControlNearRatio)).Add(off1),
		Second: start.Add(d.Mul(cfg.ControlFarRatio)).Add(off2),
	}
}

// SamplePath walks the eased Bezier from start to end in sampleCount steps,
// emitting sampleCount+1 rounded points. Every point gets independent Gaussian
// tremor of jitterStdDev on each axis.
func SamplePath(src Source, start Vector2D, ctrl ControlPair, end Vector2D, sampleCount int, jitterStdDev float64) schemas.Path {
	path := make(schemas.Path, 0, sampleCount+1)
	for i := 0; i <= sampleCount; i++ {
		t := EaseInOutCubic(float64(i) / float64(sampleCount))
		p := Vector2D{
			X: CubicBezier(start.X, ctrl.First.X, ctrl.Second.X, end.X, t),
			Y: CubicBezier(start.Y, ctrl.First.Y, ctrl.Second.Y, end.Y, t),
		}
		p.X += Gaussian(src, 0, jitterStdDev)
		p.Y += Gaussian(src, 0, jitterStdDev)
		path = append(path, p.Round())
	}
	return path
}
