package gesture

import "github.com/xkilldash9x/humanswipe/internal/config"

// RandomizeEndpoints nudges both ends of a gesture so repeated swipes between the
// same two screen zones never land on identical pixels. The spread for each axis
// depends on whether the gesture is mostly vertical or mostly horizontal.
func RandomizeEndpoints(src Source, cfg config.GestureConfig, start, end Vector2D) (Vector2D, Vector2D) {
	spread := cfg.EndpointHorizontalSpread
	if isVerticalDominant(start, end) {
		spread = cfg.EndpointVerticalSpread
	}

	newStart := Vector2D{
		X: start.X + Gaussian(src, 0, spread.X),
		Y: start.Y + Gaussian(src, 0, spread.Y),
	}
	newEnd := Vector2D{
		X: end.X + Gaussian(src, 0, spread.X),
		Y: end.Y + Gaussian(src, 0, spread.Y),
	}
	return newStart, newEnd
}
