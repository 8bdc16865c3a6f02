package gesture

import "github.com/xkilldash9x/humanswipe/api/schemas"

// Direction is the tagged outcome of the direction selector.
type Direction = schemas.SwipeDirection

const (
	Forward = schemas.SwipeForward
	Reverse = schemas.SwipeReverse
)

// Opposite returns the other direction.
func Opposite(d Direction) Direction {
	if d == Reverse {
		return Forward
	}
	return Reverse
}

// ChooseDirection keeps the intended direction with probability bias and
// flips it otherwise, so long sessions are not perfectly monotonic.
func ChooseDirection(src Source, intent Direction, bias float64) Direction {
	if src.Float64() < bias {
		return intent
	}
	return Opposite(intent)
}

// ParseDirection maps command-line names onto a Direction. The second result is
// false for unknown names.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "forward", "next", "up":
		return Forward, true
	case "reverse", "previous", "down":
		return Reverse, true
	}
	return "", false
}
