package gesture

import "errors"

var (
	// ErrInvalidRange reports an empty or inverted numeric range (durations, sample counts, probabilities).
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidInput reports coordinates the synthesizer cannot build a gesture from.
	ErrInvalidInput = errors.New("invalid input")
)
