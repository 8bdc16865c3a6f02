package gesture

import (
	"math"

	"github.com/xkilldash9x/humanswipe/internal/config"
)

// SynthesizeDuration picks a gesture duration in [minMs, maxMs]. It draws a
// uniform midpoint first and then re-centres a Gaussian on it before clamping,
// so the histogram over many gestures is bell shaped rather than flat.
// Callers must ensure minMs <= maxMs.
func SynthesizeDuration(src Source, cfg config.GestureConfig, minMs, maxMs int) int {
	d := UniformInt(src, minMs, maxMs)
	d = int(math.Round(Gaussian(src, float64(d), cfg.DurationStdDevMs)))
	return clamp(d, minMs, maxMs)
}

// ViewingDelay models how long a viewer stays on an item before swiping on,
// N(ViewingDelayMeanMs, ViewingDelayStdDevMs) clamped to [minMs, maxMs].
func ViewingDelay(src Source, cfg config.GestureConfig, minMs, maxMs int) int {
	d := int(math.Round(Gaussian(src, cfg.ViewingDelayMeanMs, cfg.ViewingDelayStdDevMs)))
	return clamp(d, minMs, maxMs)
}

// PrePressDelay is the short pause between the finger landing and the swipe starting.
func PrePressDelay(src Source, cfg config.GestureConfig) int {
	return UniformInt(src, cfg.PrePressMinMs, cfg.PrePressMaxMs)
}
