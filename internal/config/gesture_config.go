// File: internal/config/gesture_config.go
// This file defines the GestureConfig struct, which contains all the tunable
// parameters for the swipe synthesizer. These settings control the spread of
// every Gaussian draw in the pipeline, the sample count range, hesitation
// behavior and the timing models used between gestures.
//
// The configuration is loaded from a file (e.g., YAML) using Viper, so the
// "handwriting" of the synthesized swipes can be tuned without changing code.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// AxisSpread holds per-axis standard deviations, in pixels.
type AxisSpread struct {
	X float64 `mapstructure:"x" yaml:"x"`
	Y float64 `mapstructure:"y" yaml:"y"`
}

// GestureConfig holds the parameters of the swipe synthesis pipeline.
type GestureConfig struct {
	// Control points
	ControlAlongStdDev float64 `mapstructure:"control_along_std_dev" yaml:"control_along_std_dev"`
	ControlCrossStdDev float64 `mapstructure:"control_cross_std_dev" yaml:"control_cross_std_dev"`
	ControlNearRatio   float64 `mapstructure:"control_near_ratio" yaml:"control_near_ratio"`
	ControlFarRatio    float64 `mapstructure:"control_far_ratio" yaml:"control_far_ratio"`

	// Endpoint randomization, keyed by the dominant travel axis.
	EndpointVerticalSpread   AxisSpread `mapstructure:"endpoint_vertical_spread" yaml:"endpoint_vertical_spread"`
	EndpointHorizontalSpread AxisSpread `mapstructure:"endpoint_horizontal_spread" yaml:"endpoint_horizontal_spread"`

	// Path sampling
	SampleJitterStdDev float64 `mapstructure:"sample_jitter_std_dev" yaml:"sample_jitter_std_dev"`
	MinSamples         int     `mapstructure:"min_samples" yaml:"min_samples"`
	MaxSamples         int     `mapstructure:"max_samples" yaml:"max_samples"`

	// Hesitation
	HesitationProbability float64 `mapstructure:"hesitation_probability" yaml:"hesitation_probability"`
	HesitationMinPathLen  int     `mapstructure:"hesitation_min_path_len" yaml:"hesitation_min_path_len"`
	// Each wobble point moves one axis by a "minor" draw and the other by a "major" draw.
	HesitationMinorMean   float64 `mapstructure:"hesitation_minor_mean" yaml:"hesitation_minor_mean"`
	HesitationMinorStdDev float64 `mapstructure:"hesitation_minor_std_dev" yaml:"hesitation_minor_std_dev"`
	HesitationMajorMean   float64 `mapstructure:"hesitation_major_mean" yaml:"hesitation_major_mean"`
	HesitationMajorStdDev float64 `mapstructure:"hesitation_major_std_dev" yaml:"hesitation_major_std_dev"`

	// Duration
	DurationStdDevMs float64 `mapstructure:"duration_std_dev_ms" yaml:"duration_std_dev_ms"`
	MinDurationMs    int     `mapstructure:"min_duration_ms" yaml:"min_duration_ms"`
	MaxDurationMs    int     `mapstructure:"max_duration_ms" yaml:"max_duration_ms"`

	// Direction selection
	ForwardBias float64 `mapstructure:"forward_bias" yaml:"forward_bias"`

	// Feed navigation geometry
	LaneDivisorMin    float64 `mapstructure:"lane_divisor_min" yaml:"lane_divisor_min"`
	LaneDivisorMax    float64 `mapstructure:"lane_divisor_max" yaml:"lane_divisor_max"`
	LowerEdgeFraction float64 `mapstructure:"lower_edge_fraction" yaml:"lower_edge_fraction"`
	UpperEdgeFraction float64 `mapstructure:"upper_edge_fraction" yaml:"upper_edge_fraction"`
	LaneDriftStdDev   float64 `mapstructure:"lane_drift_std_dev" yaml:"lane_drift_std_dev"`

	// Timing between gestures
	ViewingDelayMeanMs   float64 `mapstructure:"viewing_delay_mean_ms" yaml:"viewing_delay_mean_ms"`
	ViewingDelayStdDevMs float64 `mapstructure:"viewing_delay_std_dev_ms" yaml:"viewing_delay_std_dev_ms"`
	PrePressMinMs        int     `mapstructure:"pre_press_min_ms" yaml:"pre_press_min_ms"`
	PrePressMaxMs        int     `mapstructure:"pre_press_max_ms" yaml:"pre_press_max_ms"`
}

// DefaultGestureConfig returns the tuning used for an average phone user.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		ControlAlongStdDev: 20.0,
		ControlCrossStdDev: 60.0,
		ControlNearRatio:   0.3,
		ControlFarRatio:    0.7,

		EndpointVerticalSpread:   AxisSpread{X: 20.0, Y: 10.0},
		EndpointHorizontalSpread: AxisSpread{X: 10.0, Y: 25.0},

		SampleJitterStdDev: 1.8,
		MinSamples:         15,
		MaxSamples:         25,

		HesitationProbability: 0.22,
		HesitationMinPathLen:  7,
		HesitationMinorMean:   2.0,
		HesitationMinorStdDev: 4.0,
		HesitationMajorMean:   3.0,
		HesitationMajorStdDev: 7.0,

		DurationStdDevMs: 70.0,
		MinDurationMs:    230,
		MaxDurationMs:    420,

		ForwardBias: 0.9,

		LaneDivisorMin:    1.5,
		LaneDivisorMax:    5.0,
		LowerEdgeFraction: 0.7,
		UpperEdgeFraction: 0.3,
		LaneDriftStdDev:   25.0,

		ViewingDelayMeanMs:   11000.0,
		ViewingDelayStdDevMs: 3000.0,
		PrePressMinMs:        50,
		PrePressMaxMs:        100,
	}
}

// setGestureDefaults registers every gesture default with viper.
func setGestureDefaults(v *viper.Viper) {
	d := DefaultGestureConfig()
	v.SetDefault("gesture.control_along_std_dev", d.ControlAlongStdDev)
	v.SetDefault("gesture.control_cross_std_dev", d.ControlCrossStdDev)
	v.SetDefault("gesture.control_near_ratio", d.ControlNearRatio)
	v.SetDefault("gesture.control_far_ratio", d.ControlFarRatio)
	v.SetDefault("gesture.endpoint_vertical_spread.x", d.EndpointVerticalSpread.X)
	v.SetDefault("gesture.endpoint_vertical_spread.y", d.EndpointVerticalSpread.Y)
	v.SetDefault("gesture.endpoint_horizontal_spread.x", d.EndpointHorizontalSpread.X)
	v.SetDefault("gesture.endpoint_horizontal_spread.y", d.EndpointHorizontalSpread.Y)
	v.SetDefault("gesture.sample_jitter_std_dev", d.SampleJitterStdDev)
	v.SetDefault("gesture.min_samples", d.MinSamples)
	v.SetDefault("gesture.max_samples", d.MaxSamples)
	v.SetDefault("gesture.hesitation_probability", d.HesitationProbability)
	v.SetDefault("gesture.hesitation_min_path_len", d.HesitationMinPathLen)
	v.SetDefault("gesture.hesitation_minor_mean", d.HesitationMinorMean)
	v.SetDefault("gesture.hesitation_minor_std_dev", d.HesitationMinorStdDev)
	v.SetDefault("gesture.hesitation_major_mean", d.HesitationMajorMean)
	v.SetDefault("gesture.hesitation_major_std_dev", d.HesitationMajorStdDev)
	v.SetDefault("gesture.duration_std_dev_ms", d.DurationStdDevMs)
	v.SetDefault("gesture.min_duration_ms", d.MinDurationMs)
	v.SetDefault("gesture.max_duration_ms", d.MaxDurationMs)
	v.SetDefault("gesture.forward_bias", d.ForwardBias)
	v.SetDefault("gesture.lane_divisor_min", d.LaneDivisorMin)
	v.SetDefault("gesture.lane_divisor_max", d.LaneDivisorMax)
	v.SetDefault("gesture.lower_edge_fraction", d.LowerEdgeFraction)
	v.SetDefault("gesture.upper_edge_fraction", d.UpperEdgeFraction)
	v.SetDefault("gesture.lane_drift_std_dev", d.LaneDriftStdDev)
	v.SetDefault("gesture.viewing_delay_mean_ms", d.ViewingDelayMeanMs)
	v.SetDefault("gesture.viewing_delay_std_dev_ms", d.ViewingDelayStdDevMs)
	v.SetDefault("gesture.pre_press_min_ms", d.PrePressMinMs)
	v.SetDefault("gesture.pre_press_max_ms", d.PrePressMaxMs)
}

// Validate checks the GestureConfig for values the synthesizer cannot work with.
func (g *GestureConfig) Validate() error {
	if g.MinSamples < 1 || g.MinSamples > g.MaxSamples {
		return fmt.Errorf("min_samples must be at least 1 and not exceed max_samples")
	}
	if g.MinDurationMs <= 0 || g.MinDurationMs > g.MaxDurationMs {
		return fmt.Errorf("min_duration_ms must be positive and not exceed max_duration_ms")
	}
	if g.HesitationProbability < 0 || g.HesitationProbability > 1 {
		return fmt.Errorf("hesitation_probability must be between 0.0 and 1.0")
	}
	if g.ForwardBias < 0 || g.ForwardBias > 1 {
		return fmt.Errorf("forward_bias must be between 0.0 and 1.0")
	}
	if g.LaneDivisorMin < 1 || g.LaneDivisorMin > g.LaneDivisorMax {
		return fmt.Errorf("lane_divisor_min must be at least 1 and not exceed lane_divisor_max")
	}
	if g.PrePressMinMs < 0 || g.PrePressMinMs > g.PrePressMaxMs {
		return fmt.Errorf("pre_press_min_ms must be between 0 and pre_press_max_ms")
	}
	return nil
}
