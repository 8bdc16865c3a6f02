// File: internal/config/config_test.go
package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	// Verify a few key defaults to ensure the mechanism works.
	assert.Equal(t, "info", cfg.Logger().Level)
	assert.Equal(t, "humanswipe", cfg.Logger().ServiceName)
	assert.Equal(t, "adb", cfg.Device().ADBPath)
	assert.Equal(t, 10*time.Second, cfg.Device().Timeout)
	assert.Equal(t, 1080, cfg.Device().ScreenWidth)
	assert.Equal(t, "forward", cfg.Session().Intent)
	assert.Equal(t, 12.0, cfg.Session().MaxPerMinute)

	// The gesture section must round-trip through viper unchanged.
	assert.Equal(t, DefaultGestureConfig(), cfg.Gesture())
	require.NoError(t, cfg.Validate())
}

func TestSetters(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SetDeviceSerial("emulator-5554")
	cfg.SetDeviceDryRun(true)
	cfg.SetSessionCount(3)
	cfg.SetSessionIntent("reverse")

	assert.Equal(t, "emulator-5554", cfg.Device().Serial)
	assert.True(t, cfg.Device().DryRun)
	assert.Equal(t, 3, cfg.Session().Count)
	assert.Equal(t, "reverse", cfg.Session().Intent)
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	t.Run("Gesture Validation", func(t *testing.T) {
		valid := DefaultGestureConfig()
		assert.NoError(t, valid.Validate())

		zeroSamples := valid
		zeroSamples.MinSamples = 0
		err := zeroSamples.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "min_samples must be at least 1")

		invertedSamples := valid
		invertedSamples.MinSamples = 30
		assert.Error(t, invertedSamples.Validate())

		invertedDuration := valid
		invertedDuration.MinDurationMs = 500
		err = invertedDuration.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "min_duration_ms")

		badProbability := valid
		badProbability.HesitationProbability = 1.5
		err = badProbability.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hesitation_probability must be between 0.0 and 1.0")

		badBias := valid
		badBias.ForwardBias = -0.1
		assert.Error(t, badBias.Validate())

		badLane := valid
		badLane.LaneDivisorMin = 0.5
		assert.Error(t, badLane.Validate())

		badPrePress := valid
		badPrePress.PrePressMinMs = 200
		assert.Error(t, badPrePress.Validate())
	})

	t.Run("Device Validation", func(t *testing.T) {
		valid := NewDefaultConfig().Device()
		assert.NoError(t, valid.Validate())

		noScreen := valid
		noScreen.ScreenHeight = 0
		assert.Error(t, noScreen.Validate())

		noADB := valid
		noADB.ADBPath = ""
		err := noADB.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "adb_path is required")

		noADB.DryRun = true
		assert.NoError(t, noADB.Validate(), "dry runs never call adb")
	})

	t.Run("Session Validation", func(t *testing.T) {
		valid := NewDefaultConfig().Session()
		assert.NoError(t, valid.Validate())

		badIntent := valid
		badIntent.Intent = "sideways"
		err := badIntent.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "intent must be")

		badCount := valid
		badCount.Count = -1
		assert.Error(t, badCount.Validate())

		badDelay := valid
		badDelay.ViewingDelayMinMs = valid.ViewingDelayMaxMs + 1
		assert.Error(t, badDelay.Validate())

		badRate := valid
		badRate.MaxPerMinute = -2
		assert.Error(t, badRate.Validate())
	})

	t.Run("Top Level Wraps Section Errors", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.GestureCfg.MinSamples = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gesture configuration invalid")
	})
}

// -- Viper Loading Tests --

func TestNewConfigFromViper(t *testing.T) {
	t.Run("YAML overrides defaults", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		yamlConfig := []byte(`
logger:
  level: debug
gesture:
  hesitation_probability: 0.5
  min_samples: 10
  endpoint_vertical_spread:
    x: 30
device:
  serial: R58M123
  timeout: 3s
session:
  count: 5
  intent: reverse
`)
		require.NoError(t, v.ReadConfig(bytes.NewBuffer(yamlConfig)))

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.Logger().Level)
		assert.Equal(t, 0.5, cfg.Gesture().HesitationProbability)
		assert.Equal(t, 10, cfg.Gesture().MinSamples)
		assert.Equal(t, 25, cfg.Gesture().MaxSamples, "unset keys keep their defaults")
		assert.Equal(t, 30.0, cfg.Gesture().EndpointVerticalSpread.X)
		assert.Equal(t, 10.0, cfg.Gesture().EndpointVerticalSpread.Y)
		assert.Equal(t, "R58M123", cfg.Device().Serial)
		assert.Equal(t, 3*time.Second, cfg.Device().Timeout)
		assert.Equal(t, 5, cfg.Session().Count)
		assert.Equal(t, "reverse", cfg.Session().Intent)
	})

	t.Run("Invalid values are rejected", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("gesture.min_duration_ms", 900)

		_, err := NewConfigFromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("HUMANSWIPE_DEVICE_SERIAL", "env-serial")
		v := viper.New()
		SetDefaults(v)

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)
		assert.Equal(t, "env-serial", cfg.Device().Serial)
	})
}
