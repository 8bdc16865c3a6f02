// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Gesture() GestureConfig
	Device() DeviceConfig
	Session() SessionConfig

	// Device Setters
	SetDeviceSerial(serial string)
	SetDeviceDryRun(bool)

	// Session Setters
	SetSessionCount(n int)
	SetSessionIntent(intent string)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	GestureCfg GestureConfig `mapstructure:"gesture" yaml:"gesture"`
	DeviceCfg  DeviceConfig  `mapstructure:"device" yaml:"device"`
	SessionCfg SessionConfig `mapstructure:"session" yaml:"session"`
}

var _ Interface = (*Config)(nil)

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig   { return c.LoggerCfg }
func (c *Config) Gesture() GestureConfig { return c.GestureCfg }
func (c *Config) Device() DeviceConfig   { return c.DeviceCfg }
func (c *Config) Session() SessionConfig { return c.SessionCfg }

// --- Interface Method Implementations (Setters) ---

// Device Setters
func (c *Config) SetDeviceSerial(serial string) { c.DeviceCfg.Serial = serial }
func (c *Config) SetDeviceDryRun(b bool)        { c.DeviceCfg.DryRun = b }

// Session Setters
func (c *Config) SetSessionCount(n int)          { c.SessionCfg.Count = n }
func (c *Config) SetSessionIntent(intent string) { c.SessionCfg.Intent = intent }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// DeviceConfig describes the touch device gestures are dispatched to.
type DeviceConfig struct {
	// ADBPath is the adb binary used by the device executor.
	ADBPath string `mapstructure:"adb_path" yaml:"adb_path"`
	// Serial selects a device when more than one is attached. Empty means the only device.
	Serial string `mapstructure:"serial" yaml:"serial"`
	// Serials lists devices driven concurrently by the session command.
	Serials      []string      `mapstructure:"serials" yaml:"serials"`
	ScreenWidth  int           `mapstructure:"screen_width" yaml:"screen_width"`
	ScreenHeight int           `mapstructure:"screen_height" yaml:"screen_height"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// DryRun records gestures instead of executing them.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`
	// RecordFile receives every gesture as JSON lines. Empty means stdout for dry runs
	// and no record otherwise.
	RecordFile string `mapstructure:"record_file" yaml:"record_file"`
}

// SessionConfig configures a continuous feed-browsing session.
type SessionConfig struct {
	// Count is the number of gestures to perform. Zero runs until cancelled.
	Count int `mapstructure:"count" yaml:"count"`
	// Intent is the intended direction, "forward" or "reverse".
	Intent            string `mapstructure:"intent" yaml:"intent"`
	ViewingDelayMinMs int    `mapstructure:"viewing_delay_min_ms" yaml:"viewing_delay_min_ms"`
	ViewingDelayMaxMs int    `mapstructure:"viewing_delay_max_ms" yaml:"viewing_delay_max_ms"`
	// MaxPerMinute caps the gesture rate regardless of the sampled delays.
	MaxPerMinute float64 `mapstructure:"max_per_minute" yaml:"max_per_minute"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "humanswipe")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Gesture --
	setGestureDefaults(v)

	// -- Device --
	v.SetDefault("device.adb_path", "adb")
	v.SetDefault("device.serial", "")
	v.SetDefault("device.screen_width", 1080)
	v.SetDefault("device.screen_height", 2400)
	v.SetDefault("device.timeout", "10s")
	v.SetDefault("device.dry_run", false)
	v.SetDefault("device.record_file", "")

	// -- Session --
	v.SetDefault("session.count", 20)
	v.SetDefault("session.intent", "forward")
	v.SetDefault("session.viewing_delay_min_ms", 4000)
	v.SetDefault("session.viewing_delay_max_ms", 25000)
	v.SetDefault("session.max_per_minute", 12.0)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	v.SetEnvPrefix("HUMANSWIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.GestureCfg.Validate(); err != nil {
		return fmt.Errorf("gesture configuration invalid: %w", err)
	}
	if err := c.DeviceCfg.Validate(); err != nil {
		return fmt.Errorf("device configuration invalid: %w", err)
	}
	if err := c.SessionCfg.Validate(); err != nil {
		return fmt.Errorf("session configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the DeviceConfig settings.
func (d *DeviceConfig) Validate() error {
	if d.ScreenWidth <= 0 || d.ScreenHeight <= 0 {
		return fmt.Errorf("screen_width and screen_height must be positive")
	}
	if !d.DryRun && d.ADBPath == "" {
		return fmt.Errorf("adb_path is required unless dry_run is set")
	}
	return nil
}

// Validate checks the SessionConfig settings.
func (s *SessionConfig) Validate() error {
	if s.Count < 0 {
		return fmt.Errorf("count must not be negative")
	}
	switch s.Intent {
	case "forward", "reverse":
	default:
		return fmt.Errorf("intent must be \"forward\" or \"reverse\", got %q", s.Intent)
	}
	if s.ViewingDelayMinMs < 0 || s.ViewingDelayMinMs > s.ViewingDelayMaxMs {
		return fmt.Errorf("viewing_delay_min_ms must be between 0 and viewing_delay_max_ms")
	}
	if s.MaxPerMinute < 0 {
		return fmt.Errorf("max_per_minute must not be negative")
	}
	return nil
}
