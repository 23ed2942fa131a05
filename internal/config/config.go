// Package config holds the plantbit daemon configuration. Values come from
// an optional YAML file; command-line flags in cmd/plantbit override it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Sleep interval bounds, shared with the BLE negotiation path.
const (
	MinSleepSeconds = 10
	MaxSleepSeconds = 3600
)

// Config holds all daemon configuration.
type Config struct {
	// DeviceName is the advertised name base; the adapter appends two hex
	// bytes of its own address ("PlantBit-3FA2").
	DeviceName string `yaml:"device_name"`

	// StatePath is the file backing the retained history block.
	StatePath string `yaml:"state_path"`

	// SleepSeconds is the interval between wake cycles (10-3600).
	SleepSeconds int `yaml:"sleep_seconds"`

	Window    WindowConfig    `yaml:"window"`
	Pump      PumpConfig      `yaml:"pump"`
	Sensor    SensorConfig    `yaml:"sensor"`
	Buttons   ButtonConfig    `yaml:"buttons"`
	Display   DisplayConfig   `yaml:"display"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WindowConfig controls the active window and its poll cadences.
type WindowConfig struct {
	ActiveSeconds    int `yaml:"active_seconds"`
	ExtendSeconds    int `yaml:"extend_seconds"`
	BLEExtendSeconds int `yaml:"ble_extend_seconds"`
	ExtendMarginMs   int `yaml:"extend_margin_ms"`
	PollMs           int `yaml:"poll_ms"`
	BLEPollMs        int `yaml:"ble_poll_ms"`
	IdlePollMs       int `yaml:"idle_poll_ms"`
}

// PumpConfig controls the pump output and watering behavior.
type PumpConfig struct {
	Pin             int     `yaml:"pin"`
	DefaultSeconds  float64 `yaml:"default_seconds"`
	CooldownSeconds int     `yaml:"cooldown_seconds"`
}

// SensorConfig controls moisture sampling.
type SensorConfig struct {
	// ADCPath is the sysfs IIO voltage channel to read raw values from.
	ADCPath     string `yaml:"adc_path"`
	RawMax      int    `yaml:"raw_max"`
	SampleCount int    `yaml:"sample_count"`
}

// ButtonConfig holds the BCM pin numbers for the two buttons.
type ButtonConfig struct {
	SamplePin int `yaml:"sample_pin"`
	PumpPin   int `yaml:"pump_pin"`
}

// DisplayConfig holds the LED matrix pin assignments. Empty disables the
// hardware display (the daemon still computes frames for telemetry/tests).
type DisplayConfig struct {
	RowPins []int `yaml:"row_pins"`
	ColPins []int `yaml:"col_pins"`
}

// TelemetryConfig controls MQTT event publishing. Empty broker disables.
type TelemetryConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
}

// Default returns a Config with the stock plantbit values.
func Default() *Config {
	return &Config{
		DeviceName:   "PlantBit",
		StatePath:    "/var/lib/plantbit/retained.bin",
		SleepSeconds: 60,
		Window: WindowConfig{
			ActiveSeconds:    15,
			ExtendSeconds:    5,
			BLEExtendSeconds: 30,
			ExtendMarginMs:   1000,
			PollMs:           10,
			BLEPollMs:        100,
			IdlePollMs:       100,
		},
		Pump: PumpConfig{
			Pin:             2,
			DefaultSeconds:  2.5,
			CooldownSeconds: 10,
		},
		Sensor: SensorConfig{
			ADCPath:     "/sys/bus/iio/devices/iio:device0/in_voltage0_raw",
			RawMax:      65535,
			SampleCount: 10,
		},
		Buttons: ButtonConfig{
			SamplePin: 5,
			PumpPin:   11,
		},
		Telemetry: TelemetryConfig{
			ClientID: "plantbit",
		},
	}
}

// Load reads and parses a YAML config file. Missing fields keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.DeviceName == "" {
		return fmt.Errorf("device_name must not be empty")
	}

	if c.StatePath == "" {
		return fmt.Errorf("state_path must not be empty")
	}

	if c.SleepSeconds < MinSleepSeconds || c.SleepSeconds > MaxSleepSeconds {
		return fmt.Errorf("sleep_seconds must be in [%d,%d], got %d",
			MinSleepSeconds, MaxSleepSeconds, c.SleepSeconds)
	}

	if c.Window.ActiveSeconds <= 0 {
		return fmt.Errorf("window.active_seconds must be > 0")
	}

	if c.Window.PollMs <= 0 {
		return fmt.Errorf("window.poll_ms must be > 0")
	}

	if c.Pump.DefaultSeconds <= 0 {
		return fmt.Errorf("pump.default_seconds must be > 0")
	}

	if c.Sensor.SampleCount <= 0 {
		return fmt.Errorf("sensor.sample_count must be > 0")
	}

	if c.Sensor.RawMax <= 0 {
		return fmt.Errorf("sensor.raw_max must be > 0")
	}

	if len(c.Display.RowPins) != 0 && len(c.Display.RowPins) != 5 {
		return fmt.Errorf("display.row_pins must list 5 pins, got %d", len(c.Display.RowPins))
	}

	if len(c.Display.ColPins) != 0 && len(c.Display.ColPins) != 5 {
		return fmt.Errorf("display.col_pins must list 5 pins, got %d", len(c.Display.ColPins))
	}

	return nil
}

// SleepInterval returns the configured sleep interval as a duration.
func (c *Config) SleepInterval() time.Duration {
	return time.Duration(c.SleepSeconds) * time.Second
}

// PumpDuration returns the default pump activation duration.
func (c *Config) PumpDuration() time.Duration {
	return time.Duration(c.Pump.DefaultSeconds * float64(time.Second))
}
