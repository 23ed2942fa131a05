package main

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/sweeney/plantbit/internal/config"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name       string
		flagName   string
		flagState  string
		flagBroker string
		flagSleep  int
		check      func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "no flags keep defaults",
			check: func(t *testing.T, cfg *config.Config) {
				def := config.Default()
				if cfg.DeviceName != def.DeviceName {
					t.Errorf("DeviceName changed to %q", cfg.DeviceName)
				}
				if cfg.SleepSeconds != def.SleepSeconds {
					t.Errorf("SleepSeconds changed to %d", cfg.SleepSeconds)
				}
			},
		},
		{
			name:     "name override",
			flagName: "Fern",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.DeviceName != "Fern" {
					t.Errorf("DeviceName = %q, want Fern", cfg.DeviceName)
				}
			},
		},
		{
			name:      "state override",
			flagState: "/tmp/plant.bin",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.StatePath != "/tmp/plant.bin" {
					t.Errorf("StatePath = %q", cfg.StatePath)
				}
			},
		},
		{
			name:       "broker override",
			flagBroker: "tcp://10.0.0.5:1883",
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Telemetry.Broker != "tcp://10.0.0.5:1883" {
					t.Errorf("Broker = %q", cfg.Telemetry.Broker)
				}
			},
		},
		{
			name:      "sleep override",
			flagSleep: 300,
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.SleepSeconds != 300 {
					t.Errorf("SleepSeconds = %d, want 300", cfg.SleepSeconds)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			applyOverrides(cfg, tt.flagName, tt.flagState, tt.flagBroker, tt.flagSleep)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DeviceName != "PlantBit" {
		t.Errorf("DeviceName = %q, want PlantBit", cfg.DeviceName)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plantbit.yaml")
	data := []byte("device_name: Basil\nsleep_seconds: 120\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DeviceName != "Basil" {
		t.Errorf("DeviceName = %q, want Basil", cfg.DeviceName)
	}
	if cfg.SleepSeconds != 120 {
		t.Errorf("SleepSeconds = %d, want 120", cfg.SleepSeconds)
	}
	// Untouched fields keep defaults.
	if cfg.Pump.DefaultSeconds != 2.5 {
		t.Errorf("Pump.DefaultSeconds = %v, want 2.5", cfg.Pump.DefaultSeconds)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestSignalName(t *testing.T) {
	if got := signalName(syscall.SIGINT); got != "SIGINT" {
		t.Errorf("SIGINT = %q", got)
	}
	if got := signalName(syscall.SIGTERM); got != "SIGTERM" {
		t.Errorf("SIGTERM = %q", got)
	}
	if got := signalName(syscall.SIGHUP); got != "UNKNOWN" {
		t.Errorf("SIGHUP = %q, want UNKNOWN", got)
	}
}
