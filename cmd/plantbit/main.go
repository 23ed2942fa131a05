// Command plantbit runs the plant-care wake cycles: read soil moisture,
// serve BLE clients for a bounded window, water on demand, then sleep.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/plantbit/internal/ble"
	"github.com/sweeney/plantbit/internal/button"
	"github.com/sweeney/plantbit/internal/config"
	"github.com/sweeney/plantbit/internal/cycle"
	"github.com/sweeney/plantbit/internal/display"
	"github.com/sweeney/plantbit/internal/history"
	"github.com/sweeney/plantbit/internal/pump"
	"github.com/sweeney/plantbit/internal/sensor"
	"github.com/sweeney/plantbit/internal/telemetry"
)

// adcSpacing is the gap between the raw reads that are averaged into one
// moisture sample.
const adcSpacing = 10 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	name := flag.String("name", "", "Advertised device name base (overrides config)")
	statePath := flag.String("state", "", "Retained history file (overrides config)")
	broker := flag.String("broker", "", "MQTT broker address (overrides config)")
	sleepSecs := flag.Int("sleep", 0, "Sleep interval in seconds (overrides config)")
	printHistory := flag.Bool("print-history", false, "Print the retained history and exit")

	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	applyOverrides(cfg, *name, *statePath, *broker, *sleepSecs)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: config: %v", err)
	}

	if *printHistory {
		if err := printRetained(cfg.StatePath); err != nil {
			log.Fatalf("fatal: %v", err)
		}
		return
	}

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// applyOverrides folds non-empty flag values into the config. Zero values
// mean "not given" and leave the config alone.
func applyOverrides(cfg *config.Config, name, statePath, broker string, sleepSecs int) {
	if name != "" {
		cfg.DeviceName = name
	}
	if statePath != "" {
		cfg.StatePath = statePath
	}
	if broker != "" {
		cfg.Telemetry.Broker = broker
	}
	if sleepSecs != 0 {
		cfg.SleepSeconds = sleepSecs
	}
}

// printRetained loads the retained block and prints the five-day history,
// oldest first.
func printRetained(path string) error {
	store, err := history.Open(history.NewFileMemory(path))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}

	for i, r := range store.History() {
		fmt.Printf("day -%d: high %3d%%  low %3d%%\n", history.Days-1-i, r.High, r.Low)
	}
	hi, lo := store.Running()
	fmt.Printf("today: wake %d, high %d%% low %d%%\n", store.WakeCount(), hi, lo)
	return nil
}

func run(cfg *config.Config) error {
	store, err := history.Open(history.NewFileMemory(cfg.StatePath))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}

	chars := ble.NewCharacteristics(uint16(cfg.SleepSeconds))
	adapter, err := ble.NewRealAdapter(cfg.DeviceName, chars)
	if err != nil {
		return fmt.Errorf("init ble: %w", err)
	}
	defer adapter.Close()

	sampler := sensor.NewRealSampler(cfg.Sensor.ADCPath, cfg.Sensor.RawMax, cfg.Sensor.SampleCount, adcSpacing)
	defer sampler.Close()

	actuator, err := pump.NewRealActuator(cfg.Pump.Pin)
	if err != nil {
		return fmt.Errorf("init pump: %w", err)
	}
	defer actuator.Close()

	buttons, err := button.NewRealSource(cfg.Buttons.SamplePin, cfg.Buttons.PumpPin)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	var disp display.Display = display.Nop{}
	if len(cfg.Display.RowPins) > 0 {
		matrix, err := display.NewRealMatrix(cfg.Display.RowPins, cfg.Display.ColPins)
		if err != nil {
			return fmt.Errorf("init display: %w", err)
		}
		defer matrix.Close()
		disp = matrix
	}

	var pub telemetry.Publisher = telemetry.NopPublisher{}
	if cfg.Telemetry.Broker != "" {
		p, err := telemetry.NewRealPublisher(cfg.Telemetry.Broker, cfg.Telemetry.ClientID, adapter.Name())
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
		defer p.Close()
		pub = p
	}

	start := time.Now()
	if err := pub.PublishSystem(telemetry.SystemEvent{
		Timestamp: start,
		Event:     "STARTUP",
		Retained:  true,
	}); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	}

	ctrl := cycle.New(cycle.Config{
		SleepInterval: cfg.SleepInterval(),
		ActiveWindow:  time.Duration(cfg.Window.ActiveSeconds) * time.Second,
		EventExtend:   time.Duration(cfg.Window.ExtendSeconds) * time.Second,
		BLEExtend:     time.Duration(cfg.Window.BLEExtendSeconds) * time.Second,
		ExtendMargin:  time.Duration(cfg.Window.ExtendMarginMs) * time.Millisecond,
		PumpDefault:   cfg.PumpDuration(),
		PumpCooldown:  time.Duration(cfg.Pump.CooldownSeconds) * time.Second,
		Poll:          time.Duration(cfg.Window.PollMs) * time.Millisecond,
		BLEPoll:       time.Duration(cfg.Window.BLEPollMs) * time.Millisecond,
		IdlePoll:      time.Duration(cfg.Window.IdlePollMs) * time.Millisecond,
	}, store, adapter, sampler, actuator, buttons, disp, pub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	reasonCh := make(chan string, 1)
	go func() {
		s := <-sigCh
		log.Printf("received %v, shutting down", s)
		reasonCh <- signalName(s)
		cancel()
	}()

	log.Printf("started: device=%s state=%s interval=%v", adapter.Name(), cfg.StatePath, ctrl.SleepInterval())
	ctrl.Run(ctx)

	reason := ""
	select {
	case reason = <-reasonCh:
	default:
	}
	if err := pub.PublishSystem(telemetry.SystemEvent{
		Timestamp: time.Now(),
		Event:     "SHUTDOWN",
		Reason:    reason,
		Uptime:    time.Since(start),
		Retained:  true,
	}); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	}
	return nil
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
