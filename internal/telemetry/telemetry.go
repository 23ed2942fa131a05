// Package telemetry publishes plantbit events to MQTT with abstraction for
// testing. Publishing is best-effort: a failure is logged by the caller and
// never stops the wake cycle.
package telemetry

import (
	"encoding/json"
	"time"
)

// Topic suffixes under "garden/plantbit/<device>".
const (
	TopicBase     = "garden/plantbit"
	suffixSample  = "moisture"
	suffixPump    = "pump"
	suffixSystem  = "system"
)

// Publisher publishes events to MQTT.
type Publisher interface {
	// PublishSample sends a moisture reading.
	PublishSample(e SampleEvent) error

	// PublishPump sends a pump activation record.
	PublishPump(e PumpEvent) error

	// PublishSystem sends a lifecycle event (STARTUP, SHUTDOWN).
	PublishSystem(e SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// SampleEvent is one successful moisture reading.
type SampleEvent struct {
	Timestamp time.Time
	Moisture  uint8
	High      uint8 // running high for the current day
	Low       uint8 // running low for the current day
	WakeCount uint16
}

// PumpEvent is one pump activation.
type PumpEvent struct {
	Timestamp time.Time
	Duration  time.Duration
	Trigger   string // "button" or "ble"
}

// SystemEvent is a lifecycle event.
type SystemEvent struct {
	Timestamp time.Time
	Event     string // "STARTUP", "SHUTDOWN"
	Reason    string // e.g. "SIGTERM" (shutdown only)
	Uptime    time.Duration
	Retained  bool
}

type samplePayload struct {
	Moisture sampleInner `json:"moisture"`
}

type sampleInner struct {
	Timestamp string `json:"timestamp"`
	Percent   uint8  `json:"percent"`
	High      uint8  `json:"high"`
	Low       uint8  `json:"low"`
	Wake      uint16 `json:"wake"`
}

type pumpPayload struct {
	Pump pumpInner `json:"pump"`
}

type pumpInner struct {
	Timestamp string  `json:"timestamp"`
	Seconds   float64 `json:"seconds"`
	Trigger   string  `json:"trigger"`
}

type systemPayload struct {
	System systemInner `json:"system"`
}

type systemInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
	UptimeSec int64  `json:"uptime_sec,omitempty"`
}

// FormatSample creates the JSON payload for a moisture reading.
func FormatSample(e SampleEvent) ([]byte, error) {
	return json.Marshal(samplePayload{sampleInner{
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		Percent:   e.Moisture,
		High:      e.High,
		Low:       e.Low,
		Wake:      e.WakeCount,
	}})
}

// FormatPump creates the JSON payload for a pump activation.
func FormatPump(e PumpEvent) ([]byte, error) {
	return json.Marshal(pumpPayload{pumpInner{
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		Seconds:   e.Duration.Seconds(),
		Trigger:   e.Trigger,
	}})
}

// FormatSystem creates the JSON payload for a lifecycle event.
func FormatSystem(e SystemEvent) ([]byte, error) {
	return json.Marshal(systemPayload{systemInner{
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		Event:     e.Event,
		Reason:    e.Reason,
		UptimeSec: int64(e.Uptime.Seconds()),
	}})
}

// NopPublisher discards all events; used when telemetry is disabled.
type NopPublisher struct{}

// PublishSample discards the event.
func (NopPublisher) PublishSample(SampleEvent) error { return nil }

// PublishPump discards the event.
func (NopPublisher) PublishPump(PumpEvent) error { return nil }

// PublishSystem discards the event.
func (NopPublisher) PublishSystem(SystemEvent) error { return nil }

// Close does nothing.
func (NopPublisher) Close() error { return nil }
