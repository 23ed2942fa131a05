package telemetry

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFormatSample(t *testing.T) {
	e := SampleEvent{
		Timestamp: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Moisture:  55,
		High:      60,
		Low:       20,
		WakeCount: 42,
	}

	payload, err := FormatSample(e)
	if err != nil {
		t.Fatalf("FormatSample() error = %v", err)
	}

	var parsed map[string]map[string]interface{}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	m, ok := parsed["moisture"]
	if !ok {
		t.Fatal("missing moisture envelope")
	}
	if m["percent"].(float64) != 55 {
		t.Errorf("percent = %v, want 55", m["percent"])
	}
	if m["high"].(float64) != 60 || m["low"].(float64) != 20 {
		t.Errorf("high/low = %v/%v", m["high"], m["low"])
	}
	if m["timestamp"] != "2026-08-30T10:00:00Z" {
		t.Errorf("timestamp = %v", m["timestamp"])
	}
}

func TestFormatPump(t *testing.T) {
	e := PumpEvent{
		Timestamp: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Duration:  2500 * time.Millisecond,
		Trigger:   "ble",
	}

	payload, err := FormatPump(e)
	if err != nil {
		t.Fatalf("FormatPump() error = %v", err)
	}

	var parsed map[string]map[string]interface{}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	p := parsed["pump"]
	if p["seconds"].(float64) != 2.5 {
		t.Errorf("seconds = %v, want 2.5", p["seconds"])
	}
	if p["trigger"] != "ble" {
		t.Errorf("trigger = %v, want ble", p["trigger"])
	}
}

func TestFormatSystemOmitsEmptyReason(t *testing.T) {
	e := SystemEvent{
		Timestamp: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Event:     "STARTUP",
	}

	payload, err := FormatSystem(e)
	if err != nil {
		t.Fatalf("FormatSystem() error = %v", err)
	}

	var parsed map[string]map[string]interface{}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, present := parsed["system"]["reason"]; present {
		t.Error("empty reason should be omitted")
	}
	if parsed["system"]["event"] != "STARTUP" {
		t.Errorf("event = %v", parsed["system"]["event"])
	}
}

func TestRingBufferFIFO(t *testing.T) {
	r := newRingBuffer(3)

	r.push(bufferedMsg{topic: "a"})
	r.push(bufferedMsg{topic: "b"})
	if r.len() != 2 {
		t.Errorf("len = %d, want 2", r.len())
	}

	msgs := r.drainAll()
	if len(msgs) != 2 || msgs[0].topic != "a" || msgs[1].topic != "b" {
		t.Errorf("drained = %v", msgs)
	}
	if r.len() != 0 {
		t.Errorf("len after drain = %d", r.len())
	}
	if r.drainAll() != nil {
		t.Error("drain of empty buffer should return nil")
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	r := newRingBuffer(3)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.push(bufferedMsg{topic: name})
	}

	msgs := r.drainAll()
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	want := []string{"c", "d", "e"}
	for i, m := range msgs {
		if m.topic != want[i] {
			t.Errorf("msg %d = %q, want %q", i, m.topic, want[i])
		}
	}
}

func TestFakePublisher(t *testing.T) {
	f := NewFakePublisher()

	if err := f.PublishSample(SampleEvent{Moisture: 40}); err != nil {
		t.Fatal(err)
	}
	if err := f.PublishPump(PumpEvent{Trigger: "button"}); err != nil {
		t.Fatal(err)
	}
	if len(f.Samples) != 1 || len(f.Pumps) != 1 {
		t.Errorf("recorded %d samples, %d pumps", len(f.Samples), len(f.Pumps))
	}

	f.Reset()
	if len(f.Samples) != 0 {
		t.Error("Reset did not clear samples")
	}
}
