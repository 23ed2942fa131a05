package internal

import (
	"testing"
	"time"

	"github.com/sweeney/plantbit/internal/ble"
	"github.com/sweeney/plantbit/internal/display"
	"github.com/sweeney/plantbit/internal/history"
	"github.com/sweeney/plantbit/internal/pump"
	"github.com/sweeney/plantbit/internal/sensor"
	"github.com/sweeney/plantbit/internal/telemetry"
)

// TestIntegrationSampleToPresentation tests the flow from a raw ADC value to
// the BLE characteristic, history block, and display frame using fakes.
func TestIntegrationSampleToPresentation(t *testing.T) {
	mem := history.NewFakeMemory(nil)
	store, err := history.Open(mem)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	// Raw half-scale inverts to 50%.
	moisture := sensor.Normalize(32768, 65535)
	if moisture != 50 {
		t.Fatalf("normalize: got %d, want 50", moisture)
	}

	if err := store.RecordSample(moisture, 1440); err != nil {
		t.Fatalf("record: %v", err)
	}

	chars := ble.NewCharacteristics(60)
	chars.PublishMoisture(moisture)
	if chars.Moisture() != 50 {
		t.Errorf("characteristic = %d, want 50", chars.Moisture())
	}

	// 50% lights 2 LEDs in the newest (leftmost) column, from the top for
	// the high and from the bottom for the low.
	frame := display.HistoryFrame(store.History())
	for _, px := range []struct{ r, c int }{{0, 0}, {1, 0}, {4, 0}, {3, 0}} {
		if !frame.On(px.r, px.c) {
			t.Errorf("pixel (%d,%d) off, want on", px.r, px.c)
		}
	}
	if frame.On(2, 0) {
		t.Error("middle pixel on, want off for 50%")
	}
	for c := 1; c < 5; c++ {
		for r := 0; r < 5; r++ {
			if frame.On(r, c) {
				t.Errorf("pixel (%d,%d) on, want empty column for unrecorded day", r, c)
			}
		}
	}

	// Every mutation hit the retained block.
	if mem.Stores == 0 {
		t.Error("retained block never written")
	}
}

// TestIntegrationHistorySurvivesRestart verifies that a second Store opened
// on the same memory sees the history the first one wrote.
func TestIntegrationHistorySurvivesRestart(t *testing.T) {
	mem := history.NewFakeMemory(nil)

	store, err := history.Open(mem)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	// Two wakes of a two-wake day, then one wake of the next day.
	if err := store.RecordSample(40, 2); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.RecordSample(60, 2); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.RecordSample(55, 2); err != nil {
		t.Fatalf("record: %v", err)
	}

	reopened, err := history.Open(mem)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}

	h := reopened.History()
	if h[history.Days-2] != (history.Record{High: 60, Low: 40}) {
		t.Errorf("completed day = %+v, want {60 40}", h[history.Days-2])
	}
	if h[history.Days-1] != (history.Record{High: 55, Low: 55}) {
		t.Errorf("newest slot = %+v, want {55 55}", h[history.Days-1])
	}
	if reopened.WakeCount() != 1 {
		t.Errorf("wake count = %d, want 1", reopened.WakeCount())
	}
}

// TestIntegrationCorruptBlockRezeroes verifies a bad marker byte starts the
// history over rather than propagating garbage.
func TestIntegrationCorruptBlockRezeroes(t *testing.T) {
	block := make([]byte, history.BlockSize)
	block[0] = 0x00 // not the marker
	for i := 1; i < len(block); i++ {
		block[i] = 0xFF
	}

	store, err := history.Open(history.NewFakeMemory(block))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	for i, r := range store.History() {
		if r != (history.Record{}) {
			t.Errorf("slot %d = %+v after rezero, want zero", i, r)
		}
	}
	if store.WakeCount() != 0 {
		t.Errorf("wake count = %d, want 0", store.WakeCount())
	}
}

// TestIntegrationRemotePumpFlow tests a client pump command end to end:
// characteristic write, actuation, one-shot clear, telemetry.
func TestIntegrationRemotePumpFlow(t *testing.T) {
	chars := ble.NewCharacteristics(60)
	actuator := pump.NewFakeActuator()
	pub := telemetry.NewFakePublisher()

	chars.WritePump(4)

	pv := chars.Pump()
	if pv != 4 {
		t.Fatalf("pump characteristic = %d, want 4", pv)
	}
	d := time.Duration(pv) * time.Second
	if err := actuator.Activate(d); err != nil {
		t.Fatalf("activate: %v", err)
	}
	chars.ClearPump()
	if err := pub.PublishPump(telemetry.PumpEvent{
		Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Duration:  d,
		Trigger:   "ble",
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(actuator.Activations) != 1 || actuator.Activations[0] != 4*time.Second {
		t.Errorf("activations = %v, want [4s]", actuator.Activations)
	}
	if chars.Pump() != 0 {
		t.Errorf("pump characteristic = %d after clear, want 0", chars.Pump())
	}
	if len(pub.Pumps) != 1 || pub.Pumps[0].Trigger != "ble" {
		t.Errorf("pump events = %+v", pub.Pumps)
	}
}

// TestIntegrationSamplePayloadFormat verifies the exact JSON structure.
func TestIntegrationSamplePayloadFormat(t *testing.T) {
	payload, err := telemetry.FormatSample(telemetry.SampleEvent{
		Timestamp: time.Date(2026, 3, 1, 9, 15, 30, 0, time.UTC),
		Moisture:  47,
		High:      62,
		Low:       41,
		WakeCount: 12,
	})
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	expected := `{"moisture":{"timestamp":"2026-03-01T09:15:30Z","percent":47,"high":62,"low":41,"wake":12}}`
	if string(payload) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, expected)
	}
}

// TestIntegrationPumpPayloadFormat verifies the exact JSON structure.
func TestIntegrationPumpPayloadFormat(t *testing.T) {
	payload, err := telemetry.FormatPump(telemetry.PumpEvent{
		Timestamp: time.Date(2026, 3, 1, 9, 16, 0, 0, time.UTC),
		Duration:  2500 * time.Millisecond,
		Trigger:   "button",
	})
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	expected := `{"pump":{"timestamp":"2026-03-01T09:16:00Z","seconds":2.5,"trigger":"button"}}`
	if string(payload) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, expected)
	}
}

// TestIntegrationSystemPayloadFormat verifies the exact JSON structure for
// lifecycle events.
func TestIntegrationSystemPayloadFormat(t *testing.T) {
	payload, err := telemetry.FormatSystem(telemetry.SystemEvent{
		Timestamp: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
		Uptime:    90 * time.Minute,
	})
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	expected := `{"system":{"timestamp":"2026-03-01T18:00:00Z","event":"SHUTDOWN","reason":"SIGTERM","uptime_sec":5400}}`
	if string(payload) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, expected)
	}
}

// TestIntegrationAdvertisingFitsLegacyPDU verifies the advertising PDU and
// the scan response carrying the derived name each fit their 31-byte limit.
func TestIntegrationAdvertisingFitsLegacyPDU(t *testing.T) {
	name := ble.DeriveName("PlantBit", "DE:AD:BE:EF:3F:A2")
	if name != "PlantBit-3FA2" {
		t.Fatalf("name = %q, want PlantBit-3FA2", name)
	}

	if payload := ble.AdvertisingPayload(); len(payload) > 31 {
		t.Errorf("advertising payload %d bytes, exceeds legacy PDU", len(payload))
	}
	if sr := ble.ScanResponsePayload(name); len(sr) > 31 {
		t.Errorf("scan response %d bytes, exceeds legacy PDU", len(sr))
	}
}
