// Package ble declares the plantbit GATT service and exposes its three
// characteristics as typed values. The real implementation runs on
// tinygo.org/x/bluetooth; the fake allows testing the controller without a
// radio.
package ble

import (
	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"
)

// Custom 128-bit service and characteristic UUIDs.
const (
	ServiceUUIDString  = "12340001-1234-5678-1234-56789abcdef0"
	MoistureUUIDString = "12340002-1234-5678-1234-56789abcdef0"
	PumpUUIDString     = "12340003-1234-5678-1234-56789abcdef0"
	SleepUUIDString    = "12340004-1234-5678-1234-56789abcdef0"
)

// ServiceUUID returns the plantbit service UUID.
func ServiceUUID() bluetooth.UUID {
	return bluetooth.NewUUID(uuid.MustParse(ServiceUUIDString))
}

// MoistureUUID returns the moisture characteristic UUID (1 byte, 0-100,
// read/notify; writes are a refresh request, not data).
func MoistureUUID() bluetooth.UUID {
	return bluetooth.NewUUID(uuid.MustParse(MoistureUUIDString))
}

// PumpUUID returns the pump characteristic UUID (1 byte, 0 = idle,
// 1-255 = run for that many seconds, one-shot).
func PumpUUID() bluetooth.UUID {
	return bluetooth.NewUUID(uuid.MustParse(PumpUUIDString))
}

// SleepUUID returns the sleep-interval characteristic UUID (uint16 LE
// seconds, valid 10-3600).
func SleepUUID() bluetooth.UUID {
	return bluetooth.NewUUID(uuid.MustParse(SleepUUIDString))
}

// Adapter is the BLE surface the wake-cycle controller drives.
type Adapter interface {
	// Name returns the advertised device name.
	Name() string

	// StartAdvertising begins (or restarts) connectable advertising.
	StartAdvertising() error

	// StopAdvertising halts advertising.
	StopAdvertising() error

	// Connected reports whether a central is currently connected.
	Connected() bool

	// DisconnectAll force-drops any open connection.
	DisconnectAll() error

	// Characteristics returns the typed characteristic state.
	Characteristics() *Characteristics

	// Close releases the adapter.
	Close() error
}
