package ble

import (
	"encoding/binary"
	"fmt"
	"sync"

	"tinygo.org/x/bluetooth"
)

// RealAdapter serves the plantbit GATT service on the host's bluetooth
// adapter via tinygo.org/x/bluetooth.
type RealAdapter struct {
	chars   *Characteristics
	name    string
	adapter *bluetooth.Adapter
	adv     *bluetooth.Advertisement

	moistChar bluetooth.Characteristic
	pumpChar  bluetooth.Characteristic
	sleepChar bluetooth.Characteristic

	mu    sync.Mutex
	conns map[string]bluetooth.Device
}

// NewRealAdapter enables the default bluetooth adapter, registers the
// service, and prepares (but does not start) advertising.
func NewRealAdapter(base string, chars *Characteristics) (*RealAdapter, error) {
	a := &RealAdapter{
		chars:   chars,
		adapter: bluetooth.DefaultAdapter,
		conns:   make(map[string]bluetooth.Device),
	}

	if err := a.adapter.Enable(); err != nil {
		return nil, fmt.Errorf("enable bluetooth adapter: %w", err)
	}

	addr, err := a.adapter.Address()
	if err != nil {
		return nil, fmt.Errorf("read adapter address: %w", err)
	}
	a.name = DeriveName(base, addr.String())

	a.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		a.mu.Lock()
		if connected {
			a.conns[device.Address.String()] = device
		} else {
			delete(a.conns, device.Address.String())
		}
		a.mu.Unlock()
	})

	sleepInit := make([]byte, 2)
	binary.LittleEndian.PutUint16(sleepInit, chars.SleepInterval())

	err = a.adapter.AddService(&bluetooth.Service{
		UUID: ServiceUUID(),
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &a.moistChar,
				UUID:   MoistureUUID(),
				Value:  []byte{0},
				Flags: bluetooth.CharacteristicReadPermission |
					bluetooth.CharacteristicNotifyPermission |
					bluetooth.CharacteristicWritePermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					if offset != 0 || len(value) != 1 {
						return
					}
					a.chars.WriteMoisture(value[0])
				},
			},
			{
				Handle: &a.pumpChar,
				UUID:   PumpUUID(),
				Value:  []byte{0},
				Flags: bluetooth.CharacteristicReadPermission |
					bluetooth.CharacteristicWritePermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					if offset != 0 || len(value) != 1 {
						return
					}
					a.chars.WritePump(value[0])
				},
			},
			{
				Handle: &a.sleepChar,
				UUID:   SleepUUID(),
				Value:  sleepInit,
				Flags: bluetooth.CharacteristicReadPermission |
					bluetooth.CharacteristicWritePermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					if offset != 0 || len(value) != 2 {
						return
					}
					a.chars.WriteSleepInterval(binary.LittleEndian.Uint16(value))
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("add gatt service: %w", err)
	}

	chars.setNotifyMoisture(func(v uint8) {
		a.moistChar.Write([]byte{v})
	})
	chars.setSyncPump(func(v uint8) {
		a.pumpChar.Write([]byte{v})
	})

	// The 128-bit UUID list fills the advertising PDU (see
	// AdvertisingPayload), so the local name must ride in the scan
	// response. BlueZ splits the data that way when both are given.
	a.adv = a.adapter.DefaultAdvertisement()
	if err := a.adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    a.name,
		ServiceUUIDs: []bluetooth.UUID{ServiceUUID()},
	}); err != nil {
		return nil, fmt.Errorf("configure advertisement: %w", err)
	}

	return a, nil
}

// Name returns the derived device name.
func (a *RealAdapter) Name() string {
	return a.name
}

// StartAdvertising begins connectable advertising.
func (a *RealAdapter) StartAdvertising() error {
	if err := a.adv.Start(); err != nil {
		return fmt.Errorf("start advertising: %w", err)
	}
	return nil
}

// StopAdvertising halts advertising.
func (a *RealAdapter) StopAdvertising() error {
	if err := a.adv.Stop(); err != nil {
		return fmt.Errorf("stop advertising: %w", err)
	}
	return nil
}

// Connected reports whether any central is connected.
func (a *RealAdapter) Connected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.conns) > 0
}

// DisconnectAll force-drops every open connection.
func (a *RealAdapter) DisconnectAll() error {
	a.mu.Lock()
	devices := make([]bluetooth.Device, 0, len(a.conns))
	for _, d := range a.conns {
		devices = append(devices, d)
	}
	a.mu.Unlock()

	var firstErr error
	for _, d := range devices {
		if err := d.Disconnect(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("disconnect: %w", err)
		}
	}
	return firstErr
}

// Characteristics returns the typed characteristic state.
func (a *RealAdapter) Characteristics() *Characteristics {
	return a.chars
}

// Close stops advertising and drops connections.
func (a *RealAdapter) Close() error {
	a.adv.Stop()
	return a.DisconnectAll()
}
