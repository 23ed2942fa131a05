package ble

// FakeAdapter is a test double implementing Adapter without a radio.
// Tests flip ConnectedNow to simulate connect/disconnect transitions and
// write to the Characteristics directly to simulate remote writes.
type FakeAdapter struct {
	// DeviceName is returned by Name.
	DeviceName string

	// Chars is the characteristic state the controller polls.
	Chars *Characteristics

	// ConnectedNow simulates whether a central is connected.
	ConnectedNow bool

	// ConnectedFunc, if set, overrides ConnectedNow; useful for scripting
	// connect/disconnect transitions against a fake clock.
	ConnectedFunc func() bool

	// Advertising tracks the current advertising state.
	Advertising bool

	// AdvStarts counts StartAdvertising calls.
	AdvStarts int

	// AdvStops counts StopAdvertising calls.
	AdvStops int

	// Disconnects counts DisconnectAll calls.
	Disconnects int

	// StartError, if set, is returned by StartAdvertising.
	StartError error

	// Closed tracks whether Close was called.
	Closed bool
}

// NewFakeAdapter creates a FakeAdapter with the given initial sleep value.
func NewFakeAdapter(sleepSeconds uint16) *FakeAdapter {
	return &FakeAdapter{
		DeviceName: "PlantBit-TEST",
		Chars:      NewCharacteristics(sleepSeconds),
	}
}

// Name returns the fake device name.
func (f *FakeAdapter) Name() string {
	return f.DeviceName
}

// StartAdvertising records the call.
func (f *FakeAdapter) StartAdvertising() error {
	f.AdvStarts++
	if f.StartError != nil {
		return f.StartError
	}
	f.Advertising = true
	return nil
}

// StopAdvertising records the call.
func (f *FakeAdapter) StopAdvertising() error {
	f.AdvStops++
	f.Advertising = false
	return nil
}

// Connected returns the simulated connection state.
func (f *FakeAdapter) Connected() bool {
	if f.ConnectedFunc != nil {
		return f.ConnectedFunc()
	}
	return f.ConnectedNow
}

// DisconnectAll drops the simulated connection.
func (f *FakeAdapter) DisconnectAll() error {
	f.Disconnects++
	f.ConnectedNow = false
	return nil
}

// Characteristics returns the characteristic state.
func (f *FakeAdapter) Characteristics() *Characteristics {
	return f.Chars
}

// Close marks the adapter closed.
func (f *FakeAdapter) Close() error {
	f.Closed = true
	return nil
}
