package pump

import "time"

// FakeActuator records activations for test assertions.
type FakeActuator struct {
	// Activations contains the duration of every Activate call.
	Activations []time.Duration

	// ActivateError, if set, will be returned by Activate.
	ActivateError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeActuator creates a FakeActuator.
func NewFakeActuator() *FakeActuator {
	return &FakeActuator{}
}

// Activate records the requested duration without blocking.
func (f *FakeActuator) Activate(d time.Duration) error {
	if f.ActivateError != nil {
		return f.ActivateError
	}
	f.Activations = append(f.Activations, d)
	return nil
}

// Close marks the actuator as closed.
func (f *FakeActuator) Close() error {
	f.Closed = true
	return nil
}
