package ble

import "sync"

// Characteristics holds the mutable values behind the three GATT
// characteristics. Write events arrive on the bluetooth stack's goroutine,
// so access is mutex-guarded; the controller remains the only consumer and
// the only writer of persistent state.
//
// The pump value is a one-shot command: the adapter never clears it itself,
// the controller must call ClearPump after honoring it. The moisture value's
// authoritative source is the controller via PublishMoisture; an external
// write merely replaces the visible byte, which the controller detects by
// comparing against the value it last published. Sleep-interval range
// validation happens in the controller, not here.
type Characteristics struct {
	mu       sync.Mutex
	moisture uint8
	pump     uint8
	sleep    uint16

	// notifyMoisture pushes a controller-published value to the GATT
	// handle for read/notify. Set by the real adapter, nil in tests.
	notifyMoisture func(uint8)

	// syncPump mirrors a controller-side pump reset to the GATT handle so
	// a client read sees 0 again. Set by the real adapter, nil in tests.
	syncPump func(uint8)
}

// NewCharacteristics creates the characteristic state with the given
// initial sleep interval in seconds.
func NewCharacteristics(sleepSeconds uint16) *Characteristics {
	return &Characteristics{sleep: sleepSeconds}
}

// Moisture returns the currently visible moisture byte.
func (c *Characteristics) Moisture() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moisture
}

// PublishMoisture sets the moisture value and notifies any subscriber.
// Controller-only.
func (c *Characteristics) PublishMoisture(v uint8) {
	c.mu.Lock()
	c.moisture = v
	notify := c.notifyMoisture
	c.mu.Unlock()
	if notify != nil {
		notify(v)
	}
}

// WriteMoisture records an external write. The value itself is not data,
// only a refresh trigger observed by the controller.
func (c *Characteristics) WriteMoisture(v uint8) {
	c.mu.Lock()
	c.moisture = v
	c.mu.Unlock()
}

// Pump returns the pending pump command, 0 meaning idle.
func (c *Characteristics) Pump() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pump
}

// WritePump records an external pump command.
func (c *Characteristics) WritePump(v uint8) {
	c.mu.Lock()
	c.pump = v
	c.mu.Unlock()
}

// ClearPump resets the pump command to idle after it has been honored,
// so a poll tick can never re-fire it.
func (c *Characteristics) ClearPump() {
	c.mu.Lock()
	c.pump = 0
	fn := c.syncPump
	c.mu.Unlock()
	if fn != nil {
		fn(0)
	}
}

// SleepInterval returns the raw sleep-interval value in seconds.
func (c *Characteristics) SleepInterval() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sleep
}

// WriteSleepInterval records an external sleep-interval write, valid or not.
func (c *Characteristics) WriteSleepInterval(v uint16) {
	c.mu.Lock()
	c.sleep = v
	c.mu.Unlock()
}

func (c *Characteristics) setNotifyMoisture(fn func(uint8)) {
	c.mu.Lock()
	c.notifyMoisture = fn
	c.mu.Unlock()
}

func (c *Characteristics) setSyncPump(fn func(uint8)) {
	c.mu.Lock()
	c.syncPump = fn
	c.mu.Unlock()
}
