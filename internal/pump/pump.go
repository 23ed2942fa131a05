// Package pump drives the watering pump MOSFET with hardware abstraction.
// Activation is deliberately blocking: nothing else happens while watering.
package pump

import "time"

// Actuator switches the pump on for a bounded duration.
type Actuator interface {
	// Activate runs the pump for the given duration and blocks until done.
	Activate(d time.Duration) error

	// Close releases pump resources, forcing the output low.
	Close() error
}
