//go:build linux

package pump

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealActuator drives the pump through a GPIO output line.
type RealActuator struct {
	line *gpiocdev.Line
}

// NewRealActuator requests the given BCM pin as an output, initially low.
func NewRealActuator(pin int) (*RealActuator, error) {
	line, err := gpiocdev.RequestLine("gpiochip0", pin, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request pump pin %d: %w", pin, err)
	}
	return &RealActuator{line: line}, nil
}

// Activate switches the pump on, blocks for the duration, and switches it
// off again. The off write happens even if the on write failed late.
func (a *RealActuator) Activate(d time.Duration) error {
	if err := a.line.SetValue(1); err != nil {
		return fmt.Errorf("pump on: %w", err)
	}
	time.Sleep(d)
	if err := a.line.SetValue(0); err != nil {
		return fmt.Errorf("pump off: %w", err)
	}
	return nil
}

// Close forces the pump off and releases the line.
func (a *RealActuator) Close() error {
	if a.line == nil {
		return nil
	}
	// Leave the MOSFET low; a floating gate could keep the pump running.
	a.line.SetValue(0)
	if err := a.line.Close(); err != nil {
		return fmt.Errorf("close pump pin: %w", err)
	}
	return nil
}
