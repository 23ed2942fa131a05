//go:build !linux

package pump

import (
	"errors"
	"time"
)

// RealActuator is not available on non-Linux platforms.
type RealActuator struct{}

// NewRealActuator returns an error on non-Linux platforms.
func NewRealActuator(pin int) (*RealActuator, error) {
	return nil, errors.New("pump: not supported on this platform (requires Linux)")
}

// Activate is not implemented on non-Linux platforms.
func (a *RealActuator) Activate(d time.Duration) error {
	return errors.New("pump: not supported")
}

// Close is not implemented on non-Linux platforms.
func (a *RealActuator) Close() error {
	return nil
}
