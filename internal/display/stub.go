//go:build !linux

package display

import "errors"

// RealMatrix is not available on non-Linux platforms.
type RealMatrix struct{}

// NewRealMatrix returns an error on non-Linux platforms.
func NewRealMatrix(rowPins, colPins []int) (*RealMatrix, error) {
	return nil, errors.New("display: not supported on this platform (requires Linux)")
}

// Render is not implemented on non-Linux platforms.
func (m *RealMatrix) Render(f Frame) {}

// Off is not implemented on non-Linux platforms.
func (m *RealMatrix) Off() {}

// Close is not implemented on non-Linux platforms.
func (m *RealMatrix) Close() error { return nil }
