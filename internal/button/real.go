//go:build linux

package button

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealSource reads the buttons from actual hardware.
type RealSource struct {
	chip      *gpiocdev.Chip
	sampleBtn *gpiocdev.Line
	pumpBtn   *gpiocdev.Line
}

// NewRealSource requests the two button pins as inputs with pull-ups.
func NewRealSource(samplePin, pumpPin int) (*RealSource, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	sampleLine, err := chip.RequestLine(samplePin, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request sample button pin %d: %w", samplePin, err)
	}

	pumpLine, err := chip.RequestLine(pumpPin, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		sampleLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request pump button pin %d: %w", pumpPin, err)
	}

	return &RealSource{
		chip:      chip,
		sampleBtn: sampleLine,
		pumpBtn:   pumpLine,
	}, nil
}

// Read returns the logical button states. Raw low (0) = pressed.
func (r *RealSource) Read() (bool, bool, error) {
	sampleRaw, err := r.sampleBtn.Value()
	if err != nil {
		return false, false, fmt.Errorf("read sample button: %w", err)
	}

	pumpRaw, err := r.pumpBtn.Value()
	if err != nil {
		return false, false, fmt.Errorf("read pump button: %w", err)
	}

	return sampleRaw == 0, pumpRaw == 0, nil
}

// Close releases GPIO resources.
func (r *RealSource) Close() error {
	var errs []error

	if r.sampleBtn != nil {
		if err := r.sampleBtn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sample button: %w", err))
		}
	}
	if r.pumpBtn != nil {
		if err := r.pumpBtn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pump button: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
