// Package button provides button input reading with hardware abstraction.
// The real implementation uses the Linux GPIO character device; buttons are
// wired active-low with pull-ups and are reported already inverted.
package button

// Source reads the two button states.
type Source interface {
	// Read returns whether the sample and pump buttons are currently held.
	Read() (sample, pump bool, err error)

	// Close releases GPIO resources.
	Close() error
}
