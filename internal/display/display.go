// Package display renders the 5-day moisture graph and status icons on a
// 5x5 LED matrix. Frame building is pure; the real driver multiplexes the
// matrix over GPIO lines, the fake records frames for tests.
package display

// Display shows frames on the matrix.
type Display interface {
	// Render replaces the currently shown frame.
	Render(f Frame)

	// Off blanks the matrix.
	Off()

	// Close blanks the matrix and releases resources.
	Close() error
}

// Nop is a Display that draws nowhere, used when no matrix is wired.
type Nop struct{}

// Render discards the frame.
func (Nop) Render(Frame) {}

// Off does nothing.
func (Nop) Off() {}

// Close does nothing.
func (Nop) Close() error { return nil }
