package button

// FakeSource is a test double that returns scripted button states.
type FakeSource struct {
	// Samples contains scripted states; each Read consumes the next one.
	// When exhausted, the last sample repeats.
	Samples []Sample

	// index tracks the current position in Samples.
	index int

	// Closed tracks if Close was called.
	Closed bool

	// ReadError, if set, will be returned by Read.
	ReadError error
}

// Sample represents one scripted reading.
type Sample struct {
	SamplePressed bool
	PumpPressed   bool
}

// NewFakeSource creates a FakeSource with the given samples. An empty
// script reads as "nothing pressed" forever.
func NewFakeSource(samples []Sample) *FakeSource {
	return &FakeSource{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeSource) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}
	if len(f.Samples) == 0 {
		return false, false, nil
	}

	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.SamplePressed, s.PumpPressed, nil
}

// Close marks the source as closed.
func (f *FakeSource) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script.
func (f *FakeSource) Reset() {
	f.index = 0
	f.Closed = false
}
