package sensor

import "errors"

// FakeSampler is a test double that returns scripted percentages.
type FakeSampler struct {
	// Samples contains scripted percentages to return. Each Read consumes
	// the next one; when exhausted, the last repeats.
	Samples []uint8

	// index tracks the current position in Samples.
	index int

	// Reads counts Read calls, including failed ones.
	Reads int

	// ReadError, if set, will be returned by Read.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSampler creates a FakeSampler with the given samples.
func NewFakeSampler(samples []uint8) *FakeSampler {
	return &FakeSampler{Samples: samples}
}

// Read returns the next scripted percentage.
func (f *FakeSampler) Read() (uint8, error) {
	f.Reads++
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	v := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return v, nil
}

// Close marks the sampler as closed.
func (f *FakeSampler) Close() error {
	f.Closed = true
	return nil
}
