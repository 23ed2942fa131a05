package display

// FakeDisplay records rendered frames for test assertions.
type FakeDisplay struct {
	// Frames contains every frame passed to Render, in order.
	Frames []Frame

	// OffCalls counts Off calls.
	OffCalls int

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeDisplay creates a FakeDisplay.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{}
}

// Render records the frame.
func (f *FakeDisplay) Render(fr Frame) {
	f.Frames = append(f.Frames, fr)
}

// Off records the call.
func (f *FakeDisplay) Off() {
	f.OffCalls++
}

// Close marks the display as closed.
func (f *FakeDisplay) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recently rendered frame, or a blank one.
func (f *FakeDisplay) Last() Frame {
	if len(f.Frames) == 0 {
		return Frame{}
	}
	return f.Frames[len(f.Frames)-1]
}
