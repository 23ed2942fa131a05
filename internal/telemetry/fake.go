package telemetry

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	// Samples contains all moisture events that were published.
	Samples []SampleEvent

	// Pumps contains all pump events that were published.
	Pumps []PumpEvent

	// SystemEvents contains all lifecycle events that were published.
	SystemEvents []SystemEvent

	// PublishError, if set, will be returned by every publish method.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishSample records the event.
func (f *FakePublisher) PublishSample(e SampleEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Samples = append(f.Samples, e)
	return nil
}

// PublishPump records the event.
func (f *FakePublisher) PublishPump(e PumpEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Pumps = append(f.Pumps, e)
	return nil
}

// PublishSystem records the event.
func (f *FakePublisher) PublishSystem(e SystemEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.SystemEvents = append(f.SystemEvents, e)
	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded events.
func (f *FakePublisher) Reset() {
	f.Samples = nil
	f.Pumps = nil
	f.SystemEvents = nil
	f.Closed = false
	f.PublishError = nil
}
