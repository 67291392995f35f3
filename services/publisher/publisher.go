package publisher

// Publisher represents a service for publishing resolution telemetry events
type Publisher interface {
	// Publish publishes an event message under a key
	Publish(key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}

// NoopPublisher discards all events. Used when no Redis address is configured.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that drops everything
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish discards the message
func (p *NoopPublisher) Publish(key string, message []byte) error {
	return nil
}

// TrimStreams does nothing
func (p *NoopPublisher) TrimStreams() error {
	return nil
}

// Close does nothing
func (p *NoopPublisher) Close() error {
	return nil
}
