package publisher

// Publisher fans confirmed findings out to downstream consumers.
type Publisher interface {
	// Publish publishes a finding to the stream
	Publish(message []byte) error

	// Close closes the publisher connection
	Close() error
}
