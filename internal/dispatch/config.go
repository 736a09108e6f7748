package dispatch

// Config holds the basic configuration for the dispatcher
type Config struct {
	// Workers is the number of batches processed concurrently
	Workers int

	// QueueSize is how many pending batches may wait for a free worker.
	// Zero means one slot per worker.
	QueueSize int
}

// DefaultConfig returns a configuration with four workers.
func DefaultConfig() Config {
	return Config{
		Workers: 4,
	}
}

func (c Config) queueSize() int {
	if c.QueueSize > 0 {
		return c.QueueSize
	}
	return c.Workers
}
