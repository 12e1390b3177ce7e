package tasks

import "time"

// Config holds the task queue settings.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 1
	Workers int

	// ReleaseAfter returns a claimed task to the queue when its worker has not
	// finished by then. Default: 10m
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished tasks are purged. Default: 1h
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    10 * time.Minute,
		CleanupInterval: time.Hour,
	}
}
