package domain

import "context"

// Database is the storage lifecycle main drives: schema setup at startup,
// liveness checks while serving, and shutdown.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
