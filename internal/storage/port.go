package storage

import "context"

// Keys of the persisted collections.
const (
	KeyTimers  = "timers"
	KeyHistory = "history"
)

// Port is the key/value persistence boundary used by the timer engine.
// Load returns nil data and a nil error when the key has never been saved.
type Port interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Backend is a Port that owns resources which must be released.
type Backend interface {
	Port
	Close() error
}
