package storage

import "context"

// NotFoundError is returned by Get when no value exists for a key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return "key not found: " + e.Key
}

// IsNotFound reports whether the error marks an absent key.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// Storage is the durable key/value capability behind the client stores.
// Implementations can be local filesystem, an embedded KV, or a remote store.
// Saves are best-effort: a failed Put must leave previously stored data intact.
type Storage interface {
	// Put stores the value under the key, replacing any prior value.
	Put(ctx context.Context, key string, value []byte) error

	// Get retrieves the value for the key. Absence is a *NotFoundError.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists checks whether a value is stored under the key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all keys with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
