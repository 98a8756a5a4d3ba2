package settings

import "context"

// Repository is a string key/value store with upsert semantics.
type Repository interface {
	// Get returns the value and true, or "" and false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}
