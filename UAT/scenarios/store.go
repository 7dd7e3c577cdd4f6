package scenarios

import "context"

//go:generate stubgen Store

// Store keeps values by key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Keys(prefixes ...string) []string
	Put(ctx context.Context, key, value string) error
}
