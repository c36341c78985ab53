package kv

import "context"

// Store is a byte-valued key/value store. Get returns nil, nil for a missing
// key; Save overwrites the whole value.
type Store interface {
	Save(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	ListAll(ctx context.Context) (map[string][]byte, error)
}
