// Package storage abstracts where attachment bytes live. The API only ever
// deals in opaque storage keys; metadata stays in the database.
package storage

import "context"

// Store reads and writes attachment file bytes by opaque key
type Store interface {
	// Put writes the bytes under the given key
	Put(ctx context.Context, key string, data []byte) error
	// Get reads the bytes stored under the given key
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the bytes stored under the given key
	Delete(ctx context.Context, key string) error
}
