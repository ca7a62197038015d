// Package metadata is a small key/value store inside the application
// database. It keeps the session signing key and the cached session token.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value under key, or common.ErrorNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
