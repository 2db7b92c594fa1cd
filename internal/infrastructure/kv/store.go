// Package kv provides the durable key-value store behind every repository.
// Values are opaque byte slices; repositories layer JSON on top.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no value exists under the key.
var ErrKeyNotFound = errors.New("kv: key not found")

// Store is a flat namespace of string keys. Implementations must treat Set
// as a full overwrite and Delete of a missing key as a no-op.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
