// Package storage persists the POS collections as JSON blobs under named keys.
package storage

import (
	"context"
	"errors"
)

// Logical keys of the persisted collections.
const (
	KeyMenu         = "menu"
	KeySales        = "sales"
	KeyCurrentOrder = "currentOrder"
)

// DefaultKeyPrefix namespaces the keys inside a shared store.
const DefaultKeyPrefix = "moonicafe:"

// ErrNotFound is returned by Load when nothing has been saved under the key.
var ErrNotFound = errors.New("storage: key not found")

// Gateway is a key/value store of JSON blobs.
type Gateway interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Close() error
}

// Pinger is implemented by gateways that talk to a server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks store when it supports it. Local gateways are always reachable.
func Ping(ctx context.Context, store Gateway) error {
	if p, ok := store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
