package storage

import (
	"context"
	"sync"
)

// MemoryGateway keeps blobs in process memory. Nothing survives a restart.
type MemoryGateway struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{blobs: make(map[string][]byte)}
}

func (g *MemoryGateway) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	blob, ok := g.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (g *MemoryGateway) Save(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (g *MemoryGateway) Close() error {
	return nil
}
