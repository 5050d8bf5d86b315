package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var fileNameReplacer = strings.NewReplacer(":", "-", "/", "-", "\\", "-")

// FileGateway stores each key as <dir>/<prefix><key>.json.
type FileGateway struct {
	mu     sync.Mutex
	dir    string
	prefix string
}

func NewFileGateway(dir, prefix string) (*FileGateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileGateway{dir: dir, prefix: prefix}, nil
}

func (g *FileGateway) path(key string) string {
	return filepath.Join(g.dir, fileNameReplacer.Replace(g.prefix+key)+".json")
}

func (g *FileGateway) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(g.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Save writes to a temporary file and renames it over the old one.
func (g *FileGateway) Save(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	target := g.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (g *FileGateway) Close() error {
	return nil
}
