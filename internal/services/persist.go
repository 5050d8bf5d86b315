package services

import (
	"cafe_pos/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

func saveCollection(ctx context.Context, store storage.Gateway, key string, v interface{}) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Save(ctx, key, blob); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// loadCollection decodes the blob under key into dest. It reports false when
// nothing has been stored yet.
func loadCollection(ctx context.Context, store storage.Gateway, key string, dest interface{}) (bool, error) {
	blob, err := store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(blob, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func prettyJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
