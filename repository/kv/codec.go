package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/focusflow/backend/internal/infrastructure/kv"
)

// ErrCorruptRecord marks a stored value that exists but no longer parses.
// Repositories recover from it by substituting the type's default value, so
// it never reaches API callers; it stays distinguishable for logging and
// tests.
var ErrCorruptRecord = errors.New("kv: corrupt record")

func getJSON(ctx context.Context, store kv.Store, key string, v any) error {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	return nil
}

func putJSON(ctx context.Context, store kv.Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, raw)
}
