package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// ThemeStore holds the persisted dark-mode flag. Absent means light.
type ThemeStore struct {
	mu    sync.Mutex
	store Store
	dark  bool
}

func NewThemeStore(store Store) *ThemeStore {
	return &ThemeStore{store: store}
}

func (t *ThemeStore) Load(ctx context.Context) (bool, error) {
	raw, ok, err := t.store.Get(ctx, DarkModeKey)
	if err != nil {
		return false, fmt.Errorf("failed to read dark mode: %w", err)
	}

	var dark bool
	if ok {
		if err := json.Unmarshal([]byte(raw), &dark); err != nil {
			return false, fmt.Errorf("failed to decode dark mode: %w", err)
		}
	}

	t.mu.Lock()
	t.dark = dark
	t.mu.Unlock()
	return dark, nil
}

// Toggle flips and persists the flag, returning the new value.
func (t *ThemeStore) Toggle(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := !t.dark
	b, _ := json.Marshal(next)
	if err := t.store.Set(ctx, DarkModeKey, string(b)); err != nil {
		return t.dark, fmt.Errorf("failed to save dark mode: %w", err)
	}
	t.dark = next
	return next, nil
}
