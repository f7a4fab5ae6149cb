package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

// FavoritesStore is the persisted, insertion-ordered set of favorite city names.
// Every mutation writes the full set before the in-memory copy changes, so the two never diverge.
type FavoritesStore struct {
	mu     sync.RWMutex
	store  Store
	cities []string
}

func NewFavoritesStore(store Store) *FavoritesStore {
	return &FavoritesStore{store: store}
}

// Load replaces the in-memory set with the persisted one. An absent key is an empty set.
func (f *FavoritesStore) Load(ctx context.Context) error {
	raw, ok, err := f.store.Get(ctx, FavoritesKey)
	if err != nil {
		return fmt.Errorf("failed to read favorites: %w", err)
	}

	var cities []string
	if ok {
		if err := json.Unmarshal([]byte(raw), &cities); err != nil {
			return fmt.Errorf("failed to decode favorites: %w", err)
		}
	}

	f.mu.Lock()
	f.cities = dedupe(cities)
	f.mu.Unlock()
	return nil
}

// List returns a copy in insertion order.
func (f *FavoritesStore) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.cities)
}

func (f *FavoritesStore) Contains(city string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Contains(f.cities, city)
}

// Toggle adds city when absent and removes it when present. It reports whether city was added.
func (f *FavoritesStore) Toggle(ctx context.Context, city string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := slices.Index(f.cities, city)
	var next []string
	if idx < 0 {
		next = append(slices.Clone(f.cities), city)
	} else {
		next = slices.Delete(slices.Clone(f.cities), idx, idx+1)
	}

	if err := f.persist(ctx, next); err != nil {
		return false, err
	}
	f.cities = next
	return idx < 0, nil
}

func (f *FavoritesStore) persist(ctx context.Context, cities []string) error {
	if cities == nil {
		cities = []string{}
	}
	b, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := f.store.Set(ctx, FavoritesKey, string(b)); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
