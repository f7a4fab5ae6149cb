package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore accepts reads and rejects writes.
type failingStore struct {
	*MemoryStore
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func persistedFavorites(t *testing.T, s Store) []string {
	t.Helper()
	raw, ok, err := s.Get(context.Background(), FavoritesKey)
	require.NoError(t, err)
	require.True(t, ok, "favorites key should be persisted")
	var cities []string
	require.NoError(t, json.Unmarshal([]byte(raw), &cities))
	return cities
}

func TestFavoritesStore_LoadAbsentKey(t *testing.T) {
	f := NewFavoritesStore(NewMemoryStore())
	require.NoError(t, f.Load(context.Background()))
	assert.Empty(t, f.List())
}

func TestFavoritesStore_LoadDedupes(t *testing.T) {
	mem := NewMemoryStore()
	require.NoError(t, mem.Set(context.Background(), FavoritesKey, `["Paris","Oslo","Paris",""]`))

	f := NewFavoritesStore(mem)
	require.NoError(t, f.Load(context.Background()))
	assert.Equal(t, []string{"Paris", "Oslo"}, f.List())
}

func TestFavoritesStore_LoadMalformed(t *testing.T) {
	mem := NewMemoryStore()
	require.NoError(t, mem.Set(context.Background(), FavoritesKey, `{not json`))

	f := NewFavoritesStore(mem)
	assert.Error(t, f.Load(context.Background()))
}

func TestFavoritesStore_Toggle(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	f := NewFavoritesStore(mem)
	require.NoError(t, f.Load(ctx))

	added, err := f.Toggle(ctx, "Paris")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, f.Contains("Paris"))
	assert.Equal(t, f.List(), persistedFavorites(t, mem))

	added, err = f.Toggle(ctx, "Oslo")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"Paris", "Oslo"}, persistedFavorites(t, mem))

	added, err = f.Toggle(ctx, "Paris")
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, f.Contains("Paris"))
	assert.Equal(t, []string{"Oslo"}, persistedFavorites(t, mem))
}

func TestFavoritesStore_EvenTogglesRestorePersistedValue(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	require.NoError(t, mem.Set(ctx, FavoritesKey, `["Oslo"]`))
	f := NewFavoritesStore(mem)
	require.NoError(t, f.Load(ctx))

	before, _, _ := mem.Get(ctx, FavoritesKey)
	for i := 0; i < 4; i++ {
		_, err := f.Toggle(ctx, "Lima")
		require.NoError(t, err)
	}
	after, _, _ := mem.Get(ctx, FavoritesKey)
	assert.JSONEq(t, before, after)
}

func TestFavoritesStore_ToggleWriteFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	f := NewFavoritesStore(failingStore{NewMemoryStore()})
	require.NoError(t, f.Load(ctx))

	_, err := f.Toggle(ctx, "Paris")
	assert.Error(t, err)
	assert.False(t, f.Contains("Paris"))
	assert.Empty(t, f.List())
}

func TestFavoritesStore_RemovingLastPersistsEmptyList(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	f := NewFavoritesStore(mem)

	_, err := f.Toggle(ctx, "Paris")
	require.NoError(t, err)
	_, err = f.Toggle(ctx, "Paris")
	require.NoError(t, err)

	raw, ok, err := mem.Get(ctx, FavoritesKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}
