package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/swlin/swlin/internal/types"
)

func TestCacheSetGet(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)

	file := filepath.Join(dir, "View.swift")
	src := []byte(`class C { @IBOutlet weak var label: UILabel? }`)
	require.NoError(t, os.WriteFile(file, src, 0o644))

	issues := []tt.Issue{{Rule: "strong_iboutlet", Filename: file}}
	cache.Set(file, src, issues)

	got, ok := cache.Get(file)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "strong_iboutlet", got[0].Rule)
}

func TestCacheInvalidatesOnContentChange(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)

	file := filepath.Join(dir, "View.swift")
	src := []byte(`let a = 1`)
	require.NoError(t, os.WriteFile(file, src, 0o644))
	cache.Set(file, src, nil)

	_, ok := cache.Get(file)
	require.True(t, ok)

	require.NoError(t, os.WriteFile(file, []byte(`let a = 2`), 0o644))
	_, ok = cache.Get(file)
	assert.False(t, ok, "entry must drop when the file content changes")
}

func TestCacheSaveAndReload(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)

	file := filepath.Join(dir, "View.swift")
	src := []byte(`let a = 1`)
	require.NoError(t, os.WriteFile(file, src, 0o644))
	cache.Set(file, src, []tt.Issue{{Rule: "todo", Filename: file}})
	require.NoError(t, cache.Save())

	reloaded, err := NewCache(dir)
	require.NoError(t, err)
	got, ok := reloaded.Get(file)
	require.True(t, ok)
	assert.Equal(t, "todo", got[0].Rule)
}

func TestCacheMaxAge(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)
	cache.SetMaxAge(-time.Second)

	file := filepath.Join(dir, "View.swift")
	src := []byte(`let a = 1`)
	require.NoError(t, os.WriteFile(file, src, 0o644))
	cache.Set(file, src, nil)

	_, ok := cache.Get(file)
	assert.False(t, ok, "entries older than maxAge are invalid")
}

func TestCacheMissingFileInvalid(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)

	file := filepath.Join(dir, "Gone.swift")
	cache.Set(file, []byte(`let a = 1`), nil)

	_, ok := cache.Get(file)
	assert.False(t, ok)
}

func TestCacheInvalidateAll(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)

	file := filepath.Join(dir, "View.swift")
	src := []byte(`let a = 1`)
	require.NoError(t, os.WriteFile(file, src, 0o644))
	cache.Set(file, src, nil)

	cache.InvalidateAll()
	_, ok := cache.Get(file)
	assert.False(t, ok)
}

func TestCacheConfigHashInvalidation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)
	cache.SetConfigHash("config-a")

	file := filepath.Join(dir, "View.swift")
	src := []byte(`let a = 1`)
	require.NoError(t, os.WriteFile(file, src, 0o644))
	cache.Set(file, src, []tt.Issue{{Rule: "todo", Filename: file}})

	// same hash keeps entries
	cache.SetConfigHash("config-a")
	_, ok := cache.Get(file)
	assert.True(t, ok)

	// different hash drops them
	cache.SetConfigHash("config-b")
	_, ok = cache.Get(file)
	assert.False(t, ok)
}

func TestCacheConfigHashSurvivesReload(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)
	cache.SetConfigHash("config-a")

	file := filepath.Join(dir, "View.swift")
	src := []byte(`let a = 1`)
	require.NoError(t, os.WriteFile(file, src, 0o644))
	cache.Set(file, src, []tt.Issue{{Rule: "todo", Filename: file}})
	require.NoError(t, cache.Save())

	reloaded, err := NewCache(dir)
	require.NoError(t, err)

	reloaded.SetConfigHash("config-a")
	_, ok := reloaded.Get(file)
	assert.True(t, ok, "unchanged config keeps persisted entries")

	reloaded2, err := NewCache(dir)
	require.NoError(t, err)
	reloaded2.SetConfigHash("config-b")
	_, ok = reloaded2.Get(file)
	assert.False(t, ok, "changed config discards persisted entries")
}
